package service

import (
	"context"
	"errors"
	"time"

	masterfileEntity "RentLink/internal/modules/masterfile/domain/entity"
	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	userEntity "RentLink/internal/modules/user/domain/entity"
)

// 内存仓储，只实现测试路径需要的行为

type fakeNotificationRepo struct {
	rows     []entity.Notification
	failFor  map[string]bool // recipient -> 写入失败
	unreadBy map[string][]entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{failFor: map[string]bool{}, unreadBy: map[string][]entity.Notification{}}
}

func (f *fakeNotificationRepo) GetOrCreate(_ context.Context, n *entity.Notification) (bool, error) {
	if f.failFor[n.RecipientId] {
		return false, errors.New("insert failed")
	}
	for _, r := range f.rows {
		if r.RecipientId == n.RecipientId && r.Category == n.Category && r.Title == n.Title && r.Message == n.Message {
			*n = r
			return false, nil
		}
	}
	f.rows = append(f.rows, *n)
	return true, nil
}

func (f *fakeNotificationRepo) GetByUUID(_ context.Context, uuid string) (*entity.Notification, error) {
	for i := range f.rows {
		if f.rows[i].Uuid == uuid {
			return &f.rows[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, _ repository.ListFilter) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, r := range f.rows {
		if r.RecipientId == recipientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	var cnt int64
	for _, r := range f.rows {
		if r.RecipientId == recipientID && !r.IsRead {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeNotificationRepo) ListUnreadSince(_ context.Context, recipientID string, since time.Time) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, r := range f.unreadBy[recipientID] {
		if r.CreatedAt.After(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, recipientID string, uuid string, at time.Time) error {
	for i := range f.rows {
		if f.rows[i].RecipientId == recipientID && f.rows[i].Uuid == uuid {
			f.rows[i].IsRead = true
			f.rows[i].ReadAt = &at
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string, at time.Time) error {
	for i := range f.rows {
		if f.rows[i].RecipientId == recipientID {
			f.rows[i].IsRead = true
			f.rows[i].ReadAt = &at
		}
	}
	return nil
}

func (f *fakeNotificationRepo) DeleteRead(_ context.Context, recipientID string) (int64, error) {
	var kept []entity.Notification
	var deleted int64
	for _, r := range f.rows {
		if r.RecipientId == recipientID && r.IsRead {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return deleted, nil
}

func (f *fakeNotificationRepo) MarkEmailSent(_ context.Context, uuid string, at time.Time) error {
	for i := range f.rows {
		if f.rows[i].Uuid == uuid {
			f.rows[i].EmailSent = true
			f.rows[i].EmailSentAt = &at
		}
	}
	return nil
}

type fakePreferenceRepo struct {
	byUser map[string]*entity.NotificationPreference
	err    error
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{byUser: map[string]*entity.NotificationPreference{}}
}

func (f *fakePreferenceRepo) GetByUserID(_ context.Context, userID string) (*entity.NotificationPreference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakePreferenceRepo) Upsert(_ context.Context, pref *entity.NotificationPreference) error {
	f.byUser[pref.UserId] = pref
	return nil
}

func (f *fakePreferenceRepo) ListDigestEnabled(_ context.Context) ([]entity.NotificationPreference, error) {
	var out []entity.NotificationPreference
	for _, p := range f.byUser {
		if p != nil && p.DailyDigest {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeChangeLogRepo struct {
	entries []entity.ChangeLogEntry
	err     error
}

func (f *fakeChangeLogRepo) Create(_ context.Context, e *entity.ChangeLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeChangeLogRepo) List(_ context.Context, _ repository.ChangeLogFilter) ([]entity.ChangeLogEntry, error) {
	return f.entries, nil
}

func (f *fakeChangeLogRepo) History(_ context.Context, entityType string, entityID string) ([]entity.ChangeLogEntry, error) {
	var out []entity.ChangeLogEntry
	for _, e := range f.entries {
		if e.EntityType == entityType && e.EntityId == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []userEntity.UserInfo
}

func (f *fakeUserRepo) CreateUserInfo(_ context.Context, user *userEntity.UserInfo) error {
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetUserInfoByUsername(username string) (*userEntity.UserInfo, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepo) GetByUUID(_ context.Context, uuid string) (*userEntity.UserInfo, error) {
	for i := range f.users {
		if f.users[i].Uuid == uuid {
			return &f.users[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepo) ListActiveByRoles(_ context.Context, roles []string) ([]userEntity.UserInfo, error) {
	want := map[string]bool{}
	for _, r := range roles {
		want[r] = true
	}
	var out []userEntity.UserInfo
	for _, u := range f.users {
		if want[u.Role] && u.Status == userEntity.StatusActive && u.NotificationsEnabled {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListActiveByUUIDs(_ context.Context, uuids []string) ([]userEntity.UserInfo, error) {
	want := map[string]bool{}
	for _, id := range uuids {
		want[id] = true
	}
	var out []userEntity.UserInfo
	for _, u := range f.users {
		if want[u.Uuid] && u.Status == userEntity.StatusActive && u.NotificationsEnabled {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeTenantRepo struct {
	tenants []userEntity.TenantInfo
}

func (f *fakeTenantRepo) CreateTenantInfo(t *userEntity.TenantInfo) error {
	f.tenants = append(f.tenants, *t)
	return nil
}

func (f *fakeTenantRepo) ListActive(_ context.Context) ([]userEntity.TenantInfo, error) {
	return f.tenants, nil
}

// 物业图游走用的最小仓储实现

type fakePropertyRepo struct {
	managers map[string][]string // propertyID -> userIDs
}

func (f *fakePropertyRepo) Create(_ context.Context, _ *masterfileEntity.Property) error  { return nil }
func (f *fakePropertyRepo) Update(_ context.Context, _ *masterfileEntity.Property) error  { return nil }
func (f *fakePropertyRepo) Delete(_ context.Context, _ string) error                      { return nil }
func (f *fakePropertyRepo) List(_ context.Context) ([]masterfileEntity.Property, error)   { return nil, nil }
func (f *fakePropertyRepo) GetByUUID(_ context.Context, uuid string) (*masterfileEntity.Property, error) {
	return &masterfileEntity.Property{Uuid: uuid}, nil
}

func (f *fakePropertyRepo) ListManagerUserIDs(_ context.Context, propertyID string) ([]string, error) {
	return f.managers[propertyID], nil
}
func (f *fakePropertyRepo) AssignManager(_ context.Context, _ string, _ string) error   { return nil }
func (f *fakePropertyRepo) UnassignManager(_ context.Context, _ string, _ string) error { return nil }

type fakeUnitRepo struct {
	units map[string]*masterfileEntity.Unit
}

func (f *fakeUnitRepo) Create(_ context.Context, _ *masterfileEntity.Unit) error { return nil }
func (f *fakeUnitRepo) Update(_ context.Context, _ *masterfileEntity.Unit) error { return nil }
func (f *fakeUnitRepo) Delete(_ context.Context, _ string) error                 { return nil }
func (f *fakeUnitRepo) GetByUUID(_ context.Context, uuid string) (*masterfileEntity.Unit, error) {
	if u, ok := f.units[uuid]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeUnitRepo) ListByProperty(_ context.Context, _ string) ([]masterfileEntity.Unit, error) {
	return nil, nil
}

type fakeLeaseRepo struct {
	leases map[string]*masterfileEntity.Lease
}

func (f *fakeLeaseRepo) Create(_ context.Context, _ *masterfileEntity.Lease) error { return nil }
func (f *fakeLeaseRepo) Update(_ context.Context, _ *masterfileEntity.Lease) error { return nil }
func (f *fakeLeaseRepo) Delete(_ context.Context, _ string) error                  { return nil }
func (f *fakeLeaseRepo) GetByUUID(_ context.Context, uuid string) (*masterfileEntity.Lease, error) {
	if l, ok := f.leases[uuid]; ok {
		return l, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeLeaseRepo) ListByUnit(_ context.Context, _ string) ([]masterfileEntity.Lease, error) {
	return nil, nil
}

// 投递端口

type fakePush struct {
	delivered []string
	ok        bool
}

func (f *fakePush) Submit(userID string, _ interface{}) bool {
	if !f.ok {
		return false
	}
	f.delivered = append(f.delivered, userID)
	return true
}

type fakeEmailQueue struct {
	enqueued []string
	err      error
}

func (f *fakeEmailQueue) Enqueue(_ context.Context, n *entity.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, n.Uuid)
	return nil
}

type fakeDigestSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeDigestSender) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
