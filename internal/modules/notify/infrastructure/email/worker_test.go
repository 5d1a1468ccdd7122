package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/internal/modules/notify/infrastructure/mq"
	userEntity "RentLink/internal/modules/user/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifRepo struct {
	n          *entity.Notification
	sentMarked []string
}

func (s *stubNotifRepo) GetOrCreate(_ context.Context, _ *entity.Notification) (bool, error) {
	return false, nil
}

func (s *stubNotifRepo) GetByUUID(_ context.Context, uuid string) (*entity.Notification, error) {
	if s.n != nil && s.n.Uuid == uuid {
		return s.n, nil
	}
	return nil, errors.New("not found")
}

func (s *stubNotifRepo) ListByRecipient(_ context.Context, _ string, _ repository.ListFilter) ([]entity.Notification, error) {
	return nil, nil
}
func (s *stubNotifRepo) CountUnread(_ context.Context, _ string) (int64, error) { return 0, nil }
func (s *stubNotifRepo) ListUnreadSince(_ context.Context, _ string, _ time.Time) ([]entity.Notification, error) {
	return nil, nil
}
func (s *stubNotifRepo) MarkRead(_ context.Context, _ string, _ string, _ time.Time) error {
	return nil
}
func (s *stubNotifRepo) MarkAllRead(_ context.Context, _ string, _ time.Time) error { return nil }
func (s *stubNotifRepo) DeleteRead(_ context.Context, _ string) (int64, error)      { return 0, nil }
func (s *stubNotifRepo) MarkEmailSent(_ context.Context, uuid string, _ time.Time) error {
	s.sentMarked = append(s.sentMarked, uuid)
	return nil
}

type stubPrefRepo struct {
	pref *entity.NotificationPreference
}

func (s *stubPrefRepo) GetByUserID(_ context.Context, _ string) (*entity.NotificationPreference, error) {
	return s.pref, nil
}
func (s *stubPrefRepo) Upsert(_ context.Context, _ *entity.NotificationPreference) error { return nil }
func (s *stubPrefRepo) ListDigestEnabled(_ context.Context) ([]entity.NotificationPreference, error) {
	return nil, nil
}

type stubUserRepo struct {
	users []userEntity.UserInfo
}

func (s *stubUserRepo) CreateUserInfo(_ context.Context, _ *userEntity.UserInfo) error { return nil }
func (s *stubUserRepo) GetUserInfoByUsername(_ string) (*userEntity.UserInfo, error) {
	return nil, errors.New("not found")
}
func (s *stubUserRepo) GetByUUID(_ context.Context, _ string) (*userEntity.UserInfo, error) {
	return nil, errors.New("not found")
}
func (s *stubUserRepo) ListActiveByRoles(_ context.Context, _ []string) ([]userEntity.UserInfo, error) {
	return nil, nil
}
func (s *stubUserRepo) ListActiveByUUIDs(_ context.Context, _ []string) ([]userEntity.UserInfo, error) {
	return s.users, nil
}

type stubSender struct {
	failFirst int // 前 N 次调用失败
	calls     int
	sent      []string
}

func (s *stubSender) Send(to, _ string, _ string) error {
	s.calls++
	if s.calls <= s.failFirst {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func emailMessage(uuid string) mq.Message {
	return mq.Message{
		Topic:   "notify.email",
		Value:   []byte(uuid),
		Headers: map[string]string{"tenant_id": "t-1"},
	}
}

func pendingNotification() *entity.Notification {
	return &entity.Notification{
		Uuid:        "n-1",
		RecipientId: "u-1",
		Category:    entity.CategoryInvoiceOverdue,
		Priority:    entity.PriorityHigh,
		Title:       "Invoice overdue",
		Message:     "Invoice #42 is overdue.",
	}
}

func activeRecipient() []userEntity.UserInfo {
	return []userEntity.UserInfo{{Uuid: "u-1", Email: "u1@x.com", NotificationsEnabled: true}}
}

func TestWorkerSendsAndMarks(t *testing.T) {
	notifs := &stubNotifRepo{n: pendingNotification()}
	sender := &stubSender{}
	w := NewWorker(nil, notifs, &stubPrefRepo{}, &stubUserRepo{users: activeRecipient()}, sender, 3, time.Second)

	require.NoError(t, w.Handle(context.Background(), emailMessage("n-1")))
	assert.Equal(t, []string{"u1@x.com"}, sender.sent)
	assert.Equal(t, []string{"n-1"}, notifs.sentMarked)
}

func TestWorkerRetriesThenSucceeds(t *testing.T) {
	notifs := &stubNotifRepo{n: pendingNotification()}
	sender := &stubSender{failFirst: 2}
	w := NewWorker(nil, notifs, &stubPrefRepo{}, &stubUserRepo{users: activeRecipient()}, sender, 3, time.Second)

	require.NoError(t, w.Handle(context.Background(), emailMessage("n-1")))
	assert.Equal(t, 3, sender.calls)
	assert.Equal(t, []string{"n-1"}, notifs.sentMarked)
}

func TestWorkerFailedFinalStillCommits(t *testing.T) {
	notifs := &stubNotifRepo{n: pendingNotification()}
	sender := &stubSender{failFirst: 10}
	w := NewWorker(nil, notifs, &stubPrefRepo{}, &stubUserRepo{users: activeRecipient()}, sender, 3, time.Second)

	// 重试耗尽也返回 nil：提交位点，不让消息反复重投
	require.NoError(t, w.Handle(context.Background(), emailMessage("n-1")))
	assert.Equal(t, 3, sender.calls)
	assert.Empty(t, notifs.sentMarked)
}

func TestWorkerSkipsAlreadySent(t *testing.T) {
	n := pendingNotification()
	n.EmailSent = true
	sender := &stubSender{}
	w := NewWorker(nil, &stubNotifRepo{n: n}, &stubPrefRepo{}, &stubUserRepo{users: activeRecipient()}, sender, 3, time.Second)

	require.NoError(t, w.Handle(context.Background(), emailMessage("n-1")))
	assert.Zero(t, sender.calls)
}

func TestWorkerSkipsWhenPreferenceDisabled(t *testing.T) {
	pref := &entity.NotificationPreference{UserId: "u-1"} // 全 false
	sender := &stubSender{}
	w := NewWorker(nil, &stubNotifRepo{n: pendingNotification()}, &stubPrefRepo{pref: pref}, &stubUserRepo{users: activeRecipient()}, sender, 3, time.Second)

	// 入队后用户关掉了邮件偏好，发送前复查生效
	require.NoError(t, w.Handle(context.Background(), emailMessage("n-1")))
	assert.Zero(t, sender.calls)
}

func TestWorkerSkipsGoneNotification(t *testing.T) {
	sender := &stubSender{}
	w := NewWorker(nil, &stubNotifRepo{}, &stubPrefRepo{}, &stubUserRepo{users: activeRecipient()}, sender, 3, time.Second)

	require.NoError(t, w.Handle(context.Background(), emailMessage("n-gone")))
	assert.Zero(t, sender.calls)
}

func TestWorkerSkipsRecipientWithoutEmail(t *testing.T) {
	sender := &stubSender{}
	users := []userEntity.UserInfo{{Uuid: "u-1", Email: ""}}
	w := NewWorker(nil, &stubNotifRepo{n: pendingNotification()}, &stubPrefRepo{}, &stubUserRepo{users: users}, sender, 3, time.Second)

	require.NoError(t, w.Handle(context.Background(), emailMessage("n-1")))
	assert.Zero(t, sender.calls)
}

func TestWorkerIgnoresMalformedMessage(t *testing.T) {
	sender := &stubSender{}
	w := NewWorker(nil, &stubNotifRepo{n: pendingNotification()}, &stubPrefRepo{}, &stubUserRepo{users: activeRecipient()}, sender, 3, time.Second)

	require.NoError(t, w.Handle(context.Background(), mq.Message{Value: []byte("n-1")})) // 缺 tenant 头
	require.NoError(t, w.Handle(context.Background(), mq.Message{Headers: map[string]string{"tenant_id": "t-1"}}))
	assert.Zero(t, sender.calls)
}
