package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"RentLink/internal/modules/notify/domain/entity"
	userEntity "RentLink/internal/modules/user/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestFixture() (*fakeTenantRepo, *fakeUserRepo, *fakePreferenceRepo, *fakeNotificationRepo, *fakeDigestSender) {
	tenants := &fakeTenantRepo{tenants: []userEntity.TenantInfo{{Uuid: "t-1", Name: "Acme PM"}}}
	users := &fakeUserRepo{users: []userEntity.UserInfo{
		{Uuid: "u-1", Username: "alice", Email: "alice@x.com", Role: userEntity.RoleAdmin, NotificationsEnabled: true},
	}}
	prefs := newFakePreferenceRepo()
	pref := allEnabledPref("u-1")
	pref.DailyDigest = true
	prefs.byUser["u-1"] = pref
	return tenants, users, prefs, newFakeNotificationRepo(), &fakeDigestSender{}
}

func unreadAt(createdAt time.Time, title string) entity.Notification {
	return entity.Notification{
		Uuid:      "n-" + title,
		Category:  entity.CategoryMasterfileUpdated,
		Title:     title,
		Message:   "details",
		CreatedAt: createdAt,
	}
}

func TestDigestOnlyCountsWindow(t *testing.T) {
	tenants, users, prefs, notifs, sender := digestFixture()
	now := time.Now()
	notifs.unreadBy["u-1"] = []entity.Notification{
		unreadAt(now.Add(-1*time.Hour), "a"),
		unreadAt(now.Add(-5*time.Hour), "b"),
		unreadAt(now.Add(-23*time.Hour), "c"),
		unreadAt(now.Add(-30*time.Hour), "too old"),
	}

	svc := NewDigestService(tenants, users, prefs, notifs, sender, 24, 20)
	svc.RunOnce(context.Background(), now)

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, "alice@x.com", m.to)
	// 30 小时前的一条不进窗口
	assert.Equal(t, "Daily digest: 3 notifications", m.subject)
	assert.NotContains(t, m.body, "too old")
}

func TestDigestSkipsUserWithNothingUnread(t *testing.T) {
	tenants, users, prefs, notifs, sender := digestFixture()

	svc := NewDigestService(tenants, users, prefs, notifs, sender, 24, 20)
	svc.RunOnce(context.Background(), time.Now())

	assert.Empty(t, sender.sent)
}

func TestDigestSkipsNonOptedInUsers(t *testing.T) {
	tenants, users, prefs, notifs, sender := digestFixture()
	prefs.byUser["u-1"].DailyDigest = false
	notifs.unreadBy["u-1"] = []entity.Notification{unreadAt(time.Now().Add(-time.Hour), "a")}

	svc := NewDigestService(tenants, users, prefs, notifs, sender, 24, 20)
	svc.RunOnce(context.Background(), time.Now())

	assert.Empty(t, sender.sent)
}

func TestDigestBodyCappedButSubjectHasTrueTotal(t *testing.T) {
	tenants, users, prefs, notifs, sender := digestFixture()
	now := time.Now()
	var items []entity.Notification
	for i := 0; i < 25; i++ {
		items = append(items, unreadAt(now.Add(-time.Hour), fmt.Sprintf("item-%02d", i)))
	}
	notifs.unreadBy["u-1"] = items

	svc := NewDigestService(tenants, users, prefs, notifs, sender, 24, 20)
	svc.RunOnce(context.Background(), now)

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, "Daily digest: 25 notifications", m.subject)
	assert.Equal(t, 20, strings.Count(m.body, "item-"))
	assert.Contains(t, m.body, "...and 5 more")
}

func TestDigestSkipsRecipientWithoutEmail(t *testing.T) {
	tenants, users, prefs, notifs, sender := digestFixture()
	users.users[0].Email = ""
	notifs.unreadBy["u-1"] = []entity.Notification{unreadAt(time.Now().Add(-time.Hour), "a")}

	svc := NewDigestService(tenants, users, prefs, notifs, sender, 24, 20)
	svc.RunOnce(context.Background(), time.Now())

	assert.Empty(t, sender.sent)
}
