package service

import (
	"context"
	"errors"
	"testing"

	"RentLink/internal/modules/notify/domain/entity"

	"github.com/stretchr/testify/assert"
)

func allEnabledPref(userID string) *entity.NotificationPreference {
	return &entity.NotificationPreference{
		UserId:          userID,
		EmailMasterfile: true, EmailLease: true, EmailInvoice: true, EmailPayment: true, EmailSystem: true,
		PushMasterfile: true, PushLease: true, PushInvoice: true, PushPayment: true, PushSystem: true,
	}
}

func invoiceNotification() *entity.Notification {
	return &entity.Notification{
		Uuid:        "n-1",
		RecipientId: "u-1",
		Category:    entity.CategoryInvoiceOverdue,
		Priority:    entity.PriorityHigh,
		Title:       "Invoice overdue",
	}
}

func TestDispatchBothChannelsByDefault(t *testing.T) {
	prefs := newFakePreferenceRepo()
	push := &fakePush{ok: true}
	mail := &fakeEmailQueue{}
	d := NewDispatcher(prefs, push, mail)

	d.Dispatch(context.Background(), invoiceNotification())

	assert.Equal(t, []string{"u-1"}, push.delivered)
	assert.Equal(t, []string{"n-1"}, mail.enqueued)
}

func TestDispatchEmailOptOutStillPushes(t *testing.T) {
	prefs := newFakePreferenceRepo()
	pref := allEnabledPref("u-1")
	pref.EmailInvoice = false
	prefs.byUser["u-1"] = pref

	push := &fakePush{ok: true}
	mail := &fakeEmailQueue{}
	d := NewDispatcher(prefs, push, mail)

	d.Dispatch(context.Background(), invoiceNotification())

	// 站内信和推送不受邮件开关影响
	assert.Equal(t, []string{"u-1"}, push.delivered)
	assert.Empty(t, mail.enqueued)
}

func TestDispatchPushOptOut(t *testing.T) {
	prefs := newFakePreferenceRepo()
	pref := allEnabledPref("u-1")
	pref.PushInvoice = false
	prefs.byUser["u-1"] = pref

	push := &fakePush{ok: true}
	mail := &fakeEmailQueue{}
	d := NewDispatcher(prefs, push, mail)

	d.Dispatch(context.Background(), invoiceNotification())

	assert.Empty(t, push.delivered)
	assert.Equal(t, []string{"n-1"}, mail.enqueued)
}

func TestDispatchPreferenceLookupFailureDefaultsOpen(t *testing.T) {
	prefs := newFakePreferenceRepo()
	prefs.err = errors.New("db down")

	push := &fakePush{ok: true}
	mail := &fakeEmailQueue{}
	d := NewDispatcher(prefs, push, mail)

	d.Dispatch(context.Background(), invoiceNotification())

	assert.Equal(t, []string{"u-1"}, push.delivered)
	assert.Equal(t, []string{"n-1"}, mail.enqueued)
}

func TestDispatchSwallowsDeliveryFailures(t *testing.T) {
	prefs := newFakePreferenceRepo()
	push := &fakePush{ok: false}
	mail := &fakeEmailQueue{err: errors.New("broker down")}
	d := NewDispatcher(prefs, push, mail)

	// 两个通道都失败也不 panic、不上抛
	d.Dispatch(context.Background(), invoiceNotification())
	assert.Empty(t, push.delivered)
	assert.Empty(t, mail.enqueued)
}

func TestDispatchNilNotification(t *testing.T) {
	d := NewDispatcher(newFakePreferenceRepo(), &fakePush{ok: true}, &fakeEmailQueue{})
	d.Dispatch(context.Background(), nil)
}
