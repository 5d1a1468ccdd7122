package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilPreferenceMeansAllEnabled(t *testing.T) {
	var p *NotificationPreference
	for _, c := range Categories {
		assert.True(t, p.EmailEnabledFor(c), c)
		assert.True(t, p.PushEnabledFor(c), c)
	}
}

func TestCategoryFlagRouting(t *testing.T) {
	p := &NotificationPreference{
		EmailMasterfile: true,
		EmailInvoice:    false,
		PushLease:       false,
		PushSystem:      true,
	}

	assert.True(t, p.EmailEnabledFor(CategoryMasterfileCreated))
	assert.True(t, p.EmailEnabledFor(CategoryMasterfileDeleted))
	assert.False(t, p.EmailEnabledFor(CategoryInvoiceOverdue))
	assert.False(t, p.PushEnabledFor(CategoryLeaseExpiring))
	assert.True(t, p.PushEnabledFor(CategorySystemNotice))
}

func TestUnknownCategoryDefaultsEnabled(t *testing.T) {
	p := &NotificationPreference{}
	assert.True(t, p.EmailEnabledFor("not_a_category"))
	assert.True(t, p.PushEnabledFor("not_a_category"))
}

func TestValidateCategoryFlagsCoversAllCategories(t *testing.T) {
	require.NoError(t, ValidateCategoryFlags())
}
