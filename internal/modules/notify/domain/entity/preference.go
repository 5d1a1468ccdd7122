package entity

import (
	"fmt"
	"time"
)

// NotificationPreference 每用户一行的通知偏好
// 没有偏好行时所有渠道默认开启（opt-out 模型）
type NotificationPreference struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TenantId string `gorm:"column:tenant_id;type:char(36);uniqueIndex:uk_pref_user;not null"`
	UserId   string `gorm:"column:user_id;type:char(36);uniqueIndex:uk_pref_user;not null"`

	EmailMasterfile bool `gorm:"column:email_masterfile;not null;default:true"`
	EmailLease      bool `gorm:"column:email_lease;not null;default:true"`
	EmailInvoice    bool `gorm:"column:email_invoice;not null;default:true"`
	EmailPayment    bool `gorm:"column:email_payment;not null;default:true"`
	EmailSystem     bool `gorm:"column:email_system;not null;default:true"`

	PushMasterfile bool `gorm:"column:push_masterfile;not null;default:true"`
	PushLease      bool `gorm:"column:push_lease;not null;default:true"`
	PushInvoice    bool `gorm:"column:push_invoice;not null;default:true"`
	PushPayment    bool `gorm:"column:push_payment;not null;default:true"`
	PushSystem     bool `gorm:"column:push_system;not null;default:true"`

	DailyDigest bool   `gorm:"column:daily_digest;not null;default:false"`
	DigestTime  string `gorm:"column:digest_time;type:varchar(5);default:'07:00'"` // 仅参考，摘要任务按固定调度执行

	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (NotificationPreference) TableName() string {
	return "notification_preference"
}

// 分类到偏好开关的映射，枚举封闭，启动时校验覆盖完整
var emailFlags = map[string]func(*NotificationPreference) bool{
	CategoryMasterfileCreated: func(p *NotificationPreference) bool { return p.EmailMasterfile },
	CategoryMasterfileUpdated: func(p *NotificationPreference) bool { return p.EmailMasterfile },
	CategoryMasterfileDeleted: func(p *NotificationPreference) bool { return p.EmailMasterfile },
	CategoryLeaseExpiring:     func(p *NotificationPreference) bool { return p.EmailLease },
	CategoryInvoiceOverdue:    func(p *NotificationPreference) bool { return p.EmailInvoice },
	CategoryPaymentReceived:   func(p *NotificationPreference) bool { return p.EmailPayment },
	CategorySystemNotice:      func(p *NotificationPreference) bool { return p.EmailSystem },
}

var pushFlags = map[string]func(*NotificationPreference) bool{
	CategoryMasterfileCreated: func(p *NotificationPreference) bool { return p.PushMasterfile },
	CategoryMasterfileUpdated: func(p *NotificationPreference) bool { return p.PushMasterfile },
	CategoryMasterfileDeleted: func(p *NotificationPreference) bool { return p.PushMasterfile },
	CategoryLeaseExpiring:     func(p *NotificationPreference) bool { return p.PushLease },
	CategoryInvoiceOverdue:    func(p *NotificationPreference) bool { return p.PushInvoice },
	CategoryPaymentReceived:   func(p *NotificationPreference) bool { return p.PushPayment },
	CategorySystemNotice:      func(p *NotificationPreference) bool { return p.PushSystem },
}

// EmailEnabled 指定分类的邮件渠道是否开启，p 为 nil 时默认开启
func (p *NotificationPreference) EmailEnabledFor(category string) bool {
	if p == nil {
		return true
	}
	f, ok := emailFlags[category]
	if !ok {
		return true
	}
	return f(p)
}

// PushEnabledFor 指定分类的站内推送是否开启，p 为 nil 时默认开启
func (p *NotificationPreference) PushEnabledFor(category string) bool {
	if p == nil {
		return true
	}
	f, ok := pushFlags[category]
	if !ok {
		return true
	}
	return f(p)
}

// ValidateCategoryFlags 校验映射覆盖全部分类，启动时调用
func ValidateCategoryFlags() error {
	for _, c := range Categories {
		if _, ok := emailFlags[c]; !ok {
			return fmt.Errorf("category %s missing email preference flag", c)
		}
		if _, ok := pushFlags[c]; !ok {
			return fmt.Errorf("category %s missing push preference flag", c)
		}
	}
	return nil
}
