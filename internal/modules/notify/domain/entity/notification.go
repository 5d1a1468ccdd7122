package entity

import "time"

// 通知分类，封闭枚举，对应业务事件类型
const (
	CategoryMasterfileCreated = "masterfile_created"
	CategoryMasterfileUpdated = "masterfile_updated"
	CategoryMasterfileDeleted = "masterfile_deleted"
	CategoryLeaseExpiring     = "lease_expiring"
	CategoryInvoiceOverdue    = "invoice_overdue"
	CategoryPaymentReceived   = "payment_received"
	CategorySystemNotice      = "system_notice"
)

// Categories 全部合法分类，偏好映射启动时据此校验
var Categories = []string{
	CategoryMasterfileCreated,
	CategoryMasterfileUpdated,
	CategoryMasterfileDeleted,
	CategoryLeaseExpiring,
	CategoryInvoiceOverdue,
	CategoryPaymentReceived,
	CategorySystemNotice,
}

// 优先级
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Notification 站内通知，按 (事件, 接收人) 一行，创建后内容不再变更
// 只允许已读状态与邮件发送状态两类转移
type Notification struct {
	Id          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid        string     `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId    string     `gorm:"column:tenant_id;type:char(36);index:idx_notification_recipient;not null"`
	RecipientId string     `gorm:"column:recipient_id;type:char(36);index:idx_notification_recipient;not null"`
	Category    string     `gorm:"column:category;type:varchar(40);index;not null"`
	Priority    string     `gorm:"column:priority;type:varchar(10);not null;default:medium"`
	Title       string     `gorm:"column:title;type:varchar(200);not null"`
	Message     string     `gorm:"column:message;type:text;not null"`
	Payload     string     `gorm:"column:payload;type:json"`
	IsRead      bool       `gorm:"column:is_read;not null;default:false"`
	ReadAt      *time.Time `gorm:"column:read_at;type:datetime"`
	EmailSent   bool       `gorm:"column:email_sent;not null;default:false"`
	EmailSentAt *time.Time `gorm:"column:email_sent_at;type:datetime"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:datetime;not null"`
}

func (Notification) TableName() string {
	return "notification"
}
