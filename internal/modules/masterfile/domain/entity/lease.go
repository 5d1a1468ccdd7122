package entity

import (
	"time"

	"RentLink/internal/modules/notify/domain/event"
)

// 租约状态
const (
	LeaseStatusActive     = "active"
	LeaseStatusExpired    = "expired"
	LeaseStatusTerminated = "terminated"
)

// Lease 租约，挂在单元下，关联一个租客
// 日期用 yyyy-mm-dd 字符串存储，快照比较无歧义
type Lease struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid       string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId   string    `gorm:"column:tenant_id;type:char(36);index;not null"`
	UnitId     string    `gorm:"column:unit_id;type:char(36);index;not null"`
	RenterId   string    `gorm:"column:renter_id;type:char(36);index;not null"`
	StartDate  string    `gorm:"column:start_date;type:varchar(10);not null"`
	EndDate    string    `gorm:"column:end_date;type:varchar(10);not null"`
	RentAmount string    `gorm:"column:rent_amount;type:decimal(12,2);default:0"`
	Status     string    `gorm:"column:status;type:varchar(15);not null;default:active"`
	CreatedAt  time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Lease) TableName() string {
	return "lease"
}

func (l *Lease) EntityType() event.EntityType { return event.EntityLease }
func (l *Lease) EntityID() string             { return l.Uuid }
func (l *Lease) DisplayName() string          { return "Lease " + l.StartDate + " ~ " + l.EndDate }

func (l *Lease) Snapshot() map[string]string {
	return map[string]string{
		"unit_id":     l.UnitId,
		"renter_id":   l.RenterId,
		"start_date":  l.StartDate,
		"end_date":    l.EndDate,
		"rent_amount": l.RentAmount,
		"status":      l.Status,
	}
}
