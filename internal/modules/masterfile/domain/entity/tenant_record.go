package entity

import (
	"time"

	"RentLink/internal/modules/notify/domain/event"
)

// Tenant 租客主档（业务实体，区别于数据分区意义上的租户）
type Tenant struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid      string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId  string    `gorm:"column:tenant_id;type:char(36);index;not null"`
	FullName  string    `gorm:"column:full_name;type:varchar(100);not null"`
	Email     string    `gorm:"column:email;type:varchar(120)"`
	Phone     string    `gorm:"column:phone;type:varchar(30)"`
	IdNumber  string    `gorm:"column:id_number;type:varchar(40)"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Tenant) TableName() string {
	return "tenant_record"
}

func (t *Tenant) EntityType() event.EntityType { return event.EntityTenant }
func (t *Tenant) EntityID() string             { return t.Uuid }
func (t *Tenant) DisplayName() string          { return t.FullName }

func (t *Tenant) Snapshot() map[string]string {
	return map[string]string{
		"full_name": t.FullName,
		"email":     t.Email,
		"phone":     t.Phone,
		"id_number": t.IdNumber,
	}
}
