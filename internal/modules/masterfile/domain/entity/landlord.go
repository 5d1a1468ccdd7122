package entity

import (
	"time"

	"RentLink/internal/modules/notify/domain/event"
)

// Landlord 业主主档
type Landlord struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid      string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId  string    `gorm:"column:tenant_id;type:char(36);index;not null"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Email     string    `gorm:"column:email;type:varchar(120)"`
	Phone     string    `gorm:"column:phone;type:varchar(30)"`
	Address   string    `gorm:"column:address;type:varchar(200)"`
	Notes     string    `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Landlord) TableName() string {
	return "landlord"
}

func (l *Landlord) EntityType() event.EntityType { return event.EntityLandlord }
func (l *Landlord) EntityID() string             { return l.Uuid }
func (l *Landlord) DisplayName() string          { return l.Name }

// Snapshot 业务字段快照，不含簿记时间戳
func (l *Landlord) Snapshot() map[string]string {
	return map[string]string{
		"name":    l.Name,
		"email":   l.Email,
		"phone":   l.Phone,
		"address": l.Address,
		"notes":   l.Notes,
	}
}
