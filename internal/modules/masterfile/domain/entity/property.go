package entity

import (
	"time"

	"RentLink/internal/modules/notify/domain/event"
)

// Property 物业主档，归属一个业主
type Property struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid       string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId   string    `gorm:"column:tenant_id;type:char(36);index;not null"`
	LandlordId string    `gorm:"column:landlord_id;type:char(36);index;not null"`
	Name       string    `gorm:"column:name;type:varchar(100);not null"`
	Address    string    `gorm:"column:address;type:varchar(200)"`
	City       string    `gorm:"column:city;type:varchar(60)"`
	Kind       string    `gorm:"column:kind;type:varchar(30)"` // residential / commercial / mixed
	CreatedAt  time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Property) TableName() string {
	return "property"
}

func (p *Property) EntityType() event.EntityType { return event.EntityProperty }
func (p *Property) EntityID() string             { return p.Uuid }
func (p *Property) DisplayName() string          { return p.Name }

func (p *Property) Snapshot() map[string]string {
	return map[string]string{
		"landlord_id": p.LandlordId, // 关联按 ID 字符串比较
		"name":        p.Name,
		"address":     p.Address,
		"city":        p.City,
		"kind":        p.Kind,
	}
}

// PropertyManager 物业与管理员用户的指派关系
type PropertyManager struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TenantId   string    `gorm:"column:tenant_id;type:char(36);uniqueIndex:uk_property_manager;not null"`
	PropertyId string    `gorm:"column:property_id;type:char(36);uniqueIndex:uk_property_manager;not null"`
	UserId     string    `gorm:"column:user_id;type:char(36);uniqueIndex:uk_property_manager;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;type:datetime;not null"`
}

func (PropertyManager) TableName() string {
	return "property_manager"
}
