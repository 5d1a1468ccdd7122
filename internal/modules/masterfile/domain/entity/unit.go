package entity

import (
	"strconv"
	"time"

	"RentLink/internal/modules/notify/domain/event"
)

// Unit 物业下的单元
type Unit struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid       string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId   string    `gorm:"column:tenant_id;type:char(36);index;not null"`
	PropertyId string    `gorm:"column:property_id;type:char(36);index;not null"`
	UnitNumber string    `gorm:"column:unit_number;type:varchar(20);not null"`
	Bedrooms   int       `gorm:"column:bedrooms;not null;default:0"`
	RentAmount string    `gorm:"column:rent_amount;type:decimal(12,2);default:0"`
	IsOccupied bool      `gorm:"column:is_occupied;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Unit) TableName() string {
	return "unit"
}

func (u *Unit) EntityType() event.EntityType { return event.EntityUnit }
func (u *Unit) EntityID() string             { return u.Uuid }
func (u *Unit) DisplayName() string          { return "Unit " + u.UnitNumber }

func (u *Unit) Snapshot() map[string]string {
	return map[string]string{
		"property_id": u.PropertyId,
		"unit_number": u.UnitNumber,
		"bedrooms":    strconv.Itoa(u.Bedrooms),
		"rent_amount": u.RentAmount,
		"is_occupied": strconv.FormatBool(u.IsOccupied),
	}
}
