package entity

import "time"

// 用户角色
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleManager    = "manager"
	RoleViewer     = "viewer"
)

// 用户状态
const (
	StatusActive   int8 = 0
	StatusDisabled int8 = 1
)

// UserInfo 用户目录，每行属于一个租户
type UserInfo struct {
	Id                   int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid                 string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId             string    `gorm:"column:tenant_id;type:char(36);index;not null"`
	Username             string    `gorm:"column:username;type:varchar(40);uniqueIndex;not null"`
	Nickname             string    `gorm:"column:nickname;type:varchar(40)"`
	Password             string    `gorm:"column:password;type:varchar(100);not null"`
	Email                string    `gorm:"column:email;type:varchar(120)"`
	Role                 string    `gorm:"column:role;type:varchar(20);not null;default:viewer"`
	Status               int8      `gorm:"column:status;type:tinyint;not null;default:0"`
	NotificationsEnabled bool      `gorm:"column:notifications_enabled;not null;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at;type:datetime;not null"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

// TenantInfo 租户登记表，摘要任务据此遍历租户
// 租户路由本身由外部系统负责，这里只是最小登记
type TenantInfo struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid      string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Status    int8      `gorm:"column:status;type:tinyint;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
}

func (TenantInfo) TableName() string {
	return "tenant_info"
}
