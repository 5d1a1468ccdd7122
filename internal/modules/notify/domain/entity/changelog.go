package entity

import "time"

// ChangeLogEntry 变更审计记录，仅追加
// 每个 ChangeEvent 恰好一行，与通知扇出无关；本子系统不修改不删除
type ChangeLogEntry struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid       string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	TenantId   string    `gorm:"column:tenant_id;type:char(36);index:idx_changelog_entity;not null"`
	EntityType string    `gorm:"column:entity_type;type:varchar(20);index:idx_changelog_entity;not null"`
	EntityId   string    `gorm:"column:entity_id;type:char(36);index:idx_changelog_entity;not null"`
	EntityName string    `gorm:"column:entity_name;type:varchar(200);not null"` // 名称快照，实体删除后保留
	ChangeKind string    `gorm:"column:change_kind;type:varchar(10);not null"`
	FieldDiffs string    `gorm:"column:field_diffs;type:json"`
	ActorId    *string   `gorm:"column:actor_id;type:char(36)"` // 可空，操作人被删除后仍保留引用
	ActorName  string    `gorm:"column:actor_name;type:varchar(100)"`
	CreatedAt  time.Time `gorm:"column:created_at;type:datetime;not null"`
}

func (ChangeLogEntry) TableName() string {
	return "change_log_entry"
}
