package event

// EntityType 可追踪实体类型，封闭枚举，仅靠代码变更扩展
type EntityType string

const (
	EntityLandlord EntityType = "landlord"
	EntityProperty EntityType = "property"
	EntityUnit     EntityType = "unit"
	EntityTenant   EntityType = "tenant"
	EntityLease    EntityType = "lease"
)

// ChangeKind 变更类型
type ChangeKind string

const (
	KindCreated ChangeKind = "created"
	KindUpdated ChangeKind = "updated"
	KindDeleted ChangeKind = "deleted"
)

// FieldDiff 字段级差异，值统一字符串化
type FieldDiff struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ChangeEvent 变更事件，仅在进程内传递，不落库
// DisplayName 在事件时刻快照，实体删除后仍可用
type ChangeEvent struct {
	EntityType  EntityType
	EntityID    string
	DisplayName string
	Kind        ChangeKind
	FieldDiffs  map[string]FieldDiff
	ActorID     string // 为空表示系统触发
	ActorName   string
}

// TrackedEntity 可追踪实体需要实现的快照接口
// Snapshot 只包含业务字段，不含创建/更新时间等簿记字段；
// 关联实体以稳定的字符串表示（ID）参与比较，避免重查同一行被误判为变更
type TrackedEntity interface {
	EntityType() EntityType
	EntityID() string
	DisplayName() string
	Snapshot() map[string]string
}
