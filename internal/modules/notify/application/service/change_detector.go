package service

import (
	"RentLink/internal/modules/notify/domain/event"
)

// ChangeDetector 围绕实体写路径的变更捕获
// 只负责生成事件，落库与扇出由调用方完成
type ChangeDetector struct{}

func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{}
}

// CaptureBefore 在写入前捕获前像，实体不存在返回 nil
// 返回 nil 时 Emit 会降级按创建语义处理，不阻塞实体写路径
func (d *ChangeDetector) CaptureBefore(e event.TrackedEntity) map[string]string {
	if e == nil {
		return nil
	}
	return e.Snapshot()
}

// Emit 比较前后像生成事件
// 更新且无字段差异时返回 nil，空保存不扇出
func (d *ChangeDetector) Emit(e event.TrackedEntity, before map[string]string, isNew bool, isDeleted bool, actorID string, actorName string) *event.ChangeEvent {
	if e == nil {
		return nil
	}

	ev := &event.ChangeEvent{
		EntityType:  e.EntityType(),
		EntityID:    e.EntityID(),
		DisplayName: e.DisplayName(),
		FieldDiffs:  map[string]event.FieldDiff{},
		ActorID:     actorID,
		ActorName:   actorName,
	}

	switch {
	case isDeleted:
		ev.Kind = event.KindDeleted
		return ev
	case isNew || before == nil:
		// 前像缺失按创建降级处理
		ev.Kind = event.KindCreated
		return ev
	}

	ev.Kind = event.KindUpdated
	after := e.Snapshot()
	for field, newVal := range after {
		oldVal, ok := before[field]
		if !ok || oldVal != newVal {
			ev.FieldDiffs[field] = event.FieldDiff{Old: oldVal, New: newVal}
		}
	}
	for field, oldVal := range before {
		if _, ok := after[field]; !ok {
			ev.FieldDiffs[field] = event.FieldDiff{Old: oldVal, New: ""}
		}
	}

	if len(ev.FieldDiffs) == 0 {
		return nil
	}
	return ev
}
