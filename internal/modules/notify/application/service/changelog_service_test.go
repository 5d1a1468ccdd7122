package service

import (
	"context"
	"errors"
	"testing"

	"RentLink/internal/modules/notify/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeepsNameSnapshot(t *testing.T) {
	repo := &fakeChangeLogRepo{}
	svc := NewChangeLogService(repo)

	svc.Record(context.Background(), &event.ChangeEvent{
		EntityType:  event.EntityLandlord,
		EntityID:    "l-1",
		DisplayName: "Zhang San",
		Kind:        event.KindDeleted,
		ActorID:     "u-1",
		ActorName:   "Alice",
	})

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	// 实体删除后名称快照保留在审计行里
	assert.Equal(t, "Zhang San", e.EntityName)
	assert.Equal(t, "deleted", e.ChangeKind)
	require.NotNil(t, e.ActorId)
	assert.Equal(t, "u-1", *e.ActorId)
	assert.Equal(t, "Alice", e.ActorName)
	assert.NotEmpty(t, e.Uuid)
}

func TestRecordSystemActorIsNullable(t *testing.T) {
	repo := &fakeChangeLogRepo{}
	svc := NewChangeLogService(repo)

	svc.Record(context.Background(), &event.ChangeEvent{
		EntityType:  event.EntityProperty,
		EntityID:    "p-1",
		DisplayName: "Sunrise Tower",
		Kind:        event.KindCreated,
	})

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].ActorId)
}

func TestRecordSwallowsRepoFailure(t *testing.T) {
	repo := &fakeChangeLogRepo{err: errors.New("disk full")}
	svc := NewChangeLogService(repo)

	// 审计失败不 panic、不上抛
	svc.Record(context.Background(), &event.ChangeEvent{
		EntityType: event.EntityUnit,
		EntityID:   "u-1",
		Kind:       event.KindUpdated,
		FieldDiffs: map[string]event.FieldDiff{"rent_amount": {Old: "1", New: "2"}},
	})
	assert.Empty(t, repo.entries)
}

func TestEntityHistoryFiltersByEntity(t *testing.T) {
	repo := &fakeChangeLogRepo{}
	svc := NewChangeLogService(repo)
	ctx := context.Background()

	svc.Record(ctx, &event.ChangeEvent{EntityType: event.EntityUnit, EntityID: "u-1", Kind: event.KindCreated})
	svc.Record(ctx, &event.ChangeEvent{EntityType: event.EntityUnit, EntityID: "u-2", Kind: event.KindCreated})
	svc.Record(ctx, &event.ChangeEvent{EntityType: event.EntityUnit, EntityID: "u-1", Kind: event.KindDeleted})

	got, err := svc.EntityHistory(ctx, "unit", "u-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
