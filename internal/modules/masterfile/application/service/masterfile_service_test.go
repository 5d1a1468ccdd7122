package service

import (
	"context"
	"errors"
	"testing"

	"RentLink/internal/modules/masterfile/application/dto/request"
	"RentLink/internal/modules/masterfile/domain/entity"
	"RentLink/internal/modules/notify/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPipeline 记录每次实体写路径的回调
type recordingPipeline struct {
	calls []pipelineCall
}

type pipelineCall struct {
	before    map[string]string
	entity    event.TrackedEntity
	isNew     bool
	isDeleted bool
}

func (r *recordingPipeline) CaptureBefore(e event.TrackedEntity) map[string]string {
	if e == nil {
		return nil
	}
	return e.Snapshot()
}

func (r *recordingPipeline) OnEntityChanged(_ context.Context, before map[string]string, e event.TrackedEntity, isNew bool, isDeleted bool) {
	r.calls = append(r.calls, pipelineCall{before: before, entity: e, isNew: isNew, isDeleted: isDeleted})
}

type memLandlordRepo struct {
	byUUID map[string]*entity.Landlord
}

func newMemLandlordRepo() *memLandlordRepo {
	return &memLandlordRepo{byUUID: map[string]*entity.Landlord{}}
}

func (m *memLandlordRepo) Create(_ context.Context, l *entity.Landlord) error {
	cp := *l
	m.byUUID[l.Uuid] = &cp
	return nil
}

func (m *memLandlordRepo) Update(_ context.Context, l *entity.Landlord) error {
	cp := *l
	m.byUUID[l.Uuid] = &cp
	return nil
}

func (m *memLandlordRepo) Delete(_ context.Context, uuid string) error {
	delete(m.byUUID, uuid)
	return nil
}

func (m *memLandlordRepo) GetByUUID(_ context.Context, uuid string) (*entity.Landlord, error) {
	if l, ok := m.byUUID[uuid]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (m *memLandlordRepo) List(_ context.Context) ([]entity.Landlord, error) {
	var out []entity.Landlord
	for _, l := range m.byUUID {
		out = append(out, *l)
	}
	return out, nil
}

type memPropertyRepo struct {
	byUUID   map[string]*entity.Property
	managers map[string][]string
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{byUUID: map[string]*entity.Property{}, managers: map[string][]string{}}
}

func (m *memPropertyRepo) Create(_ context.Context, p *entity.Property) error {
	cp := *p
	m.byUUID[p.Uuid] = &cp
	return nil
}

func (m *memPropertyRepo) Update(_ context.Context, p *entity.Property) error {
	cp := *p
	m.byUUID[p.Uuid] = &cp
	return nil
}

func (m *memPropertyRepo) Delete(_ context.Context, uuid string) error {
	delete(m.byUUID, uuid)
	return nil
}

func (m *memPropertyRepo) GetByUUID(_ context.Context, uuid string) (*entity.Property, error) {
	if p, ok := m.byUUID[uuid]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (m *memPropertyRepo) List(_ context.Context) ([]entity.Property, error) { return nil, nil }

func (m *memPropertyRepo) ListManagerUserIDs(_ context.Context, propertyID string) ([]string, error) {
	return m.managers[propertyID], nil
}

func (m *memPropertyRepo) AssignManager(_ context.Context, propertyID string, userID string) error {
	for _, id := range m.managers[propertyID] {
		if id == userID {
			return nil
		}
	}
	m.managers[propertyID] = append(m.managers[propertyID], userID)
	return nil
}

func (m *memPropertyRepo) UnassignManager(_ context.Context, propertyID string, userID string) error {
	var kept []string
	for _, id := range m.managers[propertyID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	m.managers[propertyID] = kept
	return nil
}

type memUnitRepo struct {
	byUUID map[string]*entity.Unit
}

func newMemUnitRepo() *memUnitRepo { return &memUnitRepo{byUUID: map[string]*entity.Unit{}} }

func (m *memUnitRepo) Create(_ context.Context, u *entity.Unit) error {
	cp := *u
	m.byUUID[u.Uuid] = &cp
	return nil
}

func (m *memUnitRepo) Update(_ context.Context, u *entity.Unit) error {
	cp := *u
	m.byUUID[u.Uuid] = &cp
	return nil
}

func (m *memUnitRepo) Delete(_ context.Context, uuid string) error {
	delete(m.byUUID, uuid)
	return nil
}

func (m *memUnitRepo) GetByUUID(_ context.Context, uuid string) (*entity.Unit, error) {
	if u, ok := m.byUUID[uuid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (m *memUnitRepo) ListByProperty(_ context.Context, propertyID string) ([]entity.Unit, error) {
	var out []entity.Unit
	for _, u := range m.byUUID {
		if u.PropertyId == propertyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

type memTenantRepo struct {
	byUUID map[string]*entity.Tenant
}

func newMemTenantRepo() *memTenantRepo { return &memTenantRepo{byUUID: map[string]*entity.Tenant{}} }

func (m *memTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	cp := *t
	m.byUUID[t.Uuid] = &cp
	return nil
}

func (m *memTenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	cp := *t
	m.byUUID[t.Uuid] = &cp
	return nil
}

func (m *memTenantRepo) Delete(_ context.Context, uuid string) error {
	delete(m.byUUID, uuid)
	return nil
}

func (m *memTenantRepo) GetByUUID(_ context.Context, uuid string) (*entity.Tenant, error) {
	if t, ok := m.byUUID[uuid]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (m *memTenantRepo) List(_ context.Context) ([]entity.Tenant, error) { return nil, nil }

type memLeaseRepo struct {
	byUUID map[string]*entity.Lease
}

func newMemLeaseRepo() *memLeaseRepo { return &memLeaseRepo{byUUID: map[string]*entity.Lease{}} }

func (m *memLeaseRepo) Create(_ context.Context, l *entity.Lease) error {
	cp := *l
	m.byUUID[l.Uuid] = &cp
	return nil
}

func (m *memLeaseRepo) Update(_ context.Context, l *entity.Lease) error {
	cp := *l
	m.byUUID[l.Uuid] = &cp
	return nil
}

func (m *memLeaseRepo) Delete(_ context.Context, uuid string) error {
	delete(m.byUUID, uuid)
	return nil
}

func (m *memLeaseRepo) GetByUUID(_ context.Context, uuid string) (*entity.Lease, error) {
	if l, ok := m.byUUID[uuid]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (m *memLeaseRepo) ListByUnit(_ context.Context, unitID string) ([]entity.Lease, error) {
	var out []entity.Lease
	for _, l := range m.byUUID {
		if l.UnitId == unitID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func newServiceFixture() (MasterfileService, *recordingPipeline, *memLandlordRepo, *memPropertyRepo, *memUnitRepo) {
	pipeline := &recordingPipeline{}
	landlords := newMemLandlordRepo()
	properties := newMemPropertyRepo()
	units := newMemUnitRepo()
	svc := NewMasterfileService(landlords, properties, units, newMemTenantRepo(), newMemLeaseRepo(), pipeline)
	return svc, pipeline, landlords, properties, units
}

func TestCreateLandlordTriggersPipeline(t *testing.T) {
	svc, pipeline, landlords, _, _ := newServiceFixture()

	l, err := svc.CreateLandlord(context.Background(), &request.SaveLandlordRequest{Name: "Zhang San", Phone: "123"})
	require.NoError(t, err)
	require.NotEmpty(t, l.Uuid)
	assert.Contains(t, landlords.byUUID, l.Uuid)

	require.Len(t, pipeline.calls, 1)
	call := pipeline.calls[0]
	assert.True(t, call.isNew)
	assert.False(t, call.isDeleted)
	assert.Nil(t, call.before)
}

func TestUpdateLandlordCapturesBefore(t *testing.T) {
	svc, pipeline, _, _, _ := newServiceFixture()
	ctx := context.Background()

	l, err := svc.CreateLandlord(ctx, &request.SaveLandlordRequest{Name: "Zhang San", Phone: "123"})
	require.NoError(t, err)

	_, err = svc.UpdateLandlord(ctx, &request.SaveLandlordRequest{Uuid: l.Uuid, Name: "Zhang San", Phone: "456"})
	require.NoError(t, err)

	require.Len(t, pipeline.calls, 2)
	call := pipeline.calls[1]
	assert.False(t, call.isNew)
	// 前像来自更新前的持久化状态，而不是入参
	assert.Equal(t, "123", call.before["phone"])
	assert.Equal(t, "456", call.entity.Snapshot()["phone"])
}

func TestUpdateMissingLandlordFails(t *testing.T) {
	svc, pipeline, _, _, _ := newServiceFixture()

	_, err := svc.UpdateLandlord(context.Background(), &request.SaveLandlordRequest{Uuid: "nope", Name: "x"})
	require.Error(t, err)
	assert.Empty(t, pipeline.calls)
}

func TestDeleteLandlordEmitsDeletionWithSnapshot(t *testing.T) {
	svc, pipeline, landlords, _, _ := newServiceFixture()
	ctx := context.Background()

	l, err := svc.CreateLandlord(ctx, &request.SaveLandlordRequest{Name: "Zhang San"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLandlord(ctx, l.Uuid))
	assert.NotContains(t, landlords.byUUID, l.Uuid)

	require.Len(t, pipeline.calls, 2)
	call := pipeline.calls[1]
	assert.True(t, call.isDeleted)
	// 事件携带已删除实体的展示名
	assert.Equal(t, "Zhang San", call.entity.DisplayName())
}

func TestCreateUnitRequiresExistingProperty(t *testing.T) {
	svc, pipeline, _, _, _ := newServiceFixture()

	_, err := svc.CreateUnit(context.Background(), &request.SaveUnitRequest{PropertyId: "ghost", UnitNumber: "3B"})
	require.Error(t, err)
	assert.Empty(t, pipeline.calls)
}

func TestCreatePropertyRequiresExistingLandlord(t *testing.T) {
	svc, _, _, _, _ := newServiceFixture()

	_, err := svc.CreateProperty(context.Background(), &request.SavePropertyRequest{Name: "Tower", LandlordId: "ghost"})
	require.Error(t, err)
}

func TestUnitOccupancyUpdateFlowsThroughPipeline(t *testing.T) {
	svc, pipeline, _, _, _ := newServiceFixture()
	ctx := context.Background()

	l, err := svc.CreateLandlord(ctx, &request.SaveLandlordRequest{Name: "Zhang San"})
	require.NoError(t, err)
	p, err := svc.CreateProperty(ctx, &request.SavePropertyRequest{Name: "Tower", LandlordId: l.Uuid})
	require.NoError(t, err)
	u, err := svc.CreateUnit(ctx, &request.SaveUnitRequest{PropertyId: p.Uuid, UnitNumber: "3B", RentAmount: "1500.00"})
	require.NoError(t, err)

	_, err = svc.UpdateUnit(ctx, &request.SaveUnitRequest{Uuid: u.Uuid, UnitNumber: "3B", RentAmount: "1500.00", IsOccupied: true})
	require.NoError(t, err)

	call := pipeline.calls[len(pipeline.calls)-1]
	assert.Equal(t, "false", call.before["is_occupied"])
	assert.Equal(t, "true", call.entity.Snapshot()["is_occupied"])
}

func TestAssignManagerIdempotent(t *testing.T) {
	svc, _, _, properties, _ := newServiceFixture()
	ctx := context.Background()

	l, err := svc.CreateLandlord(ctx, &request.SaveLandlordRequest{Name: "Zhang San"})
	require.NoError(t, err)
	p, err := svc.CreateProperty(ctx, &request.SavePropertyRequest{Name: "Tower", LandlordId: l.Uuid})
	require.NoError(t, err)

	require.NoError(t, svc.AssignManager(ctx, p.Uuid, "mgr-1"))
	require.NoError(t, svc.AssignManager(ctx, p.Uuid, "mgr-1"))
	assert.Equal(t, []string{"mgr-1"}, properties.managers[p.Uuid])

	require.NoError(t, svc.UnassignManager(ctx, p.Uuid, "mgr-1"))
	assert.Empty(t, properties.managers[p.Uuid])
}
