package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"RentLink/internal/modules/masterfile/application/dto/request"
	"RentLink/internal/modules/masterfile/domain/entity"
	"RentLink/internal/modules/masterfile/domain/repository"
	notifyservice "RentLink/internal/modules/notify/application/service"
	"RentLink/internal/modules/notify/domain/event"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// MasterfileService 主档（业主/物业/单元/租客/租约）维护入口
// 所有写操作落库后同步触发变更管线
type MasterfileService interface {
	CreateLandlord(ctx context.Context, req *request.SaveLandlordRequest) (*entity.Landlord, error)
	UpdateLandlord(ctx context.Context, req *request.SaveLandlordRequest) (*entity.Landlord, error)
	DeleteLandlord(ctx context.Context, uuid string) error
	ListLandlords(ctx context.Context) ([]entity.Landlord, error)

	CreateProperty(ctx context.Context, req *request.SavePropertyRequest) (*entity.Property, error)
	UpdateProperty(ctx context.Context, req *request.SavePropertyRequest) (*entity.Property, error)
	DeleteProperty(ctx context.Context, uuid string) error
	ListProperties(ctx context.Context) ([]entity.Property, error)
	AssignManager(ctx context.Context, propertyID, userID string) error
	UnassignManager(ctx context.Context, propertyID, userID string) error

	CreateUnit(ctx context.Context, req *request.SaveUnitRequest) (*entity.Unit, error)
	UpdateUnit(ctx context.Context, req *request.SaveUnitRequest) (*entity.Unit, error)
	DeleteUnit(ctx context.Context, uuid string) error
	ListUnits(ctx context.Context, propertyID string) ([]entity.Unit, error)

	CreateTenantRecord(ctx context.Context, req *request.SaveTenantRequest) (*entity.Tenant, error)
	UpdateTenantRecord(ctx context.Context, req *request.SaveTenantRequest) (*entity.Tenant, error)
	DeleteTenantRecord(ctx context.Context, uuid string) error
	ListTenantRecords(ctx context.Context) ([]entity.Tenant, error)

	CreateLease(ctx context.Context, req *request.SaveLeaseRequest) (*entity.Lease, error)
	UpdateLease(ctx context.Context, req *request.SaveLeaseRequest) (*entity.Lease, error)
	DeleteLease(ctx context.Context, uuid string) error
	ListLeases(ctx context.Context, unitID string) ([]entity.Lease, error)
}

type masterfileServiceImpl struct {
	landlordRepo repository.LandlordRepository
	propertyRepo repository.PropertyRepository
	unitRepo     repository.UnitRepository
	tenantRepo   repository.TenantRecordRepository
	leaseRepo    repository.LeaseRepository
	pipeline     notifyservice.ChangePipeline
}

func NewMasterfileService(
	landlordRepo repository.LandlordRepository,
	propertyRepo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
	tenantRepo repository.TenantRecordRepository,
	leaseRepo repository.LeaseRepository,
	pipeline notifyservice.ChangePipeline,
) MasterfileService {
	return &masterfileServiceImpl{
		landlordRepo: landlordRepo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		pipeline:     pipeline,
	}
}

// afterWrite 写路径结束后的统一钩子，管线内部自行兜错，不影响主流程
func (s *masterfileServiceImpl) afterWrite(ctx context.Context, before map[string]string, e event.TrackedEntity, isNew, isDeleted bool) {
	s.pipeline.OnEntityChanged(ctx, before, e, isNew, isDeleted)
}

// ---------- 业主 ----------

func (s *masterfileServiceImpl) CreateLandlord(ctx context.Context, req *request.SaveLandlordRequest) (*entity.Landlord, error) {
	if req.Name == "" {
		return nil, xerr.ErrParam
	}
	now := time.Now()
	l := &entity.Landlord{
		Uuid:      uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.landlordRepo.Create(ctx, l); err != nil {
		zlog.Error("create landlord failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, nil, l, true, false)
	return l, nil
}

func (s *masterfileServiceImpl) UpdateLandlord(ctx context.Context, req *request.SaveLandlordRequest) (*entity.Landlord, error) {
	if req.Uuid == "" || req.Name == "" {
		return nil, xerr.ErrParam
	}
	existing, err := s.landlordRepo.GetByUUID(ctx, req.Uuid)
	if err != nil {
		return nil, xerr.ErrNotFound
	}
	before := s.pipeline.CaptureBefore(existing)
	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.Notes = req.Notes
	existing.UpdatedAt = time.Now()
	if err := s.landlordRepo.Update(ctx, existing); err != nil {
		zlog.Error("update landlord failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, before, existing, false, false)
	return existing, nil
}

func (s *masterfileServiceImpl) DeleteLandlord(ctx context.Context, id string) error {
	existing, err := s.landlordRepo.GetByUUID(ctx, id)
	if err != nil {
		return xerr.ErrNotFound
	}
	if err := s.landlordRepo.Delete(ctx, id); err != nil {
		zlog.Error("delete landlord failed", zap.Error(err))
		return xerr.ErrDB
	}
	s.afterWrite(ctx, nil, existing, false, true)
	return nil
}

func (s *masterfileServiceImpl) ListLandlords(ctx context.Context) ([]entity.Landlord, error) {
	return s.landlordRepo.List(ctx)
}

// ---------- 物业 ----------

func (s *masterfileServiceImpl) CreateProperty(ctx context.Context, req *request.SavePropertyRequest) (*entity.Property, error) {
	if req.Name == "" || req.LandlordId == "" {
		return nil, xerr.ErrParam
	}
	if _, err := s.landlordRepo.GetByUUID(ctx, req.LandlordId); err != nil {
		return nil, xerr.ErrNotFound
	}
	now := time.Now()
	p := &entity.Property{
		Uuid:       uuid.New().String(),
		LandlordId: req.LandlordId,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Kind:       req.Kind,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		zlog.Error("create property failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, nil, p, true, false)
	return p, nil
}

func (s *masterfileServiceImpl) UpdateProperty(ctx context.Context, req *request.SavePropertyRequest) (*entity.Property, error) {
	if req.Uuid == "" || req.Name == "" {
		return nil, xerr.ErrParam
	}
	existing, err := s.propertyRepo.GetByUUID(ctx, req.Uuid)
	if err != nil {
		return nil, xerr.ErrNotFound
	}
	before := s.pipeline.CaptureBefore(existing)
	if req.LandlordId != "" {
		existing.LandlordId = req.LandlordId
	}
	existing.Name = req.Name
	existing.Address = req.Address
	existing.City = req.City
	existing.Kind = req.Kind
	existing.UpdatedAt = time.Now()
	if err := s.propertyRepo.Update(ctx, existing); err != nil {
		zlog.Error("update property failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, before, existing, false, false)
	return existing, nil
}

func (s *masterfileServiceImpl) DeleteProperty(ctx context.Context, id string) error {
	existing, err := s.propertyRepo.GetByUUID(ctx, id)
	if err != nil {
		return xerr.ErrNotFound
	}
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		zlog.Error("delete property failed", zap.Error(err))
		return xerr.ErrDB
	}
	s.afterWrite(ctx, nil, existing, false, true)
	return nil
}

func (s *masterfileServiceImpl) ListProperties(ctx context.Context) ([]entity.Property, error) {
	return s.propertyRepo.List(ctx)
}

func (s *masterfileServiceImpl) AssignManager(ctx context.Context, propertyID, userID string) error {
	if propertyID == "" || userID == "" {
		return xerr.ErrParam
	}
	if _, err := s.propertyRepo.GetByUUID(ctx, propertyID); err != nil {
		return xerr.ErrNotFound
	}
	if err := s.propertyRepo.AssignManager(ctx, propertyID, userID); err != nil {
		zlog.Error("assign property manager failed", zap.Error(err))
		return xerr.ErrDB
	}
	return nil
}

func (s *masterfileServiceImpl) UnassignManager(ctx context.Context, propertyID, userID string) error {
	if propertyID == "" || userID == "" {
		return xerr.ErrParam
	}
	if err := s.propertyRepo.UnassignManager(ctx, propertyID, userID); err != nil {
		zlog.Error("unassign property manager failed", zap.Error(err))
		return xerr.ErrDB
	}
	return nil
}

// ---------- 单元 ----------

func (s *masterfileServiceImpl) CreateUnit(ctx context.Context, req *request.SaveUnitRequest) (*entity.Unit, error) {
	if req.UnitNumber == "" || req.PropertyId == "" {
		return nil, xerr.ErrParam
	}
	if _, err := s.propertyRepo.GetByUUID(ctx, req.PropertyId); err != nil {
		return nil, xerr.ErrNotFound
	}
	now := time.Now()
	u := &entity.Unit{
		Uuid:       uuid.New().String(),
		PropertyId: req.PropertyId,
		UnitNumber: req.UnitNumber,
		Bedrooms:   req.Bedrooms,
		RentAmount: req.RentAmount,
		IsOccupied: req.IsOccupied,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		zlog.Error("create unit failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, nil, u, true, false)
	return u, nil
}

func (s *masterfileServiceImpl) UpdateUnit(ctx context.Context, req *request.SaveUnitRequest) (*entity.Unit, error) {
	if req.Uuid == "" || req.UnitNumber == "" {
		return nil, xerr.ErrParam
	}
	existing, err := s.unitRepo.GetByUUID(ctx, req.Uuid)
	if err != nil {
		return nil, xerr.ErrNotFound
	}
	before := s.pipeline.CaptureBefore(existing)
	existing.UnitNumber = req.UnitNumber
	existing.Bedrooms = req.Bedrooms
	existing.RentAmount = req.RentAmount
	existing.IsOccupied = req.IsOccupied
	existing.UpdatedAt = time.Now()
	if err := s.unitRepo.Update(ctx, existing); err != nil {
		zlog.Error("update unit failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, before, existing, false, false)
	return existing, nil
}

func (s *masterfileServiceImpl) DeleteUnit(ctx context.Context, id string) error {
	existing, err := s.unitRepo.GetByUUID(ctx, id)
	if err != nil {
		return xerr.ErrNotFound
	}
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		zlog.Error("delete unit failed", zap.Error(err))
		return xerr.ErrDB
	}
	s.afterWrite(ctx, nil, existing, false, true)
	return nil
}

func (s *masterfileServiceImpl) ListUnits(ctx context.Context, propertyID string) ([]entity.Unit, error) {
	if propertyID == "" {
		return nil, xerr.ErrParam
	}
	return s.unitRepo.ListByProperty(ctx, propertyID)
}

// ---------- 租客 ----------

func (s *masterfileServiceImpl) CreateTenantRecord(ctx context.Context, req *request.SaveTenantRequest) (*entity.Tenant, error) {
	if req.FullName == "" {
		return nil, xerr.ErrParam
	}
	now := time.Now()
	t := &entity.Tenant{
		Uuid:      uuid.New().String(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		IdNumber:  req.IdNumber,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		zlog.Error("create tenant record failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, nil, t, true, false)
	return t, nil
}

func (s *masterfileServiceImpl) UpdateTenantRecord(ctx context.Context, req *request.SaveTenantRequest) (*entity.Tenant, error) {
	if req.Uuid == "" || req.FullName == "" {
		return nil, xerr.ErrParam
	}
	existing, err := s.tenantRepo.GetByUUID(ctx, req.Uuid)
	if err != nil {
		return nil, xerr.ErrNotFound
	}
	before := s.pipeline.CaptureBefore(existing)
	existing.FullName = req.FullName
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.IdNumber = req.IdNumber
	existing.UpdatedAt = time.Now()
	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		zlog.Error("update tenant record failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, before, existing, false, false)
	return existing, nil
}

func (s *masterfileServiceImpl) DeleteTenantRecord(ctx context.Context, id string) error {
	existing, err := s.tenantRepo.GetByUUID(ctx, id)
	if err != nil {
		return xerr.ErrNotFound
	}
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		zlog.Error("delete tenant record failed", zap.Error(err))
		return xerr.ErrDB
	}
	s.afterWrite(ctx, nil, existing, false, true)
	return nil
}

func (s *masterfileServiceImpl) ListTenantRecords(ctx context.Context) ([]entity.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

// ---------- 租约 ----------

func (s *masterfileServiceImpl) CreateLease(ctx context.Context, req *request.SaveLeaseRequest) (*entity.Lease, error) {
	if req.UnitId == "" || req.RenterId == "" || req.StartDate == "" || req.EndDate == "" {
		return nil, xerr.ErrParam
	}
	if _, err := s.unitRepo.GetByUUID(ctx, req.UnitId); err != nil {
		return nil, xerr.ErrNotFound
	}
	if _, err := s.tenantRepo.GetByUUID(ctx, req.RenterId); err != nil {
		return nil, xerr.ErrNotFound
	}
	status := req.Status
	if status == "" {
		status = entity.LeaseStatusActive
	}
	now := time.Now()
	l := &entity.Lease{
		Uuid:       uuid.New().String(),
		UnitId:     req.UnitId,
		RenterId:   req.RenterId,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		RentAmount: req.RentAmount,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.leaseRepo.Create(ctx, l); err != nil {
		zlog.Error("create lease failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, nil, l, true, false)
	return l, nil
}

func (s *masterfileServiceImpl) UpdateLease(ctx context.Context, req *request.SaveLeaseRequest) (*entity.Lease, error) {
	if req.Uuid == "" {
		return nil, xerr.ErrParam
	}
	existing, err := s.leaseRepo.GetByUUID(ctx, req.Uuid)
	if err != nil {
		return nil, xerr.ErrNotFound
	}
	before := s.pipeline.CaptureBefore(existing)
	if req.StartDate != "" {
		existing.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		existing.EndDate = req.EndDate
	}
	if req.RentAmount != "" {
		existing.RentAmount = req.RentAmount
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.UpdatedAt = time.Now()
	if err := s.leaseRepo.Update(ctx, existing); err != nil {
		zlog.Error("update lease failed", zap.Error(err))
		return nil, xerr.ErrDB
	}
	s.afterWrite(ctx, before, existing, false, false)
	return existing, nil
}

func (s *masterfileServiceImpl) DeleteLease(ctx context.Context, id string) error {
	existing, err := s.leaseRepo.GetByUUID(ctx, id)
	if err != nil {
		return xerr.ErrNotFound
	}
	if err := s.leaseRepo.Delete(ctx, id); err != nil {
		zlog.Error("delete lease failed", zap.Error(err))
		return xerr.ErrDB
	}
	s.afterWrite(ctx, nil, existing, false, true)
	return nil
}

func (s *masterfileServiceImpl) ListLeases(ctx context.Context, unitID string) ([]entity.Lease, error) {
	if unitID == "" {
		return nil, xerr.ErrParam
	}
	return s.leaseRepo.ListByUnit(ctx, unitID)
}
