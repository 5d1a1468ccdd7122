package service

import (
	"context"
	"time"

	"RentLink/internal/modules/notify/application/dto/request"
	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/tenant"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"
)

// PreferenceService 通知偏好读写
// 无偏好行按全渠道开启返回（opt-out 模型）
type PreferenceService interface {
	Get(ctx context.Context) (*entity.NotificationPreference, error)
	Update(ctx context.Context, req request.UpdatePreferenceRequest) (*entity.NotificationPreference, error)
}

type preferenceServiceImpl struct {
	repo repository.PreferenceRepository
}

func NewPreferenceService(repo repository.PreferenceRepository) PreferenceService {
	return &preferenceServiceImpl{repo: repo}
}

// defaultPreference 全开默认值
func defaultPreference(scope tenant.Scope) *entity.NotificationPreference {
	now := time.Now()
	return &entity.NotificationPreference{
		TenantId:        scope.TenantID,
		UserId:          scope.UserID,
		EmailMasterfile: true,
		EmailLease:      true,
		EmailInvoice:    true,
		EmailPayment:    true,
		EmailSystem:     true,
		PushMasterfile:  true,
		PushLease:       true,
		PushInvoice:     true,
		PushPayment:     true,
		PushSystem:      true,
		DailyDigest:     false,
		DigestTime:      "07:00",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *preferenceServiceImpl) Get(ctx context.Context) (*entity.NotificationPreference, error) {
	scope, err := tenant.FromOrError(ctx)
	if err != nil {
		return nil, xerr.ErrNoTenant
	}
	pref, err := s.repo.GetByUserID(ctx, scope.UserID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if pref == nil {
		return defaultPreference(scope), nil
	}
	return pref, nil
}

func (s *preferenceServiceImpl) Update(ctx context.Context, req request.UpdatePreferenceRequest) (*entity.NotificationPreference, error) {
	scope, err := tenant.FromOrError(ctx)
	if err != nil {
		return nil, xerr.ErrNoTenant
	}
	pref, err := s.repo.GetByUserID(ctx, scope.UserID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if pref == nil {
		pref = defaultPreference(scope)
	}

	applyBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	applyBool(&pref.EmailMasterfile, req.EmailMasterfile)
	applyBool(&pref.EmailLease, req.EmailLease)
	applyBool(&pref.EmailInvoice, req.EmailInvoice)
	applyBool(&pref.EmailPayment, req.EmailPayment)
	applyBool(&pref.EmailSystem, req.EmailSystem)
	applyBool(&pref.PushMasterfile, req.PushMasterfile)
	applyBool(&pref.PushLease, req.PushLease)
	applyBool(&pref.PushInvoice, req.PushInvoice)
	applyBool(&pref.PushPayment, req.PushPayment)
	applyBool(&pref.PushSystem, req.PushSystem)
	applyBool(&pref.DailyDigest, req.DailyDigest)
	if req.DigestTime != nil {
		pref.DigestTime = *req.DigestTime
	}
	pref.UpdatedAt = time.Now()

	if err := s.repo.Upsert(ctx, pref); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return pref, nil
}
