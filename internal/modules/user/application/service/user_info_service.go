package service

import (
	"RentLink/internal/modules/user/application/dto/request"
	"RentLink/internal/modules/user/application/dto/respond"
	"RentLink/internal/modules/user/domain/entity"
	"RentLink/internal/modules/user/domain/repository"
	"RentLink/pkg/util/myjwt"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"gorm.io/gorm"
	"errors"
)

type UserInfoService interface {
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
}

type userInfoServiceImpl struct {
	repo repository.UserInfoRepository
}

// NewUserInfoService 构造函数
func NewUserInfoService(repo repository.UserInfoRepository) UserInfoService {
	return &userInfoServiceImpl{repo: repo}
}

func (u *userInfoServiceImpl) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	if req.Username == "" || req.Password == "" {
		return nil, xerr.ErrParam
	}

	user, err := u.repo.GetUserInfoByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.Unauthorized, "用户名或密码错误")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if user.Password != req.Password {
		return nil, xerr.New(xerr.Unauthorized, "用户名或密码错误")
	}
	if user.Status != entity.StatusActive {
		return nil, xerr.New(xerr.Forbidden, "账号已停用")
	}

	token, err := myjwt.GenerateToken(user.Uuid, user.Username, user.TenantId)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	return &respond.LoginRespond{
		Uuid:     user.Uuid,
		Username: user.Username,
		Nickname: user.Nickname,
		TenantId: user.TenantId,
		Role:     user.Role,
		Token:    token,
	}, nil
}
