package handler

import (
	"RentLink/internal/modules/user/application/dto/request"
	"RentLink/internal/modules/user/application/service"
	"RentLink/pkg/back"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type UserInfoHandler struct {
	svc service.UserInfoService
}

func NewUserInfoHandler(svc service.UserInfoService) *UserInfoHandler {
	return &UserInfoHandler{svc: svc}
}

func (h *UserInfoHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.Login(req)
	back.Result(c, data, err)
}
