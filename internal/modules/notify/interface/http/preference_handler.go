package handler

import (
	"RentLink/internal/modules/notify/application/dto/request"
	"RentLink/internal/modules/notify/application/service"
	"RentLink/pkg/back"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	svc service.PreferenceService
}

func NewPreferenceHandler(svc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{svc: svc}
}

// Get 返回当前用户偏好，未设置过时返回默认值（全开启）
func (h *PreferenceHandler) Get(c *gin.Context) {
	data, err := h.svc.Get(c.Request.Context())
	back.Result(c, data, err)
}

func (h *PreferenceHandler) Update(c *gin.Context) {
	var req request.UpdatePreferenceRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.Update(c.Request.Context(), req)
	back.Result(c, data, err)
}
