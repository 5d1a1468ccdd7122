package handler

import (
	"RentLink/internal/modules/notify/application/dto/request"
	"RentLink/internal/modules/notify/application/service"
	"RentLink/pkg/back"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type ChangeLogHandler struct {
	svc service.ChangeLogService
}

func NewChangeLogHandler(svc service.ChangeLogService) *ChangeLogHandler {
	return &ChangeLogHandler{svc: svc}
}

func (h *ChangeLogHandler) List(c *gin.Context) {
	var req request.ListChangeLogRequest
	if err := c.BindQuery(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.List(c.Request.Context(), req)
	back.Result(c, data, err)
}

// History 单个实体的完整变更历史，实体删除后依然可查
func (h *ChangeLogHandler) History(c *gin.Context) {
	var req request.EntityHistoryRequest
	if err := c.BindQuery(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	if req.EntityType == "" || req.EntityId == "" {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.EntityHistory(c.Request.Context(), req.EntityType, req.EntityId)
	back.Result(c, data, err)
}
