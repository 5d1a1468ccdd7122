package handler

import (
	"RentLink/internal/modules/notify/application/dto/request"
	"RentLink/internal/modules/notify/application/service"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/back"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc        service.NotificationService
	dispatcher *service.Dispatcher
}

func NewNotificationHandler(svc service.NotificationService, dispatcher *service.Dispatcher) *NotificationHandler {
	return &NotificationHandler{svc: svc, dispatcher: dispatcher}
}

// Create 编程式创建并投递一条通知（系统公告、账单提醒等）
func (h *NotificationHandler) Create(c *gin.Context) {
	var req request.CreateNotificationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	n, err := h.svc.Notify(c.Request.Context(), req)
	if err == nil && n != nil {
		h.dispatcher.Dispatch(c.Request.Context(), n)
	}
	back.Result(c, n, err)
}

func (h *NotificationHandler) List(c *gin.Context) {
	var req request.ListNotificationsRequest
	if err := c.BindQuery(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.List(c.Request.Context(), repository.ListFilter{
		Category:   req.Category,
		UnreadOnly: req.UnreadOnly,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	back.Result(c, data, err)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	cnt, err := h.svc.UnreadCount(c.Request.Context())
	back.Result(c, gin.H{"unread": cnt}, err)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	err := h.svc.MarkRead(c.Request.Context(), req.Uuid)
	back.Result(c, nil, err)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	err := h.svc.MarkAllRead(c.Request.Context())
	back.Result(c, nil, err)
}

func (h *NotificationHandler) ClearRead(c *gin.Context) {
	deleted, err := h.svc.ClearRead(c.Request.Context())
	back.Result(c, gin.H{"deleted": deleted}, err)
}
