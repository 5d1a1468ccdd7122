package handler

import (
	"RentLink/internal/modules/masterfile/application/dto/request"
	"RentLink/internal/modules/masterfile/application/service"
	"RentLink/pkg/back"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type MasterfileHandler struct {
	svc service.MasterfileService
}

func NewMasterfileHandler(svc service.MasterfileService) *MasterfileHandler {
	return &MasterfileHandler{svc: svc}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.BindJSON(req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return false
	}
	return true
}

// ---------- 业主 ----------

func (h *MasterfileHandler) CreateLandlord(c *gin.Context) {
	var req request.SaveLandlordRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.CreateLandlord(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) UpdateLandlord(c *gin.Context) {
	var req request.SaveLandlordRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.UpdateLandlord(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) DeleteLandlord(c *gin.Context) {
	var req request.DeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.svc.DeleteLandlord(c.Request.Context(), req.Uuid)
	back.Result(c, nil, err)
}

func (h *MasterfileHandler) ListLandlords(c *gin.Context) {
	data, err := h.svc.ListLandlords(c.Request.Context())
	back.Result(c, data, err)
}

// ---------- 物业 ----------

func (h *MasterfileHandler) CreateProperty(c *gin.Context) {
	var req request.SavePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.CreateProperty(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) UpdateProperty(c *gin.Context) {
	var req request.SavePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.UpdateProperty(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) DeleteProperty(c *gin.Context) {
	var req request.DeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.svc.DeleteProperty(c.Request.Context(), req.Uuid)
	back.Result(c, nil, err)
}

func (h *MasterfileHandler) ListProperties(c *gin.Context) {
	data, err := h.svc.ListProperties(c.Request.Context())
	back.Result(c, data, err)
}

func (h *MasterfileHandler) AssignManager(c *gin.Context) {
	var req request.ManagerAssignRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.svc.AssignManager(c.Request.Context(), req.PropertyId, req.UserId)
	back.Result(c, nil, err)
}

func (h *MasterfileHandler) UnassignManager(c *gin.Context) {
	var req request.ManagerAssignRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.svc.UnassignManager(c.Request.Context(), req.PropertyId, req.UserId)
	back.Result(c, nil, err)
}

// ---------- 单元 ----------

func (h *MasterfileHandler) CreateUnit(c *gin.Context) {
	var req request.SaveUnitRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.CreateUnit(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) UpdateUnit(c *gin.Context) {
	var req request.SaveUnitRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.UpdateUnit(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) DeleteUnit(c *gin.Context) {
	var req request.DeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.svc.DeleteUnit(c.Request.Context(), req.Uuid)
	back.Result(c, nil, err)
}

func (h *MasterfileHandler) ListUnits(c *gin.Context) {
	data, err := h.svc.ListUnits(c.Request.Context(), c.Query("property_id"))
	back.Result(c, data, err)
}

// ---------- 租客 ----------

func (h *MasterfileHandler) CreateTenantRecord(c *gin.Context) {
	var req request.SaveTenantRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.CreateTenantRecord(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) UpdateTenantRecord(c *gin.Context) {
	var req request.SaveTenantRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.UpdateTenantRecord(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) DeleteTenantRecord(c *gin.Context) {
	var req request.DeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.svc.DeleteTenantRecord(c.Request.Context(), req.Uuid)
	back.Result(c, nil, err)
}

func (h *MasterfileHandler) ListTenantRecords(c *gin.Context) {
	data, err := h.svc.ListTenantRecords(c.Request.Context())
	back.Result(c, data, err)
}

// ---------- 租约 ----------

func (h *MasterfileHandler) CreateLease(c *gin.Context) {
	var req request.SaveLeaseRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.CreateLease(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) UpdateLease(c *gin.Context) {
	var req request.SaveLeaseRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.svc.UpdateLease(c.Request.Context(), &req)
	back.Result(c, data, err)
}

func (h *MasterfileHandler) DeleteLease(c *gin.Context) {
	var req request.DeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.svc.DeleteLease(c.Request.Context(), req.Uuid)
	back.Result(c, nil, err)
}

func (h *MasterfileHandler) ListLeases(c *gin.Context) {
	data, err := h.svc.ListLeases(c.Request.Context(), c.Query("unit_id"))
	back.Result(c, data, err)
}
