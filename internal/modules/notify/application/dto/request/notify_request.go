package request

// CreateNotificationRequest 编程式创建通知（业务子系统内部调用）
type CreateNotificationRequest struct {
	RecipientId string `json:"recipient_id"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Payload     string `json:"payload"`
}

type ListNotificationsRequest struct {
	Category   string `json:"category" form:"category"`
	UnreadOnly bool   `json:"unread_only" form:"unread_only"`
	Limit      int    `json:"limit" form:"limit"`
	Offset     int    `json:"offset" form:"offset"`
}

type MarkReadRequest struct {
	Uuid string `json:"uuid"`
}

// UpdatePreferenceRequest 更新当前用户通知偏好
type UpdatePreferenceRequest struct {
	EmailMasterfile *bool `json:"email_masterfile"`
	EmailLease      *bool `json:"email_lease"`
	EmailInvoice    *bool `json:"email_invoice"`
	EmailPayment    *bool `json:"email_payment"`
	EmailSystem     *bool `json:"email_system"`

	PushMasterfile *bool `json:"push_masterfile"`
	PushLease      *bool `json:"push_lease"`
	PushInvoice    *bool `json:"push_invoice"`
	PushPayment    *bool `json:"push_payment"`
	PushSystem     *bool `json:"push_system"`

	DailyDigest *bool   `json:"daily_digest"`
	DigestTime  *string `json:"digest_time"`
}

type ListChangeLogRequest struct {
	EntityType string `json:"entity_type" form:"entity_type"`
	EntityId   string `json:"entity_id" form:"entity_id"`
	Limit      int    `json:"limit" form:"limit"`
	Offset     int    `json:"offset" form:"offset"`
}

type EntityHistoryRequest struct {
	EntityType string `json:"entity_type" form:"entity_type"`
	EntityId   string `json:"entity_id" form:"entity_id"`
}
