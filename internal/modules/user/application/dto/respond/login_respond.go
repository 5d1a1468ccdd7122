package respond

type LoginRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	TenantId string `json:"tenant_id"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}
