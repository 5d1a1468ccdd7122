package handler

import (
	"net/http"
	"time"

	userEntity "RentLink/internal/modules/user/domain/entity"
	userRepository "RentLink/internal/modules/user/domain/repository"
	"RentLink/pkg/tenant"
	"RentLink/pkg/util/myjwt"
	"RentLink/pkg/ws"
	"RentLink/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WsHandler 实时通知通道，连接即在线，断开即离线
// 浏览器原生 WebSocket 不能带自定义 Header，token 走 URL 参数，路由挂在鉴权组外
type WsHandler struct {
	hub      *ws.Hub
	userRepo userRepository.UserInfoRepository
}

func NewWsHandler(hub *ws.Hub, userRepo userRepository.UserInfoRepository) *WsHandler {
	return &WsHandler{hub: hub, userRepo: userRepo}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := myjwt.ParseToken(token)
	if err != nil || claims == nil || claims.Uuid == "" || claims.TenantId == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx := tenant.With(c.Request.Context(), tenant.Scope{TenantID: claims.TenantId, UserID: claims.Uuid})
	user, err := h.userRepo.GetByUUID(ctx, claims.Uuid)
	if err != nil || user == nil || user.Status != userEntity.StatusActive {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Error(err.Error())
		return
	}

	client := ws.NewClient(claims.Uuid, conn)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	conn.SetReadLimit(1 << 16)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go client.WritePump()

	// 通道只下行推送，上行仅用于保活，读到什么都丢弃
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}
