package notification

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"musicstudio/internal/domain"
	jwtsvc "musicstudio/internal/pkg/jwt"
	"musicstudio/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins in dev; tighten behind a reverse proxy in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades staff dashboard connections onto the notification feed.
type WSHandler struct {
	hub *Hub
	jwt *jwtsvc.Service
}

func NewWSHandler(hub *Hub, jwt *jwtsvc.Service) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwt}
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/notifications", h.HandleWebSocket)
}

// HandleWebSocket authenticates via ?token= because browsers cannot set
// headers on websocket upgrades.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}
	if claims.Role != string(domain.RoleAdmin) && claims.Role != string(domain.RoleStaff) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Staff access required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed user_id=%d error=%q", claims.UserID, err)
		return
	}

	cl := h.hub.Register(claims.UserID, conn)
	defer func() {
		h.hub.Unregister(claims.UserID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go pingLoop(cl)
	readLoop(conn)
}

func pingLoop(cl *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := cl.ping(); err != nil {
			return
		}
	}
}

// readLoop drains client frames; the feed is one-way but reading is required
// to process pongs and detect disconnects.
func readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
