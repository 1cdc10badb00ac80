package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // layar dapur berjalan di jaringan lokal
	},
}

var kdsRoles = map[string]bool{
	"kitchen": true,
	"cashier": true,
	"manager": true,
}

// KDSHandler -> endpoint WebSocket untuk layar dapur / kasir
func KDSHandler(c *gin.Context) {
	role := c.DefaultQuery("role", "kitchen")
	if !kdsRoles[role] {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	kds.RegisterClient(ws, role)

	// Baca pesan sampai client disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kds.UnregisterClient(ws)
}
