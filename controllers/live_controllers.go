package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/foodiego/live"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type LiveController struct {
	hub *live.Hub
}

func NewLiveController(hub *live.Hub) *LiveController {
	return &LiveController{hub: hub}
}

// Connect upgrades an admin's request and keeps it registered on the hub
// until the client goes away.
func (lc *LiveController) Connect(c *gin.Context) {
	session, ok := services.SessionFromContext(c.Request.Context())
	if !ok {
		respondActionError(c, services.ErrUnauthorized)
		return
	}
	if !session.IsAdmin() {
		respondActionError(c, services.ErrForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.InfoLogger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	lc.hub.Register(ws, session.Email)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	lc.hub.Unregister(ws)
}
