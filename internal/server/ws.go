package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local single-player server, any page may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades the request and hands the connection to the
// session. One session serves the whole process; a reconnect simply
// takes over the socket.
func WSHandler(log *zap.Logger, session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()
		session.HandleConnection(conn)
	}
}
