package changes

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/realtime"
	"github.com/wangyukai585/BioAlgoDB/utils/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS already governs which browsers reach the API
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts the catalog change feed
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, hub *realtime.Hub) {
	r.GET("/ws/changes", func(c *gin.Context) {
		Subscribe(c, hub)
	})
}

// Subscribe upgrades the request to a websocket and streams change events until the client leaves
// @Summary Catalog change feed
// @Description Websocket stream of {"entity","action","id"} events emitted after each committed write
// @Tags Changes
// @Success 101
// @Router /ws/changes [get]
func Subscribe(c *gin.Context, hub *realtime.Hub) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response
		logging.FromContext(c).WithError(err).Warn("websocket upgrade failed")
		return
	}
	hub.Serve(conn)
}
