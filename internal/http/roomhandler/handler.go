package roomhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatrelaygo/internal/ws"
)

// Handler serves read-only views of the hub's live rooms. Membership and
// room data is in-memory only; listings are point-in-time snapshots.
type Handler struct {
	hub *ws.Hub
}

func New(hub *ws.Hub) *Handler { return &Handler{hub: hub} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/rooms", h.list)
	r.GET("/rooms/:name", h.info)
}

func (h *Handler) list(c *gin.Context) {
	var q ListRoomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rooms := h.hub.Rooms()
	if q.Offset >= len(rooms) {
		rooms = nil
	} else {
		rooms = rooms[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(rooms) {
		rooms = rooms[:q.Limit]
	}

	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomResponse{Name: r.Name, Members: r.Members})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) info(c *gin.Context) {
	name := c.Param("name")
	members, ok := h.hub.MemberCount(name)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}
	c.JSON(http.StatusOK, RoomResponse{Name: name, Members: members})
}
