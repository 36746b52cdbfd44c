package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wecode-dev/wecode-server/internal/core"
)

// RoomHandlers provides read-only room info for the join page.
type RoomHandlers struct {
	store *core.RoomStore
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(store *core.RoomStore, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		store: store,
		log:   logger,
	}
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	RoomID      string `json:"roomId"`
	Language    string `json:"language"`
	MemberCount int    `json:"memberCount"`
	StrokeCount int    `json:"strokeCount"`
}

// GetRoom returns occupancy info for a live room.
// GET /api/rooms/:id
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	stats, ok := h.store.Stats(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	c.JSON(http.StatusOK, RoomResponse{
		RoomID:      stats.RoomID,
		Language:    stats.Language,
		MemberCount: stats.MemberCount,
		StrokeCount: stats.StrokeCount,
	})
}
