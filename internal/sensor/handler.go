package sensor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mensa/internal/coordinator"
)

type Handler struct {
	coord *coordinator.Coordinator
}

func NewHandler(coord *coordinator.Coordinator) *Handler {
	return &Handler{coord: coord}
}

// --------------------------------------------------
// GET /sensors
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	data := h.coord.Data()
	if data == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "canteen not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated_at": data.UpdatedAt,
		"sensors":    Project(data),
	})
}
