package floors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linktower/linktower/pkg/linktower/models"
	"gorm.io/gorm"
)

// Handler handles floor-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new floors handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RoomSummary is a room entry in a floor listing
type RoomSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// FloorResponse lists the rooms sharing one floor name
type FloorResponse struct {
	FloorName string        `json:"floor_name"`
	Rooms     []RoomSummary `json:"rooms"`
}

// Get returns all rooms on a floor. A floor only exists through its
// rooms, so a floor with none is a 404.
func (h *Handler) Get(c *gin.Context) {
	floorName := c.Param("name")

	var rooms []models.Room
	if err := h.db.Where("floor_name = ?", floorName).Order("id").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	if len(rooms) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Floor not found"})
		return
	}

	summaries := make([]RoomSummary, len(rooms))
	for i, room := range rooms {
		summaries[i] = RoomSummary{Slug: room.Slug, Title: room.Title}
	}

	c.JSON(http.StatusOK, FloorResponse{FloorName: floorName, Rooms: summaries})
}

// RegisterRoutes registers floor routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/floors/:name", h.Get)
}
