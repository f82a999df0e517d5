package discover

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linktower/linktower/pkg/linktower/models"
	"gorm.io/gorm"
)

// Handler handles discovery requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new discover handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RoomSummary is a room entry in discovery results
type RoomSummary struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	FloorName string `json:"floor_name"`
}

// LinkSummary is a link entry in discovery results
type LinkSummary struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	DomainName  string `json:"domain_name"`
}

// DiscoverResponse carries a random sample of floors, rooms and links
type DiscoverResponse struct {
	Floors []string      `json:"floors"`
	Rooms  []RoomSummary `json:"rooms"`
	Links  []LinkSummary `json:"links"`
}

// Get returns up to `limit` random floor names, rooms and links. When
// `domain` is set, all three are restricted to rooms and links whose
// link domain matches.
func (h *Handler) Get(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}
	domain := c.Query("domain")

	floors, err := h.randomFloors(limit, domain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch floors"})
		return
	}
	rooms, err := h.randomRooms(limit, domain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	links, err := h.randomLinks(limit, domain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, DiscoverResponse{Floors: floors, Rooms: rooms, Links: links})
}

// roomIDsWithDomain is the subquery restricting rooms to those holding
// a link with the given domain
func (h *Handler) roomIDsWithDomain(domain string) *gorm.DB {
	return h.db.Model(&models.Link{}).Select("room_id").Where("domain_name = ?", domain)
}

func (h *Handler) randomFloors(limit int, domain string) ([]string, error) {
	query := h.db.Model(&models.Room{}).Distinct()
	if domain != "" {
		query = query.Where("id IN (?)", h.roomIDsWithDomain(domain))
	}

	floors := []string{}
	err := query.Order("RANDOM()").Limit(limit).Pluck("floor_name", &floors).Error
	return floors, err
}

func (h *Handler) randomRooms(limit int, domain string) ([]RoomSummary, error) {
	query := h.db.Model(&models.Room{})
	if domain != "" {
		query = query.Where("id IN (?)", h.roomIDsWithDomain(domain))
	}

	var rooms []models.Room
	if err := query.Order("RANDOM()").Limit(limit).Find(&rooms).Error; err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, len(rooms))
	for i, room := range rooms {
		summaries[i] = RoomSummary{Slug: room.Slug, Title: room.Title, FloorName: room.FloorName}
	}
	return summaries, nil
}

func (h *Handler) randomLinks(limit int, domain string) ([]LinkSummary, error) {
	query := h.db.Model(&models.Link{})
	if domain != "" {
		query = query.Where("domain_name = ?", domain)
	}

	var links []models.Link
	if err := query.Order("RANDOM()").Limit(limit).Find(&links).Error; err != nil {
		return nil, err
	}

	summaries := make([]LinkSummary, len(links))
	for i, link := range links {
		summaries[i] = LinkSummary{URL: link.URL, Description: link.Description, DomainName: link.DomainName}
	}
	return summaries, nil
}

// RegisterRoutes registers discovery routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/discover", h.Get)
}
