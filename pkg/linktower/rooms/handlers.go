package rooms

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/linktower/linktower/pkg/linktower/auth"
	"github.com/linktower/linktower/pkg/linktower/linklist"
	"github.com/linktower/linktower/pkg/linktower/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler handles room-related requests
type Handler struct {
	db      *gorm.DB
	baseURL string
}

// NewHandler creates a new rooms handler. baseURL is the public root
// of the site, used to recognize doors (links pointing at other rooms).
func NewHandler(db *gorm.DB, baseURL string) *Handler {
	return &Handler{db: db, baseURL: baseURL}
}

// CreateRoomRequest represents the request to create a room.
// Links is the raw text of the links field, one label or
// "[description](url)" entry per line.
type CreateRoomRequest struct {
	Title     string `json:"title"`
	FloorName string `json:"floor_name"`
	Password  string `json:"password"`
	Links     string `json:"links"`
}

// UpdateRoomRequest represents the request to edit a room. Password is
// the floor password; NewPassword, when non-empty, replaces the room
// password.
type UpdateRoomRequest struct {
	Title       string `json:"title"`
	FloorName   string `json:"floor_name"`
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
	Links       string `json:"links"`
}

// PasswordRequest carries a room password for unlock and delete
type PasswordRequest struct {
	Password string `json:"password"`
}

// LinkResponse represents a single link in API responses
type LinkResponse struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// LabelGroupResponse is one label heading and its links, in stored order
type LabelGroupResponse struct {
	Label string         `json:"label"`
	Links []LinkResponse `json:"links"`
}

// DoorResponse points back to another room that links here
type DoorResponse struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	FloorName string `json:"floor_name"`
}

// RoomResponse represents a room view in API responses. Labels are
// sorted by label string, the unlabeled group first.
type RoomResponse struct {
	Slug      string               `json:"slug"`
	Title     string               `json:"title"`
	FloorName string               `json:"floor_name"`
	Labels    []LabelGroupResponse `json:"labels"`
	Doors     []DoorResponse       `json:"doors,omitempty"`
}

// EditFormResponse carries the current room fields in the editable
// text format, for pre-filling the edit form
type EditFormResponse struct {
	Title     string `json:"title"`
	FloorName string `json:"floor_name"`
	Links     string `json:"links"`
}

// Create creates a new room with its link collection. All parser and
// form errors are accumulated and returned together; nothing persists
// unless the whole submission is clean.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	formErrs := h.validateRoomForm(req.Title, req.FloorName, req.Password, req.Links)
	parsed := linklist.Parse(req.Links)
	if len(parsed.BadLines) > 0 || len(formErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": append(parsed.BadLines, formErrs...)})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	room := models.Room{
		Title:        req.Title,
		FloorName:    req.FloorName,
		Slug:         h.generateSlug(),
		PasswordHash: hash,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		for _, link := range parsed.Links {
			record := models.Link{
				RoomID:      room.ID,
				URL:         link.URL,
				DomainName:  domainOf(link.URL),
				Description: link.Description,
				Label:       link.Label,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	logrus.WithFields(logrus.Fields{
		"slug":  room.Slug,
		"floor": room.FloorName,
		"links": len(parsed.Links),
	}).Info("room created")

	c.JSON(http.StatusCreated, h.roomResponse(room))
}

// Get returns a room view: its labeled links in sorted label order
// plus the doors leading here from other rooms
func (h *Handler) Get(c *gin.Context) {
	slug := c.Param("slug")

	var room models.Room
	if err := h.db.Where("slug = ?", slug).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, h.roomResponse(room))
}

// EditForm returns the room's fields with the link collection rendered
// back into the editable text format
func (h *Handler) EditForm(c *gin.Context) {
	slug := c.Param("slug")

	var room models.Room
	if err := h.db.Where("slug = ?", slug).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	stored, err := h.storedLinks(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, EditFormResponse{
		Title:     room.Title,
		FloorName: room.FloorName,
		Links:     linklist.RenderText(linklist.GroupByLabel(stored)),
	})
}

// Update applies an edit submission: field changes plus the link diff,
// all in one transaction so a failed insert cannot leave the room half
// updated.
func (h *Handler) Update(c *gin.Context) {
	slug := c.Param("slug")

	var room models.Room
	if err := h.db.Where("slug = ?", slug).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	formErrs := h.validateRoomForm(req.Title, req.FloorName, req.Password, req.Links)
	parsed := linklist.Parse(req.Links)
	if len(parsed.BadLines) > 0 || len(formErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": append(parsed.BadLines, formErrs...)})
		return
	}

	stored, err := h.storedLinks(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}
	added, removed := linklist.Diff(stored, parsed.Links)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.Title != room.Title {
			if err := tx.Model(&room).Update("title", req.Title).Error; err != nil {
				return err
			}
		}
		if req.FloorName != room.FloorName {
			if err := tx.Model(&room).Update("floor_name", req.FloorName).Error; err != nil {
				return err
			}
		}
		if req.NewPassword != "" {
			hash, err := auth.HashPassword(req.NewPassword)
			if err != nil {
				return err
			}
			if err := tx.Model(&room).Update("password_hash", hash).Error; err != nil {
				return err
			}
		}
		for _, link := range removed {
			if err := tx.Where("room_id = ? AND url = ?", room.ID, link.URL).
				Delete(&models.Link{}).Error; err != nil {
				return err
			}
		}
		for _, link := range added {
			record := models.Link{
				RoomID:      room.ID,
				URL:         link.URL,
				DomainName:  domainOf(link.URL),
				Description: link.Description,
				Label:       link.Label,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		return
	}

	logrus.WithFields(logrus.Fields{
		"slug":    room.Slug,
		"added":   len(added),
		"removed": len(removed),
	}).Info("room updated")

	c.JSON(http.StatusOK, h.roomResponse(room))
}

// Unlock verifies the room password and issues a token that authorizes
// destructive operations on this room without resending the password
func (h *Handler) Unlock(c *gin.Context) {
	slug := c.Param("slug")

	var room models.Room
	if err := h.db.Where("slug = ?", slug).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !auth.CheckPassword(req.Password, room.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}

	token, err := auth.GenerateRoomToken(room.Slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Delete removes a room and all of its links. The caller must present
// the room password or an unlock token for this room.
func (h *Handler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	var room models.Room
	if err := h.db.Where("slug = ?", slug).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if !h.authorized(c, room) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.Link{}).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}

	logrus.WithField("slug", room.Slug).Info("room deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// authorized accepts either an unlock token for this room or the room
// password in the request body
func (h *Handler) authorized(c *gin.Context, room models.Room) bool {
	if slug, ok := auth.UnlockedRoom(c); ok && slug == room.Slug {
		return true
	}
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return false
	}
	return auth.CheckPassword(req.Password, room.PasswordHash)
}

// storedLinks loads a room's links in insertion order
func (h *Handler) storedLinks(roomID uint) ([]linklist.Link, error) {
	var records []models.Link
	if err := h.db.Where("room_id = ?", roomID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	links := make([]linklist.Link, len(records))
	for i, record := range records {
		links[i] = linklist.Link{
			URL:         record.URL,
			Label:       record.Label,
			Description: record.Description,
		}
	}
	return links, nil
}

func (h *Handler) roomResponse(room models.Room) RoomResponse {
	stored, err := h.storedLinks(room.ID)
	if err != nil {
		stored = nil
	}

	groups := linklist.GroupByLabel(stored)
	labels := make([]LabelGroupResponse, len(groups))
	for i, group := range groups {
		links := make([]LinkResponse, len(group.Links))
		for j, link := range group.Links {
			links[j] = LinkResponse{URL: link.URL, Description: link.Description}
		}
		labels[i] = LabelGroupResponse{Label: group.Label, Links: links}
	}

	return RoomResponse{
		Slug:      room.Slug,
		Title:     room.Title,
		FloorName: room.FloorName,
		Labels:    labels,
		Doors:     h.doorsFor(room.Slug),
	}
}

// doorsFor finds rooms whose link collection contains a link pointing
// at this room's page, excluding the room itself
func (h *Handler) doorsFor(slug string) []DoorResponse {
	target := h.baseURL + "/rooms/" + slug

	var links []models.Link
	if err := h.db.Where("url = ?", target).Find(&links).Error; err != nil {
		return nil
	}

	var doors []DoorResponse
	seen := make(map[uint]bool)
	for _, link := range links {
		if seen[link.RoomID] {
			continue
		}
		seen[link.RoomID] = true

		var room models.Room
		if err := h.db.First(&room, link.RoomID).Error; err != nil {
			continue
		}
		if room.Slug == slug {
			continue
		}
		doors = append(doors, DoorResponse{
			Slug:      room.Slug,
			Title:     room.Title,
			FloorName: room.FloorName,
		})
	}
	return doors
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// RegisterRoutes registers room routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms", h.Create)
	rg.GET("/rooms/:slug", h.Get)
	rg.GET("/rooms/:slug/edit", h.EditForm)
	rg.PUT("/rooms/:slug", h.Update)
	rg.POST("/rooms/:slug/unlock", h.Unlock)
	rg.DELETE("/rooms/:slug", h.Delete)
}
