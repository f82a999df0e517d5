package rooms

import (
	"math/rand"
	"time"

	"github.com/linktower/linktower/pkg/linktower/models"
)

const slugCharset = "abcdefghijklmnopqrstuvwxyz"

// generateRandomString creates a random string of given length
func generateRandomString(length int, charset string) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[r.Intn(len(charset))]
	}
	return string(b)
}

// generateSlug creates a room slug that is unique in the store,
// retrying on the (very unlikely) collision
func (h *Handler) generateSlug() string {
	const length = 8

	for attempts := 0; attempts < 10; attempts++ {
		slug := generateRandomString(length, slugCharset)
		var existing models.Room
		if err := h.db.Where("slug = ?", slug).First(&existing).Error; err != nil {
			return slug
		}
	}

	// Fallback to longer slug if short ones are exhausted
	return generateRandomString(12, slugCharset)
}
