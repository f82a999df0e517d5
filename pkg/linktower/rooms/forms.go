package rooms

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/linktower/linktower/pkg/linktower/auth"
	"github.com/linktower/linktower/pkg/linktower/models"
	"gorm.io/gorm"
)

var floorNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// validateRoomForm checks the room fields of a create or edit
// submission. Every problem becomes one error string; all are
// collected and returned together so the user can fix them in one
// pass.
func (h *Handler) validateRoomForm(title, floorName, password, links string) []string {
	var errs []string

	if title == "" {
		errs = append(errs, "Title field is empty")
	}
	if floorName == "" {
		errs = append(errs, "Floor Name field is empty")
	}
	if password == "" {
		errs = append(errs, "Password field is empty")
	}
	if links == "" {
		errs = append(errs, "Links field is empty")
	}

	if floorName != "" && !floorNameRegex.MatchString(floorName) {
		errs = append(errs, fmt.Sprintf("Floor name must be ascii letters and numbers only, %q not allowed", illegalFloorChars(floorName)))
	}

	ok, err := h.verifyFloorPassword(floorName, password)
	if err == nil && !ok {
		errs = append(errs, fmt.Sprintf("Incorrect password for floor %s", floorName))
	}

	return errs
}

// illegalFloorChars returns the characters of a floor name that are
// not ASCII letters or digits, deduplicated, in first-seen order
func illegalFloorChars(floorName string) string {
	seen := make(map[rune]bool)
	var illegal []rune
	for _, r := range floorName {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			continue
		}
		if !seen[r] {
			seen[r] = true
			illegal = append(illegal, r)
		}
	}
	return string(illegal)
}

// verifyFloorPassword gates floor membership. A floor with no rooms is
// free to claim; otherwise the submitted password must match the hash
// of the floor's first room.
func (h *Handler) verifyFloorPassword(floorName, password string) (bool, error) {
	var room models.Room
	err := h.db.Where("floor_name = ?", floorName).Order("id").First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return auth.CheckPassword(password, room.PasswordHash), nil
}
