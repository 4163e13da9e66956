package jobs

import (
	"context"
	"log"
	"time"

	"coursehub/database"
	"coursehub/internal/domain/users"
)

// HandleDeactivateUsers flips is_active off for accounts whose last
// login is older than the inactivity window. Accounts that never
// logged in are left alone; they stay gated by email verification.
func HandleDeactivateUsers(ctx context.Context, job Job) error {
	cutoff := time.Now().Add(-users.InactivityWindow)

	res := database.DB.WithContext(ctx).Model(&users.User{}).
		Where("is_active = ? AND last_login IS NOT NULL AND last_login < ?", true, cutoff).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[Jobs] deactivated %d inactive users", res.RowsAffected)
	}
	return nil
}
