package users

import "time"

// Token purposes. One table backs both flows; a token is single-use and
// only honored by the endpoint matching its type.
const (
	TokenTypeVerifyEmail   = "verify_email"
	TokenTypePasswordReset = "password_reset"
)

// VerificationToken is a one-shot credential mailed to the user. Rows
// are deleted on use; password-reset tokens additionally expire.
type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
