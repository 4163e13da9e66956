package users

import "time"

const (
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// InactivityWindow is how long an account may go without logging in
// before the cleanup job deactivates it.
const InactivityWindow = 30 * 24 * time.Hour

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `json:"name"`
	Lastname     string  `json:"lastname"`
	Phone        string  `json:"phone"`
	City         string  `json:"city"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"auth_provider"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	IsVerified   bool    `json:"is_verified"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`

	// LastLogin feeds the inactivity cleanup job; nil means the account
	// never signed in.
	LastLogin *time.Time `json:"last_login"`

	// Roles are a flat set (group membership), not a hierarchy.
	Roles []Role `gorm:"many2many:user_roles" json:"roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_roles_name" json:"name"`
}

func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (u User) IsModerator() bool {
	return u.HasRole(RoleModerator)
}

func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
