package services

import "github.com/mroshb/shooty_game/internal/models"

// Actor is the authenticated caller of an operation. A nil *Actor is an anonymous caller.
type Actor struct {
	UserID uint
	Role   models.Role
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

// CanAccessUser reports whether the actor may act on behalf of userID.
func (a *Actor) CanAccessUser(userID uint) bool {
	if a == nil {
		return false
	}
	return a.IsAdmin() || a.UserID == userID
}
