package user

import "time"

// Principal is the identity resolved from a verified access token.
type Principal struct {
	UserID string
	Name   string
	Email  string
}

type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// DisplayName falls back to the email when the provider supplied no name.
func (p Principal) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}
