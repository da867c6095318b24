package domain

import "time"

// User represents an account row. PasswordHash never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
}

// UserDirectoryEntry is a user enriched with ownership data for the admin
// directory listing.
type UserDirectoryEntry struct {
	ID          string
	Name        string
	Email       string
	Address     string
	Role        Role
	StoreName   *string
	StoreRating float64
}
