package domain

import "time"

// Store is a rateable storefront. OwnerID is nil until an administrator
// assigns an owner.
type Store struct {
	ID        string
	Name      string
	Email     string
	Address   string
	OwnerID   *string
	CreatedAt time.Time
}

// StoreForUser is a store as seen by a logged-in rater: the running average
// plus that user's own rating, if any.
type StoreForUser struct {
	ID            string
	Name          string
	Address       string
	AverageRating float64
	UserRating    *int
}

// StoreDirectoryEntry is a store enriched with owner data for the admin
// directory listing.
type StoreDirectoryEntry struct {
	ID            string
	Name          string
	Email         string
	Address       string
	OwnerID       *string
	OwnerName     *string
	AverageRating float64
}
