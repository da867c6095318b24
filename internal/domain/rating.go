package domain

import "time"

// Rating represents a single user's rating for a store. CreatedAt is
// refreshed when the user re-rates.
type Rating struct {
	ID        string
	UserID    string
	StoreID   string
	Value     int
	CreatedAt time.Time
}

// Rater is one entry on the owner dashboard: who rated the store and what
// they gave it.
type Rater struct {
	Name   string
	Email  string
	Rating int
}

// OwnerDashboard aggregates everything a store owner sees about their store.
type OwnerDashboard struct {
	StoreName     string
	AverageRating float64
	Raters        []Rater
}
