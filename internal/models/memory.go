package models

// Memory is the core domain entity stored in SQLite: a user-authored record
// of an experience anchored to a map coordinate.
type Memory struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // ISO calendar date, YYYY-MM-DD
	Mood        Mood    `json:"mood"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	CreatedAt   int64   `json:"createdAt"` // unix ms, set once at creation
}
