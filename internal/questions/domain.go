package questions

import "time"

// Question is a posted question. Answers, votes and tags are out of scope
// here; this module exists as the protected surface the permission gates
// guard.
type Question struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
