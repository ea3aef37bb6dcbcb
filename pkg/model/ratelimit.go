package model

// Identifier kinds tracked by the creation quota.
const (
	IdentifierEmail = "email"
	IdentifierIP    = "ip"
)

// RateLimitCounter is one usage counter row. At most one row exists per
// (identifier, type, month, year); Count only grows within a period.
type RateLimitCounter struct {
	ID         string `json:"id,omitempty" bson:"_id,omitempty"`
	Identifier string `json:"identifier" bson:"identifier"`
	Type       string `json:"type" bson:"type"`
	Month      int    `json:"month" bson:"month"`
	Year       int    `json:"year" bson:"year"`
	Count      int    `json:"count" bson:"count"`
}
