package audit

import "time"

// Entry is one activity log record. Target fields and Details are optional;
// rows are append-only and never mutated after insert.
type Entry struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"user_id"`
	ActorName  string    `json:"user_name,omitempty"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type,omitempty"`
	TargetID   string    `json:"target_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
