package audit

import "time"

// SearchAudit is one recorded search request.
type SearchAudit struct {
	ID          int64      `json:"id" db:"id"`
	RequestID   string     `json:"request_id" db:"request_id"`
	Path        string     `json:"path" db:"path"` // basic, live, index
	Subject     string     `json:"subject" db:"subject"`
	Realm       string     `json:"realm" db:"realm"`
	Roles       []string   `json:"roles" db:"roles"`
	Location    string     `json:"location" db:"location"`
	PickupDate  *time.Time `json:"pickup_date,omitempty" db:"pickup_date"`
	DropOffDate *time.Time `json:"drop_off_date,omitempty" db:"drop_off_date"`
	Success     bool       `json:"success" db:"success"`
	Code        string     `json:"code" db:"code"`
	Total       int64      `json:"total" db:"total"`
	DurationMs  int64      `json:"duration_ms" db:"duration_ms"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// ListFilters narrows audit listings.
type ListFilters struct {
	Subject string
	Path    string
	Limit   int
}
