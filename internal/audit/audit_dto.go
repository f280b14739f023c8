package audit

// RecordRequest is accepted from internal callers (services, consumers),
// not from HTTP. The HTTP surface is read-only.
type RecordRequest struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Message    string
	Meta       map[string]any
}

type EntryResponse struct {
	ID         string  `json:"id"`
	CompanyID  string  `json:"company_id"`
	ActorID    *string `json:"actor_id,omitempty"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   *string `json:"entity_id,omitempty"`
	Message    string  `json:"message"`
	Meta       *string `json:"meta,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}

type ListFilterRequest struct {
	Action     string `form:"action"`
	EntityType string `form:"entity_type"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}
