package shared

// Entry is one guestbook submission as stored and as sent over the wire.
type Entry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"` // RFC 3339, UTC
}

// CreateEntryRequest is the POST /api/entries body. Both fields are optional
// on the wire; a missing message is rejected by the service.
type CreateEntryRequest struct {
	Name    *string `json:"name,omitempty"`
	Message *string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
