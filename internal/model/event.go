package model

// Event is a dashboard event as returned by the remote API.
type Event struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
}

// EventRequest is the body of a create or update call.
type EventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
}

// EventPage is one offset/limit window of events.
type EventPage struct {
	Events    []Event `json:"events"`
	TotalRows int     `json:"totalRows"`
}
