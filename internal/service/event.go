package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventdash/eventdash-go/internal/model"
)

var ErrInvalidEventID = errors.New("invalid event id")

// EventAPI is the remote side of event management.
type EventAPI interface {
	ListEvents(ctx context.Context, offset, limit int) (model.EventPage, error)
	CreateEvent(ctx context.Context, req model.EventRequest) (model.Event, error)
	UpdateEvent(ctx context.Context, id int64, req model.EventRequest) (model.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// EventForm holds the raw values of the event modal.
type EventForm struct {
	Name        string
	Description string
	Date        string
}

// FormFromEvent pre-fills the modal for editing e.
func FormFromEvent(e model.Event) EventForm {
	return EventForm{Name: e.Name, Description: e.Description, Date: e.Date.String()}
}

// Validate checks the form and converts it into an API request.
func (f EventForm) Validate() (model.EventRequest, error) {
	var v validator
	v.required("name", f.Name, "Event name is required")
	v.required("description", f.Description, "Event description is required")

	var date model.Date
	if v.required("date", f.Date, "Event date is required") {
		d, err := model.ParseDate(strings.TrimSpace(f.Date))
		if err != nil {
			v.fail("date", "Event date must be a valid date")
		}
		date = d
	}

	if err := v.err(); err != nil {
		return model.EventRequest{}, err
	}
	return model.EventRequest{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Date:        date,
	}, nil
}

// EventList is one rendered page of events.
type EventList struct {
	Events []model.Event
	Window Window
}

// EventService handles event listing and mutations.
type EventService struct {
	api   EventAPI
	limit int
}

// NewEventService creates a new EventService showing limit events per page.
func NewEventService(api EventAPI, limit int) *EventService {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return &EventService{api: api, limit: limit}
}

// List fetches page n (1-based). The API already windows the result, so
// its events are returned as they are.
func (s *EventService) List(ctx context.Context, n int) (EventList, error) {
	w := WindowForPage(n, s.limit)

	page, err := s.api.ListEvents(ctx, w.Offset, w.Limit)
	if err != nil {
		return EventList{Window: w}, fmt.Errorf("list events: %w", err)
	}
	w.TotalRows = page.TotalRows

	return EventList{Events: page.Events, Window: w}, nil
}

// Create validates form and creates the event.
func (s *EventService) Create(ctx context.Context, form EventForm) (model.Event, error) {
	req, err := form.Validate()
	if err != nil {
		return model.Event{}, err
	}

	e, err := s.api.CreateEvent(ctx, req)
	if err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

// Update validates form and replaces event id.
func (s *EventService) Update(ctx context.Context, id int64, form EventForm) (model.Event, error) {
	if id <= 0 {
		return model.Event{}, ErrInvalidEventID
	}
	req, err := form.Validate()
	if err != nil {
		return model.Event{}, err
	}

	e, err := s.api.UpdateEvent(ctx, id, req)
	if err != nil {
		return model.Event{}, fmt.Errorf("update event %d: %w", id, err)
	}
	return e, nil
}

// Delete removes event id.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidEventID
	}
	if err := s.api.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}
