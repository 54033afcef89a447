package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/eventdash/eventdash-go/internal/model"
)

// ListEvents fetches one offset/limit window of events.
func (c *Client) ListEvents(ctx context.Context, offset, limit int) (model.EventPage, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var page model.EventPage
	if err := c.do(ctx, http.MethodGet, "/api/events?"+q.Encode(), nil, &page); err != nil {
		return model.EventPage{}, err
	}
	if page.Events == nil {
		page.Events = []model.Event{}
	}
	return page, nil
}

// CreateEvent creates an event; the API assigns its id.
func (c *Client) CreateEvent(ctx context.Context, req model.EventRequest) (model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", req, &e); err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// UpdateEvent replaces the fields of event id.
func (c *Client) UpdateEvent(ctx context.Context, id int64, req model.EventRequest) (model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodPut, eventPath(id), req, &e); err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// DeleteEvent removes event id.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, eventPath(id), nil, nil)
}

func eventPath(id int64) string {
	return fmt.Sprintf("/api/events/%d", id)
}
