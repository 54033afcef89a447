package service

import (
	"context"

	"github.com/eventdash/eventdash-go/internal/model"
)

type fakeEventAPI struct {
	page    model.EventPage
	err     error
	calls   []string
	offsets []int
	created []model.EventRequest
	updated map[int64]model.EventRequest
	deleted []int64
}

func (f *fakeEventAPI) ListEvents(_ context.Context, offset, limit int) (model.EventPage, error) {
	f.calls = append(f.calls, "list")
	f.offsets = append(f.offsets, offset)
	return f.page, f.err
}

func (f *fakeEventAPI) CreateEvent(_ context.Context, req model.EventRequest) (model.Event, error) {
	f.calls = append(f.calls, "create")
	if f.err != nil {
		return model.Event{}, f.err
	}
	f.created = append(f.created, req)
	return model.Event{ID: int64(len(f.created)), Name: req.Name, Description: req.Description, Date: req.Date}, nil
}

func (f *fakeEventAPI) UpdateEvent(_ context.Context, id int64, req model.EventRequest) (model.Event, error) {
	f.calls = append(f.calls, "update")
	if f.err != nil {
		return model.Event{}, f.err
	}
	if f.updated == nil {
		f.updated = make(map[int64]model.EventRequest)
	}
	f.updated[id] = req
	return model.Event{ID: id, Name: req.Name, Description: req.Description, Date: req.Date}, nil
}

func (f *fakeEventAPI) DeleteEvent(_ context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAuthAPI struct {
	token    string
	err      error
	logins   int
	register []model.RegisterRequest
}

func (f *fakeAuthAPI) Login(_ context.Context, _ model.LoginRequest) (string, error) {
	f.logins++
	return f.token, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, req model.RegisterRequest) error {
	if f.err != nil {
		return f.err
	}
	f.register = append(f.register, req)
	return nil
}
