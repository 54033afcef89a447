package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eventdash/eventdash-go/internal/api"
	"github.com/eventdash/eventdash-go/internal/model"
	"github.com/eventdash/eventdash-go/internal/service"
	"github.com/eventdash/eventdash-go/internal/session"
)

// EventHandler handles the event list and its create, edit and delete
// dialogs.
type EventHandler struct {
	service *service.EventService
	store   *session.CookieStore
	views   *Renderer
	now     func() time.Time
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService, store *session.CookieStore, views *Renderer) *EventHandler {
	return &EventHandler{service: svc, store: store, views: views, now: time.Now}
}

type eventModal struct {
	Editing bool
	ID      int64
	Page    int
	Form    service.EventForm
	Errors  map[string]string
}

type eventsView struct {
	List  service.EventList
	Modal *eventModal
}

type confirmView struct {
	ID   int64
	Page int
}

// HandleList handles GET /admin. Query parameters: page (1-based),
// modal=create to open an empty form, edit=<id> to open a filled one.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r.URL.Query().Get("page"))

	var modal *eventModal
	switch {
	case r.URL.Query().Get("modal") == "create":
		modal = &eventModal{Page: page, Form: service.EventForm{Date: model.NewDate(h.now()).String()}}
	case r.URL.Query().Get("edit") != "":
		id, err := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64)
		if err == nil && id > 0 {
			modal = &eventModal{Editing: true, ID: id, Page: page}
		}
	}

	list, err := h.service.List(r.Context(), page)
	if err != nil {
		if h.sessionRejected(w, r, err) {
			return
		}
		slog.Error("list events", "page", page, "error", err)
		h.views.render(w, r, http.StatusOK, "events.html", "Events", eventsView{List: list}, errorNotice("Unable to load events", api.Message(err)))
		return
	}

	var notice *session.Notice
	if modal != nil && modal.Editing {
		e, found := findEvent(list.Events, modal.ID)
		if found {
			modal.Form = service.FormFromEvent(e)
		} else {
			modal = nil
			notice = errorNotice("Event not found", "It may have been deleted or moved to another page.")
		}
	}

	h.views.render(w, r, http.StatusOK, "events.html", "Events", eventsView{List: list, Modal: modal}, notice)
}

// HandleCreate handles POST /admin/events.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form := eventFormFromRequest(r)
	page := pageParam(r.FormValue("page"))

	if _, err := h.service.Create(r.Context(), form); err != nil {
		h.formFailed(w, r, &eventModal{Page: page, Form: form}, err)
		return
	}

	session.SetFlash(w, session.Notice{Kind: session.KindSuccess, Title: "Event Created!", Text: "Your event has been added."})
	http.Redirect(w, r, listURL(page), http.StatusSeeOther)
}

// HandleUpdate handles POST /admin/events/{id}.
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(r)
	if !ok {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	form := eventFormFromRequest(r)
	page := pageParam(r.FormValue("page"))

	if _, err := h.service.Update(r.Context(), id, form); err != nil {
		h.formFailed(w, r, &eventModal{Editing: true, ID: id, Page: page, Form: form}, err)
		return
	}

	session.SetFlash(w, session.Notice{Kind: session.KindSuccess, Title: "Event Updated!", Text: "The event has been updated."})
	http.Redirect(w, r, listURL(page), http.StatusSeeOther)
}

// HandleConfirmDelete handles GET /admin/events/{id}/delete. It only
// renders the confirmation dialog; nothing is sent to the API.
func (h *EventHandler) HandleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(r)
	if !ok {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	page := pageParam(r.URL.Query().Get("page"))
	h.views.render(w, r, http.StatusOK, "confirm_delete.html", "Delete event", confirmView{ID: id, Page: page}, nil)
}

// HandleDelete handles POST /admin/events/{id}/delete. The event is only
// deleted when the dialog was answered with confirm=yes.
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(r)
	if !ok {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	page := pageParam(r.FormValue("page"))

	if r.FormValue("confirm") != "yes" {
		http.Redirect(w, r, listURL(page), http.StatusSeeOther)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if h.sessionRejected(w, r, err) {
			return
		}
		slog.Error("delete event", "id", id, "error", err)
		session.SetFlash(w, *errorNotice("Delete failed", api.Message(err)))
		http.Redirect(w, r, listURL(page), http.StatusSeeOther)
		return
	}

	session.SetFlash(w, session.Notice{Kind: session.KindSuccess, Title: "Deleted!", Text: "Your event has been deleted."})
	http.Redirect(w, r, listURL(page), http.StatusSeeOther)
}

// formFailed re-renders the list with the modal still open.
func (h *EventHandler) formFailed(w http.ResponseWriter, r *http.Request, modal *eventModal, err error) {
	status := http.StatusUnprocessableEntity
	var notice *session.Notice
	if fields, ok := fieldErrors(err); ok {
		modal.Errors = fields
	} else {
		if h.sessionRejected(w, r, err) {
			return
		}
		slog.Error("save event", "id", modal.ID, "error", err)
		status = statusFor(err)
		notice = errorNotice("Unable to save event", api.Message(err))
	}

	list, listErr := h.service.List(r.Context(), modal.Page)
	if listErr != nil {
		slog.Warn("list events behind form", "error", listErr)
	}
	h.views.render(w, r, status, "events.html", "Events", eventsView{List: list, Modal: modal}, notice)
}

// sessionRejected ends the session when the API refuses the token.
func (h *EventHandler) sessionRejected(w http.ResponseWriter, r *http.Request, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	h.store.Clear(w)
	session.SetFlash(w, session.Notice{Kind: session.KindWarning, Title: "Session expired please relogin"})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

func eventFormFromRequest(r *http.Request) service.EventForm {
	return service.EventForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
	}
}

func eventIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pageParam(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func listURL(page int) string {
	return "/admin?page=" + strconv.Itoa(page)
}

func findEvent(events []model.Event, id int64) (model.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return model.Event{}, false
}
