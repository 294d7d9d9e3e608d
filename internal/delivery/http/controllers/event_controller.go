package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	Date            time.Time `json:"date"`
	MaxParticipants int       `json:"max_participants"`
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		errs = append(errs, "location is required")
	}
	if r.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if r.MaxParticipants < 1 {
		errs = append(errs, "max_participants must be positive")
	}
	return errs
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event details"
// @Success 201 {object} helpers.APIResponse "data is the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.Service.Create(r.Context(), req.Title, req.Location, req.Date, req.MaxParticipants)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetByID godoc
// @Summary Get an event by id
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// List godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListAvailable godoc
// @Summary List events with free spots
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/available [get]
func (c *EventController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListAvailable(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListByDate godoc
// @Summary List events on a given day
// @Tags events
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/date/{date} [get]
func (c *EventController) ListByDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.PathValue("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	events, err := c.Service.ListByDate(r.Context(), date)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Search godoc
// @Summary Search events by title and/or location
// @Tags events
// @Produce json
// @Param title query string false "Title substring"
// @Param location query string false "Location substring"
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/search [get]
func (c *EventController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := c.Service.Search(r.Context(), q.Get("title"), q.Get("location"))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateTitleRequest is the request body for PATCH /events/{id}/title.
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// Validate implements helpers.Validator.
func (r *UpdateTitleRequest) Validate() []string {
	if strings.TrimSpace(r.Title) == "" {
		return []string{"title is required"}
	}
	return nil
}

// UpdateTitle godoc
// @Summary Update an event's title
// @Tags events
// @Accept json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param body body controllers.UpdateTitleRequest true "New title"
// @Success 204 "updated"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/title [patch]
func (c *EventController) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateTitleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateTitle(r.Context(), id, req.Title); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateLocationRequest is the request body for PATCH /events/{id}/location.
type UpdateLocationRequest struct {
	Location string `json:"location"`
}

// Validate implements helpers.Validator.
func (r *UpdateLocationRequest) Validate() []string {
	if strings.TrimSpace(r.Location) == "" {
		return []string{"location is required"}
	}
	return nil
}

// UpdateLocation godoc
// @Summary Update an event's location
// @Tags events
// @Accept json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param body body controllers.UpdateLocationRequest true "New location"
// @Success 204 "updated"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/location [patch]
func (c *EventController) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateLocationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateLocation(r.Context(), id, req.Location); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDateRequest is the request body for PATCH /events/{id}/date.
type UpdateDateRequest struct {
	Date time.Time `json:"date"`
}

// Validate implements helpers.Validator.
func (r *UpdateDateRequest) Validate() []string {
	if r.Date.IsZero() {
		return []string{"date is required"}
	}
	return nil
}

// UpdateDate godoc
// @Summary Update an event's date
// @Tags events
// @Accept json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param body body controllers.UpdateDateRequest true "New date"
// @Success 204 "updated"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/date [patch]
func (c *EventController) UpdateDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateDateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateDate(r.Context(), id, req.Date); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateParticipantsRequest is the request body for PATCH /events/{id}/participants.
type UpdateParticipantsRequest struct {
	MaxParticipants int `json:"max_participants"`
}

// Validate implements helpers.Validator.
func (r *UpdateParticipantsRequest) Validate() []string {
	if r.MaxParticipants < 1 {
		return []string{"max_participants must be positive"}
	}
	return nil
}

// UpdateParticipants godoc
// @Summary Update an event's maximum capacity
// @Description The new maximum must not be below the current registered count.
// @Tags events
// @Accept json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param body body controllers.UpdateParticipantsRequest true "New maximum"
// @Success 204 "updated"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/participants [patch]
func (c *EventController) UpdateParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateParticipantsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateMaxParticipants(r.Context(), id, req.MaxParticipants); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete an event
// @Description Fails with 409 while the event still has registrations.
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 204 "deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (live registrations)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
