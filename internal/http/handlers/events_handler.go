package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nexgenbattles/tournament-api/internal/authz"
	"github.com/nexgenbattles/tournament-api/internal/domain"
	authmw "github.com/nexgenbattles/tournament-api/internal/http/middleware"
	"github.com/nexgenbattles/tournament-api/internal/http/response"
	"github.com/nexgenbattles/tournament-api/internal/service"
	"github.com/nexgenbattles/tournament-api/internal/utils"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

type EventsHandler struct {
	events service.EventService
	notify service.NotifyService
}

func NewEventsHandler(events service.EventService, notify service.NotifyService) *EventsHandler {
	return &EventsHandler{events: events, notify: notify}
}

// Routes mounts the events surface. requireUser is the session-resolver
// middleware; the open listing and single-event fetch stay public.
func (h *EventsHandler) Routes(requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listPublic)
	r.With(requireUser).Post("/", h.create)
	r.With(requireUser).Get("/my-events", h.listMine)
	r.With(requireUser).Post("/send-email", h.sendEmail)
	r.With(requireUser).Post("/send-email-batch", h.sendEmailBatch)
	r.Get("/{id}", h.getByID)
	r.With(requireUser).Put("/{id}", h.update)
	r.With(requireUser).Post("/{eventId}/participants", h.registerParticipant)
	r.With(requireUser).Get("/{eventId}/participants", h.listParticipants)
	return r
}

func (h *EventsHandler) create(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	var in domain.EventCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if missing := in.Validate(); len(missing) > 0 {
		response.BadRequest(w, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	ev, err := h.events.Create(r.Context(), p, &in)
	if err != nil {
		h.writeServiceError(w, r, err, "Error creating event")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Event created successfully",
		"event":   ev,
	})
}

func (h *EventsHandler) listPublic(w http.ResponseWriter, r *http.Request) {
	evs, err := h.events.ListPublic(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": evs})
}

func (h *EventsHandler) listMine(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	evs, err := h.events.ListFor(r.Context(), p)
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": evs})
}

func (h *EventsHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.NotFound(w, "Event not found")
		return
	}

	ev, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"event": ev})
}

func (h *EventsHandler) update(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.NotFound(w, "Event not found")
		return
	}

	var patch domain.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if patch.IsEmpty() {
		response.BadRequest(w, "nothing to update")
		return
	}

	ev, err := h.events.Update(r.Context(), p, id, patch)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Event updated successfully",
		"event":   ev,
	})
}

func (h *EventsHandler) registerParticipant(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	eventID, ok := parseID(chi.URLParam(r, "eventId"))
	if !ok {
		response.NotFound(w, "Event not found")
		return
	}

	var in domain.ParticipantCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if missing := in.Validate(); len(missing) > 0 {
		response.BadRequest(w, "missing required fields: "+strings.Join(missing, ", "))
		return
	}
	if !utils.IsValidEmail(in.Email) {
		response.BadRequest(w, "invalid email")
		return
	}

	part, err := h.events.RegisterParticipant(r.Context(), p, eventID, &in)
	if err != nil {
		h.writeServiceError(w, r, err, "Error creating participant")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Participant registered successfully",
		"participant": part,
	})
}

func (h *EventsHandler) listParticipants(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}
	if !authz.CanViewParticipants(p) {
		response.Forbidden(w, "forbidden")
		return
	}

	eventID, ok := parseID(chi.URLParam(r, "eventId"))
	if !ok {
		response.NotFound(w, "Event not found")
		return
	}

	parts, err := h.events.ListParticipants(r.Context(), eventID)
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching participants")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"participants": parts})
}

type sendEmailReq struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *EventsHandler) sendEmail(w http.ResponseWriter, r *http.Request) {
	var in sendEmailReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if in.To == "" || in.Subject == "" || in.Body == "" {
		response.BadRequest(w, "missing required fields: to, subject, body")
		return
	}

	if err := h.notify.Send(r.Context(), utils.NormalizeEmail(in.To), in.Subject, in.Body); err != nil {
		logger.ErrorContext(r.Context(), "Error sending email", "error", err)
		response.InternalError(w, "failed to send email: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Email sent successfully"})
}

type sendEmailBatchReq struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}

func (h *EventsHandler) sendEmailBatch(w http.ResponseWriter, r *http.Request) {
	var in sendEmailBatchReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if len(in.Recipients) == 0 || in.Subject == "" || in.Body == "" {
		response.BadRequest(w, "missing required fields: recipients, subject, body")
		return
	}

	// Partial failure is still a 200; the caller inspects both lists.
	result := h.notify.SendBatch(r.Context(), in.Recipients, in.Subject, in.Body)
	writeJSON(w, http.StatusOK, result)
}

func (h *EventsHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, "Event not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, "forbidden")
	default:
		logger.ErrorContext(r.Context(), logMsg, "error", err)
		response.InternalError(w, "internal server error")
	}
}
