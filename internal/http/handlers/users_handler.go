package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nexgenbattles/tournament-api/internal/domain"
	authmw "github.com/nexgenbattles/tournament-api/internal/http/middleware"
	"github.com/nexgenbattles/tournament-api/internal/http/response"
	"github.com/nexgenbattles/tournament-api/internal/service"
	"github.com/nexgenbattles/tournament-api/internal/utils"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

type UsersHandler struct {
	users service.UserService
}

func NewUsersHandler(users service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) Routes(requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(requireUser).Get("/", h.me)
	r.With(requireUser).Post("/onboard", h.onboard)
	r.With(requireUser).Post("/subscribed", h.subscribe)
	r.With(requireUser).Put("/", h.update)
	r.Post("/contact", h.contact)
	return r
}

func (h *UsersHandler) me(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	u, err := h.users.Get(r.Context(), p.Email)
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching user details")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": u})
}

func (h *UsersHandler) onboard(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	var in domain.OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.PhoneNumber == "" {
		missing = append(missing, "phoneNumber")
	}
	if len(missing) > 0 {
		response.BadRequest(w, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	u, err := h.users.Onboard(r.Context(), p.Email, &in)
	if err != nil {
		h.writeServiceError(w, r, err, "Error onboarding user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User onboarded successfully",
		"user":    u,
	})
}

func (h *UsersHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	u, err := h.users.Subscribe(r.Context(), p.Email)
	if err != nil {
		h.writeServiceError(w, r, err, "Error subscribing user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User subscribed successfully",
		"user":    u,
	})
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request) {
	p, ok := authmw.PrincipalFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if patch.IsEmpty() {
		response.BadRequest(w, "nothing to update")
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), p.Email, patch)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    u,
	})
}

func (h *UsersHandler) contact(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactReq
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
	in.Email = utils.NormalizeEmail(in.Email)

	msg, err := h.users.SubmitContact(r.Context(), &in)
	if err != nil {
		h.writeServiceError(w, r, err, "Error storing contact message")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Message received",
		"contact": msg,
	})
}

func (h *UsersHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, "forbidden")
	default:
		logger.ErrorContext(r.Context(), logMsg, "error", err)
		response.InternalError(w, "internal server error")
	}
}
