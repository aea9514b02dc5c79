package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"volunteer-backend/internal/service"
)

const missingRegistrationFields = "Shift ID and User ID are required"

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles the service layer the API is served from.
type Services struct {
	Organizations service.OrganizationService
	Shifts        service.ShiftService
	Users         service.UserService
	Registrations service.RegistrationService
	Notifications service.NotificationService
	Achievements  service.AchievementService
}

// Handler serves the directory and registration routes.
type Handler struct {
	svc      Services
	db       Pinger
	validate *validator.Validate
}

func NewHandler(svc Services, db Pinger) *Handler {
	return &Handler{svc: svc, db: db, validate: validator.New()}
}

type registerRequest struct {
	ShiftID int32 `json:"shiftId" validate:"required"`
	UserID  int32 `json:"userId" validate:"required"`
}

// parseID reads an optional numeric query parameter. ok is false when the
// parameter is present but not a number; a 400 has then been written.
func parseID(w http.ResponseWriter, r *http.Request, name string) (id int32, present, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid id")
		return 0, true, false
	}
	return int32(v), true, true
}

// Organizations lists every organization, or returns one organization with
// its reviews and shifts when ?id= is given.
func (h *Handler) Organizations(w http.ResponseWriter, r *http.Request) {
	id, byID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if byID {
		org, err := h.svc.Organizations.GetOrganization(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, org)
		return
	}

	orgs, err := h.svc.Organizations.ListOrganizations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, orgs)
}

// Shifts lists every shift, or one shift when ?id= is given.
func (h *Handler) Shifts(w http.ResponseWriter, r *http.Request) {
	id, byID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if byID {
		shift, err := h.svc.Shifts.GetShift(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, shift)
		return
	}

	shifts, err := h.svc.Shifts.ListShifts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, shifts)
}

func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	id, present, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if !present {
		writeError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}
	user, err := h.svc.Users.GetUserProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, missingRegistrationFields)
		return
	}

	reg, err := h.svc.Registrations.RegisterForShift(r.Context(), req.ShiftID, req.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reg)
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	userID, present, ok := parseID(w, r, "userId")
	if !ok {
		return
	}
	if !present {
		writeError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}
	notes, err := h.svc.Notifications.GetNotifications(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, notes)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid id")
		return
	}
	userID, present, ok := parseID(w, r, "userId")
	if !ok {
		return
	}
	if !present {
		writeError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}
	if err := h.svc.Notifications.MarkAsRead(r.Context(), userID, int32(id)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID, present, ok := parseID(w, r, "userId")
	if !ok {
		return
	}
	if !present {
		writeError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}
	progress, err := h.svc.Achievements.ListProgress(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
