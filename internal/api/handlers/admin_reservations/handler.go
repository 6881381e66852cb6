package admin_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidID          = "Invalid reservation ID"
	msgInvalidParams      = "Invalid query parameters"
	msgNotFound           = "Reservation not found"
	msgUnauthorized       = "Action token is missing, expired or already used"
	msgInvalidTransition  = "Status transition is not allowed"
)

// Handler просмотр и редактирование броней в админке
type Handler struct {
	service  ReservationService
	location *time.Location
	logger   Logger
}

func NewHandler(service ReservationService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// HandleList GET /api/v1/admin/reservations
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r.URL.Query(), h.location)
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /admin/reservations", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStats GET /api/v1/admin/reservations/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/reservations/stats", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGetByCode GET /api/v1/admin/reservations/code/{code}
func (h *Handler) HandleGetByCode(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		h.respondError(w, "GET /admin/reservations/code/{code}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/admin/reservations/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r, "GET /admin/reservations/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admin/reservations/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/admin/reservations/{id}, токен edit в X-Action-Token
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r, "PUT /admin/reservations/{id}")
	if !ok {
		return
	}

	var req models.UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req, handlers.ActionToken(r))
	if err != nil {
		h.respondError(w, "PUT /admin/reservations/{id}", err)
		return
	}

	admin, _ := middleware.GetAdmin(r.Context())
	h.logger.Info("PUT /admin/reservations/{id} - Reservation updated: id=%d, admin=%s", id, admin)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/reservations/{id}, токен delete в X-Action-Token
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r, "DELETE /admin/reservations/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, handlers.ActionToken(r)); err != nil {
		h.respondError(w, "DELETE /admin/reservations/{id}", err)
		return
	}

	admin, _ := middleware.GetAdmin(r.Context())
	h.logger.Info("DELETE /admin/reservations/{id} - Reservation deleted: id=%d, admin=%s", id, admin)
	handlers.RespondNoContent(w)
}

func (h *Handler) reservationID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s - Invalid reservation ID: %q", route, mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		handlers.RespondValidationError(w, domain.ValidationMessages(err))

	case errors.Is(err, reservations.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidParams)

	case errors.Is(err, reservations.ErrUnauthorized):
		h.logger.Warn("%s - Invalid action token", route)
		handlers.RespondForbidden(w, msgUnauthorized)

	case errors.Is(err, reservations.ErrReservationNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, reservations.ErrInvalidTransition):
		handlers.RespondConflict(w, msgInvalidTransition)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
