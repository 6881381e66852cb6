package transition_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	transitionStatus "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_status"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidID          = "Invalid reservation ID"
	msgInvalidStatus      = "Status must be approved, declined or cancelled"
	msgInvalidAction      = "Action must be approve, decline, cancel or delete"
	msgEmptyIDs           = "At least one reservation ID is required"
	msgUnauthorized       = "Action token is missing, expired or already used"
	msgNotFound           = "Reservation not found"
	msgInvalidTransition  = "Status transition is not allowed"
)

type Handler struct {
	useCase TransitionStatusUseCase
	logger  Logger
}

func NewHandler(useCase TransitionStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/reservations/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("POST /admin/reservations/{id}/status - Invalid reservation ID: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req StatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionStatus.Request{
		ID:     id,
		Status: req.Status,
		Token:  handlers.ActionToken(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionStatus.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, transitionStatus.ErrUnauthorized):
			handlers.RespondForbidden(w, msgUnauthorized)
		case errors.Is(err, transitionStatus.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, transitionStatus.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)
		default:
			h.logger.Error("POST /admin/reservations/{id}/status - Failed to change status: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	admin, _ := middleware.GetAdmin(r.Context())
	h.logger.Info("POST /admin/reservations/{id}/status - id=%d, %s -> %s, changed=%t, admin=%s",
		id, result.PreviousStatus, result.Status, result.Changed, admin)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleBulk POST /api/v1/admin/reservations/bulk, bulk-токен в X-Action-Token
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reservations/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.IDs) == 0 {
		handlers.RespondBadRequest(w, msgEmptyIDs)
		return
	}

	result, err := h.useCase.ExecuteBulk(r.Context(), &transitionStatus.BulkRequest{
		IDs:    req.IDs,
		Action: req.Action,
		Token:  handlers.ActionToken(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionStatus.ErrInvalidAction):
			handlers.RespondBadRequest(w, msgInvalidAction)
		case errors.Is(err, transitionStatus.ErrUnauthorized):
			handlers.RespondForbidden(w, msgUnauthorized)
		default:
			h.logger.Error("POST /admin/reservations/bulk - Failed to apply %s: %v", req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	admin, _ := middleware.GetAdmin(r.Context())
	h.logger.Info("POST /admin/reservations/bulk - %s applied: succeeded=%d, failed=%d, admin=%s",
		req.Action, result.Succeeded, result.Failed, admin)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseBulkResponse(result))
}
