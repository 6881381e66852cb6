package self_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	selfService "github.com/m04kA/SMC-ReservationService/internal/usecase/self_service"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgNotFound           = "Reservation not found"
	msgWindowExpired      = "This reservation can no longer be changed online, please contact us directly"
	msgInvalidTransition  = "This reservation can no longer be changed"
	msgSlotNotAvailable   = "Sorry, this time slot is not available"
)

// Handler управление бронью по токену из письма
type Handler struct {
	useCase SelfServiceUseCase
	logger  Logger
}

func NewHandler(useCase SelfServiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/manage?token=...
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.useCase.Get(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.respondError(w, "GET /manage", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseView(view))
}

// HandleCancel POST /api/v1/manage/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /manage/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Cancel(r.Context(), req.Token)
	if err != nil {
		h.respondError(w, "POST /manage/cancel", err)
		return
	}

	h.logger.Info("POST /manage/cancel - Reservation code=%s cancelled, changed=%t", result.Code, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseCancel(result))
}

// HandleEdit PUT /api/v1/manage
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /manage - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.useCase.Edit(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.respondError(w, "PUT /manage", err)
		return
	}

	h.logger.Info("PUT /manage - Reservation code=%s updated", view.Code)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseView(view))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidationError(w, domain.ValidationMessages(err))

	case errors.Is(err, selfService.ErrNotFound):
		h.logger.Warn("%s - Reservation not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, selfService.ErrEditWindowExpired):
		handlers.RespondConflict(w, msgWindowExpired)

	case errors.Is(err, selfService.ErrInvalidTransition):
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, selfService.ErrSlotNotAvailable):
		handlers.RespondConflict(w, msgSlotNotAvailable)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
