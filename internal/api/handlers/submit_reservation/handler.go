package submit_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	submitReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_reservation"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidFormToken   = "Security check failed, please reload the page"
	msgSlotNotAvailable   = "Sorry, this time slot is no longer available"
	msgPersistenceFailure = "We could not save your reservation, please try again"
)

type Handler struct {
	useCase    SubmitReservationUseCase
	formTokens FormTokenVerifier
	logger     Logger
}

func NewHandler(useCase SubmitReservationUseCase, formTokens FormTokenVerifier, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		formTokens: formTokens,
		logger:     logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token := strings.TrimSpace(r.Header.Get("X-CSRF-Token"))
	if token == "" {
		token = strings.TrimSpace(req.Nonce)
	}
	if err := h.formTokens.VerifyFormToken(token); err != nil {
		h.logger.Warn("POST /reservations - Invalid form token: %v", err)
		handlers.RespondForbidden(w, msgInvalidFormToken)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondValidationError(w, domain.ValidationMessages(err))

		case errors.Is(err, submitReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, submitReservation.ErrPersistence):
			h.logger.Error("POST /reservations - Failed to save reservation: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPersistenceFailure)

		default:
			h.logger.Error("POST /reservations - Failed to submit reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation submitted: id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
