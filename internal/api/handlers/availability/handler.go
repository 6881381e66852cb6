package availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

const msgInvalidParameters = "Both date (YYYY-MM-DD) and party_size are required"

type Handler struct {
	useCase  CheckAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability?date=2025-10-20&party_size=4
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := ToUseCaseRequest(query.Get("date"), query.Get("party_size"), h.location)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParameters)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidParameters):
			handlers.RespondBadRequest(w, msgInvalidParameters)
		default:
			h.logger.Error("GET /availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
