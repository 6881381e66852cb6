package settings

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type Handler struct {
	settings *domain.BookingSettings
	tokens   FormTokenIssuer
	logger   Logger
}

func NewHandler(settings *domain.BookingSettings, tokens FormTokenIssuer, logger Logger) *Handler {
	return &Handler{
		settings: settings,
		tokens:   tokens,
		logger:   logger,
	}
}

// HandleSettings GET /api/v1/settings
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromDomainSettings(h.settings))
}

// HandleFormToken GET /api/v1/form-token
func (h *Handler) HandleFormToken(w http.ResponseWriter, r *http.Request) {
	issued, err := h.tokens.IssueFormToken()
	if err != nil {
		h.logger.Error("GET /form-token - Failed to issue form token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &FormTokenResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	})
}
