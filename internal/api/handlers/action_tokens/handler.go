package action_tokens

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidID          = "Invalid reservation ID"
	msgInvalidAction      = "Unknown action"
)

// Handler выдача токенов действий администратору
type Handler struct {
	issuer TokenIssuer
	logger Logger
}

func NewHandler(issuer TokenIssuer, logger Logger) *Handler {
	return &Handler{
		issuer: issuer,
		logger: logger,
	}
}

// HandleIssue POST /api/v1/admin/reservations/{id}/action-tokens
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	action, ok := h.decodeAction(w, r, "POST /admin/reservations/{id}/action-tokens")
	if !ok {
		return
	}

	issued, err := h.issuer.IssueAction(action, id)
	if err != nil {
		h.respondError(w, "POST /admin/reservations/{id}/action-tokens", err)
		return
	}

	h.logger.Info("POST /admin/reservations/{id}/action-tokens - Issued %s token for reservation id=%d", action, id)
	handlers.RespondJSON(w, http.StatusCreated, &TokenResponse{
		Action:        string(action),
		ReservationID: id,
		Token:         issued.Token,
		ExpiresAt:     issued.ExpiresAt,
	})
}

// HandleIssueBulk POST /api/v1/admin/action-tokens/bulk
func (h *Handler) HandleIssueBulk(w http.ResponseWriter, r *http.Request) {
	action, ok := h.decodeAction(w, r, "POST /admin/action-tokens/bulk")
	if !ok {
		return
	}

	issued, err := h.issuer.IssueBulk(action)
	if err != nil {
		h.respondError(w, "POST /admin/action-tokens/bulk", err)
		return
	}

	h.logger.Info("POST /admin/action-tokens/bulk - Issued bulk %s token", action)
	handlers.RespondJSON(w, http.StatusCreated, &TokenResponse{
		Action:    string(action),
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	})
}

func (h *Handler) decodeAction(w http.ResponseWriter, r *http.Request, route string) (domain.AdminAction, bool) {
	var req IssueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return "", false
	}
	return domain.AdminAction(strings.ToLower(strings.TrimSpace(req.Action))), true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, actiontokens.ErrInvalidAction) {
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}
	h.logger.Error("%s - Failed to issue token: %v", route, err)
	handlers.RespondInternalError(w)
}
