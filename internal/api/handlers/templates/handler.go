package templates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	templatesService "github.com/m04kA/SMC-ReservationService/internal/service/templates"
	"github.com/m04kA/SMC-ReservationService/internal/service/templates/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgTemplateNotFound   = "Template not found"
	msgTemplateExists     = "A template with this name already exists"
)

// Handler CRUD шаблонов писем
type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/templates
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/templates", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/admin/templates/{name}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.respondError(w, "GET /admin/templates/{name}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/admin/templates
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.TemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/templates", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/admin/templates/{name}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.TemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/templates/{name} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), mux.Vars(r)["name"], &req)
	if err != nil {
		h.respondError(w, "PUT /admin/templates/{name}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/templates/{name}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["name"]); err != nil {
		h.respondError(w, "DELETE /admin/templates/{name}", err)
		return
	}
	handlers.RespondNoContent(w)
}

// HandleRestore POST /api/v1/admin/templates/restore
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RestoreDefaults(r.Context())
	if err != nil {
		h.respondError(w, "POST /admin/templates/restore", err)
		return
	}
	h.logger.Info("POST /admin/templates/restore - Restored %d templates", len(result.Inserted))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStats GET /api/v1/admin/templates/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/templates/stats", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		handlers.RespondValidationError(w, domain.ValidationMessages(err))
	case errors.Is(err, templatesService.ErrTemplateNotFound):
		handlers.RespondNotFound(w, msgTemplateNotFound)
	case errors.Is(err, templatesService.ErrTemplateExists):
		handlers.RespondConflict(w, msgTemplateExists)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
