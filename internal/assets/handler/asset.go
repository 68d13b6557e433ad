package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"smartoffice/internal/assets/service"
	apperrors "smartoffice/pkg/errors"
	httputil "smartoffice/pkg/http"
	"smartoffice/pkg/logger"
	"smartoffice/pkg/middleware"
	"smartoffice/pkg/model"
)

type AssetHandler struct {
	service service.AssetService
	log     *logger.Logger
}

func NewAssetHandler(service service.AssetService, log *logger.Logger) *AssetHandler {
	return &AssetHandler{
		service: service,
		log:     log,
	}
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := h.principal(w, r, "Create")
	if !ok {
		return
	}

	var req model.AssetCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Create")
		return
	}

	asset := req.ToAsset()
	if err := h.service.Create(r.Context(), asset, principal); err != nil {
		h.writeError(w, err, "Create")
		return
	}

	if err := httputil.WriteCreated(w, asset); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *AssetHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	asset, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err, "GetByID")
		return
	}

	if err := httputil.WriteSuccess(w, asset); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AssetHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err, "GetAll")
		return
	}

	filter, err := httputil.ExtractAssetFilter(r)
	if err != nil {
		h.writeError(w, err, "GetAll")
		return
	}

	assets, totalCount, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, err, "GetAll")
		return
	}

	if err := httputil.WritePaginated(w, assets, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *AssetHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.writeError(w, err, "Stats")
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Stats", "operation", "WriteSuccess", "error", err)
	}
}

// Update runs the booking protocol: flipping isAvailable books or releases
// the asset, anything else is a plain edit.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := h.principal(w, r, "Update")
	if !ok {
		return
	}

	var updates model.AssetUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Update")
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates, principal); err != nil {
		h.writeError(w, err, "Update")
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := h.principal(w, r, "Delete")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id"), principal); err != nil {
		h.writeError(w, err, "Delete")
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AssetHandler) principal(w http.ResponseWriter, r *http.Request, handler string) (model.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || principal.SubjectID == "" {
		h.writeError(w, apperrors.Unauthorized("Authentication required"), handler)
		return model.Principal{}, false
	}
	return principal, true
}

func (h *AssetHandler) writeError(w http.ResponseWriter, err error, handler string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AssetHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/assets", h.GetAll)
	router.GET("/api/v1/assets/stats", h.Stats)
	router.GET("/api/v1/assets/id/:id", h.GetByID)
	router.POST("/api/v1/assets", h.Create)
	router.PUT("/api/v1/assets/id/:id", h.Update)
	router.DELETE("/api/v1/assets/id/:id", h.Delete)
}
