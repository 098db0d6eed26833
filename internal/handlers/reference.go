package handlers

import (
	"net/http"

	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ReferenceHandler serves the cached reference tables and workflow
// transitions.
type ReferenceHandler struct {
	priorities    *services.ReferenceService[models.Priority]
	severities    *services.ReferenceService[models.Severity]
	regions       *services.ReferenceService[models.Region]
	documentTypes *services.ReferenceService[models.DocumentType]
	categories    *services.ReferenceService[models.WorkOrderCategory]
	classes       *services.ReferenceService[models.WorkOrderClass]
	transitions   *services.TransitionService
	logger        *zap.Logger
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(
	priorities *services.ReferenceService[models.Priority],
	severities *services.ReferenceService[models.Severity],
	regions *services.ReferenceService[models.Region],
	documentTypes *services.ReferenceService[models.DocumentType],
	categories *services.ReferenceService[models.WorkOrderCategory],
	classes *services.ReferenceService[models.WorkOrderClass],
	transitions *services.TransitionService,
	logger *zap.Logger,
) *ReferenceHandler {
	return &ReferenceHandler{
		priorities:    priorities,
		severities:    severities,
		regions:       regions,
		documentTypes: documentTypes,
		categories:    categories,
		classes:       classes,
		transitions:   transitions,
		logger:        logger,
	}
}

// list adapts one reference table to the shared handler shape. Pass
// active=true to filter to active entries.
func list[T any](h *ReferenceHandler, svc *services.ReferenceService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []T
			err   error
		)
		if r.URL.Query().Get("active") == "true" {
			items, err = svc.GetActive(r.Context())
		} else {
			items, err = svc.GetAll(r.Context())
		}
		if err != nil {
			sendError(w, h.logger, err)
			return
		}
		sendJSON(w, http.StatusOK, items)
	}
}

// HandlePriorities handles GET /api/reference/priorities
// @Summary     List work order priorities
// @Tags        reference
// @Produce     application/json
// @Param       active query bool false "Only active entries"
// @Success     200 {array} models.Priority
// @Router      /api/reference/priorities [get]
func (h *ReferenceHandler) HandlePriorities(w http.ResponseWriter, r *http.Request) {
	list(h, h.priorities)(w, r)
}

// HandleSeverities handles GET /api/reference/severities
// @Summary     List work order severities
// @Tags        reference
// @Produce     application/json
// @Param       active query bool false "Only active entries"
// @Success     200 {array} models.Severity
// @Router      /api/reference/severities [get]
func (h *ReferenceHandler) HandleSeverities(w http.ResponseWriter, r *http.Request) {
	list(h, h.severities)(w, r)
}

// HandleRegions handles GET /api/reference/regions
// @Summary     List regions
// @Tags        reference
// @Produce     application/json
// @Param       active query bool false "Only active entries"
// @Success     200 {array} models.Region
// @Router      /api/reference/regions [get]
func (h *ReferenceHandler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	list(h, h.regions)(w, r)
}

// HandleDocumentTypes handles GET /api/reference/document-types
// @Summary     List document types
// @Tags        reference
// @Produce     application/json
// @Param       active query bool false "Only active entries"
// @Success     200 {array} models.DocumentType
// @Router      /api/reference/document-types [get]
func (h *ReferenceHandler) HandleDocumentTypes(w http.ResponseWriter, r *http.Request) {
	list(h, h.documentTypes)(w, r)
}

// HandleCategories handles GET /api/reference/categories
// @Summary     List work order categories
// @Tags        reference
// @Produce     application/json
// @Param       active query bool false "Only active entries"
// @Success     200 {array} models.WorkOrderCategory
// @Router      /api/reference/categories [get]
func (h *ReferenceHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	list(h, h.categories)(w, r)
}

// HandleClasses handles GET /api/reference/classes
// @Summary     List work order classes
// @Tags        reference
// @Produce     application/json
// @Param       active query bool false "Only active entries"
// @Success     200 {array} models.WorkOrderClass
// @Router      /api/reference/classes [get]
func (h *ReferenceHandler) HandleClasses(w http.ResponseWriter, r *http.Request) {
	list(h, h.classes)(w, r)
}

// HandleTransitions handles GET /api/reference/transitions
// @Summary     List workflow transitions
// @Description Serves the cached transition list. Optional filters narrow by
//              workflow object type or by from/to status id.
// @Tags        reference
// @Produce     application/json
// @Param       object_type query string false "Workflow object type"
// @Param       from        query int    false "From status id"
// @Param       to          query int    false "To status id"
// @Success     200 {array} models.WorkflowTransition
// @Router      /api/reference/transitions [get]
func (h *ReferenceHandler) HandleTransitions(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.WorkflowTransition
		err   error
	)
	switch {
	case r.URL.Query().Get("object_type") != "":
		items, err = h.transitions.GetByObjectType(r.Context(), r.URL.Query().Get("object_type"))
	case intQuery(r, "from", 0) > 0:
		items, err = h.transitions.GetFromStatus(r.Context(), intQuery(r, "from", 0))
	case intQuery(r, "to", 0) > 0:
		items, err = h.transitions.GetToStatus(r.Context(), intQuery(r, "to", 0))
	default:
		items, err = h.transitions.GetAll(r.Context())
	}
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, items)
}

// HandleLookup handles GET /api/reference/{table}/{id}
// @Summary     Look up one reference entry by id
// @Tags        reference
// @Produce     application/json
// @Param       table path string true "Table: priorities, severities, regions, document-types, categories, classes"
// @Param       id    path int    true "Entry ID"
// @Success     200 {object} interface{}
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/reference/{table}/{id} [get]
func (h *ReferenceHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, ok := pathInt(vars, "id")
	if !ok {
		sendValidationError(w, "id must be a positive integer")
		return
	}

	var (
		item any
		err  error
	)
	switch vars["table"] {
	case "priorities":
		item, err = nilToAny(h.priorities.GetByID(r.Context(), id))
	case "severities":
		item, err = nilToAny(h.severities.GetByID(r.Context(), id))
	case "regions":
		item, err = nilToAny(h.regions.GetByID(r.Context(), id))
	case "document-types":
		item, err = nilToAny(h.documentTypes.GetByID(r.Context(), id))
	case "categories":
		item, err = nilToAny(h.categories.GetByID(r.Context(), id))
	case "classes":
		item, err = nilToAny(h.classes.GetByID(r.Context(), id))
	default:
		sendValidationError(w, "unknown reference table")
		return
	}
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	if item == nil {
		sendJSON(w, http.StatusNotFound, models.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "no matching entry",
		})
		return
	}
	sendJSON(w, http.StatusOK, item)
}

// HandleRefresh handles POST /api/reference/refresh
// @Summary     Refresh all reference caches
// @Description Kicks off background reloads for every table; returns immediately.
// @Tags        reference
// @Produce     application/json
// @Success     202 {object} map[string]string
// @Router      /api/reference/refresh [post]
func (h *ReferenceHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.priorities.RefreshInBackground()
	h.severities.RefreshInBackground()
	h.regions.RefreshInBackground()
	h.documentTypes.RefreshInBackground()
	h.categories.RefreshInBackground()
	h.classes.RefreshInBackground()
	sendJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

// nilToAny flattens a typed nil pointer into an untyped nil so the caller
// can test it with a plain comparison.
func nilToAny[T any](v *T, err error) (any, error) {
	if v == nil {
		return nil, err
	}
	return v, err
}
