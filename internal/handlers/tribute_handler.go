package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"tribute-api/internal/config"
	"tribute-api/internal/models"
	"tribute-api/internal/repositories"
	"tribute-api/internal/services"
	"tribute-api/pkg/lambda"
)

// TributeHandler serves the tribute create, list, update and delete functions
type TributeHandler struct {
	config   *config.Config
	sessions services.SessionOpener
	logger   *logrus.Logger
}

// NewTributeHandler creates a new tribute handler
func NewTributeHandler(cfg *config.Config, sessions services.SessionOpener, logger *logrus.Logger) *TributeHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &TributeHandler{
		config:   cfg,
		sessions: sessions,
		logger:   logger,
	}
}

// @Summary Create a tribute
// @Description Store a new tribute and return it as stored
// @Tags tributes
// @Accept json
// @Produce json
// @Param tribute body services.CreateTributeRequest true "Tribute data"
// @Success 201 {object} models.TributeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tributes [post]
func (h *TributeHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	log := h.requestLogger(req, "create")

	if req.Method != http.MethodPost {
		return methodNotAllowed()
	}
	if err := h.validateConfig(log); err != nil {
		return errorResponse(http.StatusInternalServerError, MsgConfigError)
	}

	createReq, err := services.ParseCreateRequest(req.Body)
	if err != nil {
		return errorResponse(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.OpenSession(ctx)
	if err != nil {
		logSessionError(log, err)
		return errorResponse(http.StatusInternalServerError, errorMessage(err, "Failed to add tribute"))
	}
	defer h.closeSession(session, log)

	tribute, err := session.Tributes.CreateTribute(ctx, createReq)
	if err != nil {
		log.WithError(err).Error("Error adding tribute")
		if isClientError(err) {
			return errorResponse(http.StatusBadRequest, errorMessage(err, "Failed to add tribute"))
		}
		return errorResponse(http.StatusInternalServerError, errorMessage(err, "Failed to add tribute"))
	}

	return lambda.JSON(http.StatusCreated, tribute)
}

// @Summary List tributes
// @Description Get tributes newest first, one page at a time
// @Tags tributes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size (max 100)" default(50)
// @Success 200 {object} services.TributePage
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tributes [get]
func (h *TributeHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	log := h.requestLogger(req, "list")

	if req.Method != http.MethodGet {
		return methodNotAllowed()
	}
	if err := h.validateConfig(log); err != nil {
		return errorResponse(http.StatusInternalServerError, MsgConfigError)
	}

	page := models.ParsePageRequest(req.Query("page"), req.Query("pageSize"), models.PageLimits{
		DefaultSize: h.config.Listing.DefaultPageSize,
		MaxSize:     h.config.Listing.MaxPageSize,
	})

	session, err := h.sessions.OpenSession(ctx)
	if err != nil {
		logSessionError(log, err)
		return errorResponse(http.StatusInternalServerError, MsgFetchFailed)
	}
	defer h.closeSession(session, log)

	result, err := session.Tributes.ListTributes(ctx, page)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"page":      page.Page,
			"page_size": page.PageSize,
		}).Error("Error fetching tributes")
		return errorResponse(http.StatusInternalServerError, MsgFetchFailed)
	}

	return lambda.JSON(http.StatusOK, result)
}

// UpdateTributeResponse acknowledges an update and carries the stored record
type UpdateTributeResponse struct {
	Message string                  `json:"message"`
	Tribute *models.TributeResponse `json:"tribute"`
}

// @Summary Update a tribute
// @Description Overwrite the author, message and photos of a tribute
// @Tags tributes
// @Accept json
// @Produce json
// @Param tribute body services.UpdateTributeRequest true "Tribute data including id"
// @Success 200 {object} UpdateTributeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tributes [put]
func (h *TributeHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	log := h.requestLogger(req, "update")

	if !allowMethod(req.Method, http.MethodPut, http.MethodPost) {
		return methodNotAllowed()
	}
	if err := h.validateConfig(log); err != nil {
		return errorResponse(http.StatusInternalServerError, MsgConfigError)
	}

	updateReq, err := services.ParseUpdateRequest(req.Body)
	if err != nil {
		return errorResponse(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.OpenSession(ctx)
	if err != nil {
		logSessionError(log, err)
		return errorResponse(http.StatusInternalServerError, errorMessage(err, "Failed to update tribute"))
	}
	defer h.closeSession(session, log)

	tribute, err := session.Tributes.UpdateTribute(ctx, updateReq)
	if err != nil {
		if repositories.IsNotFound(err) {
			return errorResponse(http.StatusNotFound, MsgNotFound)
		}
		log.WithError(err).WithField("tribute_id", updateReq.ID).Error("Error updating tribute")
		if isClientError(err) {
			return errorResponse(http.StatusBadRequest, errorMessage(err, "Failed to update tribute"))
		}
		return errorResponse(http.StatusInternalServerError, errorMessage(err, "Failed to update tribute"))
	}

	return lambda.JSON(http.StatusOK, UpdateTributeResponse{
		Message: "Tribute updated successfully",
		Tribute: tribute,
	})
}

// @Summary Delete a tribute
// @Description Remove a tribute by id
// @Tags tributes
// @Accept json
// @Produce json
// @Param tribute body services.DeleteTributeRequest true "Tribute id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tributes [delete]
func (h *TributeHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	log := h.requestLogger(req, "delete")

	if !allowMethod(req.Method, http.MethodDelete, http.MethodPost) {
		return methodNotAllowed()
	}
	if err := h.validateConfig(log); err != nil {
		return errorResponse(http.StatusInternalServerError, MsgConfigError)
	}

	deleteReq, err := services.ParseDeleteRequest(req.Body)
	if err != nil {
		return errorResponse(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.OpenSession(ctx)
	if err != nil {
		logSessionError(log, err)
		return errorResponse(http.StatusInternalServerError, errorMessage(err, "Failed to delete tribute"))
	}
	defer h.closeSession(session, log)

	if err := session.Tributes.DeleteTribute(ctx, int64(deleteReq.ID)); err != nil {
		if repositories.IsNotFound(err) {
			return errorResponse(http.StatusNotFound, MsgNotFound)
		}
		log.WithError(err).WithField("tribute_id", deleteReq.ID).Error("Error deleting tribute")
		return errorResponse(http.StatusInternalServerError, errorMessage(err, "Failed to delete tribute"))
	}

	return lambda.JSON(http.StatusOK, MessageResponse{Message: "Tribute deleted successfully"})
}

// validateConfig checks the database settings before any request parsing
func (h *TributeHandler) validateConfig(log *logrus.Entry) error {
	if h.config == nil {
		log.Error("Missing configuration")
		return config.ErrMissingDatabaseConfig
	}
	if err := h.config.Database.Validate(); err != nil {
		log.WithError(err).Error("Missing Turso URL or auth token")
		return err
	}
	return nil
}

// logSessionError separates an unreachable database from other session failures
func logSessionError(log *logrus.Entry, err error) {
	if repositories.IsConnection(err) {
		log.WithError(err).Error("Database connection failed")
		return
	}
	log.WithError(err).Error("Failed to open database session")
}

func (h *TributeHandler) closeSession(session *services.Session, log *logrus.Entry) {
	if err := session.Close(); err != nil {
		log.WithError(err).Warn("Failed to close database session")
	}
}

func (h *TributeHandler) requestLogger(req *lambda.Request, operation string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"operation":  operation,
	})
}
