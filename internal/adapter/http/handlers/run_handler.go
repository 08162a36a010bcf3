package handlers

import (
	"errors"
	"net/http"

	request "orders_etl/internal/adapter/http/dto/request"
	response "orders_etl/internal/adapter/http/dto/response"
	"orders_etl/internal/domain/flatten"
	"orders_etl/internal/infrastructure/logger"
	"orders_etl/internal/usecase"
	"orders_etl/internal/usecase/interfaces"
	"orders_etl/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidRunPayload = pkg.NewDomainErrorSimple("INVALID_RUN_INPUT", "Invalid run payload", http.StatusBadRequest)
)

// RunHandler triggers flatten runs over HTTP, for local runs against MinIO or
// LocalStack, and exposes the run audit trail.
type RunHandler struct {
	usecase usecase.IFlattenOrdersUseCase
}

func NewRunHandler(uc usecase.IFlattenOrdersUseCase) *RunHandler {
	return &RunHandler{usecase: uc}
}

// StartRun godoc
// @Summary      Flatten one order document
// @Description  Reads a JSON array of orders from S3 and writes fact_orders and fact_order_items as partitioned Parquet.
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        request  body      request.RunRequest  true  "Input location"
// @Success      200      {object}  response.RunResultResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /runs [post]
func (h *RunHandler) StartRun(c *gin.Context) {
	var payload request.RunRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRunPayload.HTTPStatus, errInvalidRunPayload.ToHTTPError())
		return
	}

	inv, err := payload.ToInvocation(logger.GetRequestID(c))
	if err != nil {
		c.JSON(errInvalidRunPayload.HTTPStatus, errInvalidRunPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.Run(c.Request.Context(), inv)
	if err != nil {
		appErr := mapRunError(err)
		h.logFailure(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromFlattenResult(result))
}

// GetRun godoc
// @Summary      Get a run
// @Description  Returns the audit record of a previous run. Requires RUNS_TABLE.
// @Tags         runs
// @Produce      json
// @Param        run_id  path      string  true  "Run ID"
// @Success      200     {object}  response.RunResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      404     {object}  pkg.HTTPError
// @Failure      500     {object}  pkg.HTTPError
// @Router       /runs/{run_id} [get]
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.usecase.GetRun(c.Request.Context(), c.Param("run_id"))
	if err != nil {
		appErr := mapRunError(err)
		h.logFailure(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRun(run))
}

func (h *RunHandler) logFailure(c *gin.Context, appErr *pkg.AppError) {
	_ = c.Error(appErr)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.GetGinLogger(c).Error("run request failed", zap.Error(appErr.Err))
	}
}

func mapRunError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInputLocation), errors.Is(err, usecase.ErrInvalidRunID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrObjectNotFound):
		return pkg.NewDomainErrorSimple("INPUT_NOT_FOUND", "Input object not found", http.StatusNotFound)
	case errors.Is(err, flatten.ErrMalformedJSON):
		return pkg.NewDomainErrorSimple("MALFORMED_INPUT", "Input is not valid JSON", http.StatusUnprocessableEntity)
	case errors.Is(err, flatten.ErrInvalidOrderRecord):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_RECORD", "Input array must only contain order objects", http.StatusUnprocessableEntity)
	case errors.Is(err, flatten.ErrMissingRequiredFields):
		return pkg.NewDomainErrorSimple("MISSING_REQUIRED_FIELDS", "Input must declare order_id and order_timestamp", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrRunNotFound):
		return pkg.NewDomainErrorSimple("RUN_NOT_FOUND", "Run not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRunAuditDisabled):
		return pkg.NewDomainErrorSimple("RUN_AUDIT_DISABLED", "Run audit is not configured", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
