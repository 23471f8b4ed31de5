package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/gin-gonic/gin"
)

// RecordHandler defines the interface for reading signature audit records
type RecordHandler interface {
	ListRecords(ctx *gin.Context)
	GetRecordByID(ctx *gin.Context)
}

type recordHandler struct {
	recordService signing.SignatureRecordService
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(recordService signing.SignatureRecordService) RecordHandler {
	return &recordHandler{
		recordService: recordService,
	}
}

// ListRecords handles the GET request to list signature records with optional query parameters
// @Summary List signature records
// @Description Fetch stored sign and verify outcomes, newest first unless sortOrder says otherwise.
// @Tags Records
// @Produce json
// @Param operation query string false "sign or verify"
// @Param endpoint query string false "Endpoint path"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} SignatureRecordResponse
// @Failure 400 {object} ErrorResponse
// @Router /signatures [get]
func (handler *recordHandler) ListRecords(ctx *gin.Context) {
	query := signing.NewSignatureRecordQuery()

	if operation := ctx.Query("operation"); len(operation) > 0 {
		query.Operation = operation
	}

	if endpoint := ctx.Query("endpoint"); len(endpoint) > 0 {
		query.Endpoint = endpoint
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		n, err := strconv.Atoi(limit)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid limit %q", limit)})
			return
		}
		query.Limit = n
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		n, err := strconv.Atoi(offset)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid offset %q", offset)})
			return
		}
		query.Offset = n
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	records, err := handler.recordService.List(ctx.Request.Context(), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []SignatureRecordResponse{}
	for _, record := range records {
		listResponse = append(listResponse, newSignatureRecordResponse(record))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetRecordByID handles the GET request to retrieve a signature record by ID
// @Summary Retrieve a signature record by ID
// @Tags Records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} SignatureRecordResponse
// @Failure 404 {object} ErrorResponse
// @Router /signatures/{id} [get]
func (handler *recordHandler) GetRecordByID(ctx *gin.Context) {
	recordID := ctx.Param("id")

	record, err := handler.recordService.GetByID(ctx.Request.Context(), recordID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSignatureRecordResponse(record))
}
