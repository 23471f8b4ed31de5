package v1

import (
	"fmt"
	"net/http"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/MGTheTrain/request-signer/internal/pkg/pemutil"
	"github.com/MGTheTrain/request-signer/internal/pkg/timeutil"
	"github.com/gin-gonic/gin"
)

// SignatureHandler defines the HTTP operations around canonical strings and signatures
type SignatureHandler interface {
	Canonical(ctx *gin.Context)
	Sign(ctx *gin.Context)
	Verify(ctx *gin.Context)
	Timestamp(ctx *gin.Context)
}

type signatureHandler struct {
	signingService signing.SigningService
	logger         logger.Logger
}

// NewSignatureHandler creates a new SignatureHandler
func NewSignatureHandler(signingService signing.SigningService, logger logger.Logger) SignatureHandler {
	return &signatureHandler{
		signingService: signingService,
		logger:         logger,
	}
}

// Canonical handles the POST request to preview a canonical string
// @Summary Preview a canonical string
// @Description Minify the payload, hash it and compose the canonical string without signing
// @Tags Signatures
// @Accept json
// @Produce json
// @Param request body CanonicalRequestDTO true "Canonical request"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} ErrorResponse
// @Router /canonical [post]
func (handler *signatureHandler) Canonical(ctx *gin.Context) {
	var request CanonicalRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		abortWithError(ctx, err)
		return
	}

	preview, err := handler.signingService.Preview(ctx.Request.Context(), request.ToDomain())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newPreviewResponse(preview))
}

// Sign handles the POST request to sign a canonical string
// @Summary Sign a request
// @Description Sign the canonical string of a request with a PKCS#1 or PKCS#8 RSA private key
// @Tags Signatures
// @Accept json
// @Produce json
// @Param request body SignRequest true "Sign request"
// @Success 200 {object} SignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sign [post]
func (handler *signatureHandler) Sign(ctx *gin.Context) {
	var request SignRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		abortWithError(ctx, err)
		return
	}

	result, err := handler.signingService.Sign(ctx.Request.Context(), request.ToDomain(), request.PrivatePEM)
	if err != nil {
		handler.logger.Warn("Sign request failed for ", request.Endpoint, ": ", err)
		abortWithError(ctx, err)
		return
	}

	response := SignResponse{
		PreviewResponse: newPreviewResponse(&result.CanonicalPreview),
		SignatureBase64: result.SignatureBase64,
	}
	if request.WrapLines {
		response.SignatureWrapped = pemutil.WrapInThreeLines(result.SignatureBase64)
	}

	ctx.JSON(http.StatusOK, response)
}

// Verify handles the POST request to verify a signature
// @Summary Verify a signature
// @Description Verify a Base64 signature against the canonical string of a request with a PKCS#1 or SPKI RSA public key
// @Tags Signatures
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verify request"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /verify [post]
func (handler *signatureHandler) Verify(ctx *gin.Context) {
	var request VerifyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		abortWithError(ctx, err)
		return
	}

	result, err := handler.signingService.Verify(ctx.Request.Context(), request.ToDomain(), request.PublicPEM, request.Signature)
	if err != nil {
		handler.logger.Warn("Verify request failed for ", request.Endpoint, ": ", err)
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, VerifyResponse{
		PreviewResponse: newPreviewResponse(&result.CanonicalPreview),
		Valid:           result.Valid,
	})
}

// Timestamp handles the GET request for the current local timestamp
// @Summary Current timestamp
// @Description Return the server's local time in the ISO-8601 form accepted by /sign and /verify
// @Tags Signatures
// @Produce json
// @Success 200 {object} TimestampResponse
// @Router /timestamp [get]
func (handler *signatureHandler) Timestamp(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, TimestampResponse{Timestamp: timeutil.NowISOLocal()})
}
