package v1

import (
	"fmt"
	"net/http"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/gin-gonic/gin"
)

// KeyHandler defines the interface for handling key-related operations
type KeyHandler interface {
	GenerateKeys(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	keyService signing.KeyService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(keyService signing.KeyService) KeyHandler {
	return &keyHandler{
		keyService: keyService,
	}
}

// GenerateKeys handles the POST request to generate a demo RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate an RSA key pair and return it as PKCS#8 private and SPKI public PEM. Nothing is stored.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body GenerateKeyRequest false "Key generation parameters"
// @Success 201 {object} KeyPairResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) GenerateKeys(ctx *gin.Context) {
	var request GenerateKeyRequest

	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("invalid key request: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, err)
		return
	}

	keyPair, err := handler.keyService.GenerateKeyPair(ctx.Request.Context(), request.ModulusBits, request.SingleLine)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, KeyPairResponse{
		PrivatePEM:  keyPair.PrivateKeyPEM,
		PublicPEM:   keyPair.PublicKeyPEM,
		ModulusBits: keyPair.ModulusBits,
	})
}
