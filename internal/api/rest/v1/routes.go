package v1

import (
	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
// The signature record routes are only registered when recordService is not nil.
func SetupRoutes(r *gin.Engine,
	signingService signing.SigningService,
	keyService signing.KeyService,
	recordService signing.SignatureRecordService,
	logger logger.Logger) {

	v1 := r.Group(BasePath) // lookup in version file

	// Signature Routes
	signatureHandler := NewSignatureHandler(signingService, logger)
	v1.POST("/canonical", signatureHandler.Canonical)
	v1.POST("/sign", signatureHandler.Sign)
	v1.POST("/verify", signatureHandler.Verify)
	v1.GET("/timestamp", signatureHandler.Timestamp)

	// Keys Routes
	keyHandler := NewKeyHandler(keyService)
	v1.POST("/keys", keyHandler.GenerateKeys)

	// Record Routes
	if recordService != nil {
		recordHandler := NewRecordHandler(recordService)
		v1.GET("/signatures", recordHandler.ListRecords)
		v1.GET("/signatures/:id", recordHandler.GetRecordByID)
	}
}
