package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error to its HTTP status. Primitive failures are server side.
func statusFor(err error) int {
	switch {
	case errors.Is(err, signing.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, signing.ErrSignFailed), errors.Is(err, signing.ErrVerifyFailed):
		return http.StatusInternalServerError
	case signing.ErrorCode(err) != "":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	ctx.JSON(statusFor(err), ErrorResponse{
		Message: err.Error(),
		Code:    signing.ErrorCode(err),
	})
}
