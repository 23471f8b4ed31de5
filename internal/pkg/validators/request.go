package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	httpMethodPattern = regexp.MustCompile(`^[A-Z]+$`)
	timestampPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z)$`)
)

// Tag names registered by New.
const (
	TagHTTPMethod = "http_method"
	TagTimestamp  = "iso8601_timestamp"
	TagRSAModulus = "rsa_modulus"
)

// HTTPMethodValidation accepts an upper-case ASCII token such as POST.
func HTTPMethodValidation(fl validator.FieldLevel) bool {
	return httpMethodPattern.MatchString(fl.Field().String())
}

// TimestampValidation backs the iso8601_timestamp tag. It accepts an ISO-8601
// date-time carrying an explicit offset or Z.
// The whole value must match: leading or trailing text such as "at 2024-01-01T00:00:00Z"
// is rejected, which is stricter than a suffix-only match.
func TimestampValidation(fl validator.FieldLevel) bool {
	return timestampPattern.MatchString(fl.Field().String())
}

// New returns a validator with the request-signer tags registered.
func New() *validator.Validate {
	validate := validator.New()
	// Registration only fails for empty tag names or nil funcs.
	_ = validate.RegisterValidation(TagHTTPMethod, HTTPMethodValidation)
	_ = validate.RegisterValidation(TagTimestamp, TimestampValidation)
	_ = validate.RegisterValidation(TagRSAModulus, RSAModulusValidation)
	return validate
}
