package response

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils/logging"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	ErrInternal        = "internal server error"
	ErrInvalidBody     = "invalid request body"
	ErrMissingRequired = "missing required field"
)

// Error sends a standardized error response
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// FromError maps a service error to its status code.
// Unknown errors are logged and hidden behind a generic 500.
func FromError(c *gin.Context, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c).WithError(err).Error("request failed")
		Error(c, status, ErrInternal)
		return
	}
	Error(c, status, err.Error())
}

// StatusFromError returns the HTTP status for a service error
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrUnsupportedHash):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// BindingError answers a request whose body failed to decode or validate
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		Error(c, http.StatusBadRequest, ErrMissingRequired+": "+verrs[0].Field())
		return
	}
	Error(c, http.StatusBadRequest, ErrInvalidBody)
}

var tagNameOnce sync.Once

// UseJSONFieldNames makes gin's validator report fields by their json tag,
// so binding errors name problem_id rather than ProblemID
func UseJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}
