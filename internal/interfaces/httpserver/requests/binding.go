package requests

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"jan-server/catalog-api/internal/utils/platformerrors"
)

const invalidDataMessage = "The given data was invalid."

var (
	validate   = newValidator()
	indexBrace = regexp.MustCompile(`\[(\d+)\]`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindJSON decodes the body into dst and validates it. On failure the 400
// response is written and false is returned.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		platformerrors.WriteValidationError(c, "request body must be valid JSON", platformerrors.FieldError{
			Field:   "body",
			Message: err.Error(),
		})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		platformerrors.WriteValidationError(c, invalidDataMessage, FieldErrors(err)...)
		return false
	}
	return true
}

// FieldErrors converts validator failures into dotted field errors such as
// translations.0.locale.
func FieldErrors(err error) []platformerrors.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []platformerrors.FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]platformerrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		out = append(out, platformerrors.FieldError{Field: field, Message: message(field, fe)})
	}
	return out
}

func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	return indexBrace.ReplaceAllString(namespace, ".$1")
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
