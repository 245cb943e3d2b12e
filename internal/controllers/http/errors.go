package http

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"fitshop/internal/domain"
	"fitshop/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps domain errors to a status code and a client-safe message.
// Unknown errors map to 500 with an empty message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, "Not enough stock"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	default:
		return http.StatusInternalServerError, ""
	}
}

// errorResponse resolves the status and message for err. Server errors are
// logged with their detail and answered with fallback only.
func errorResponse(c *gin.Context, err error, fallback string) (int, string) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		msg = fallback
	}
	return status, msg
}

func respondError(c *gin.Context, err error, fallback string) {
	status, msg := errorResponse(c, err, fallback)
	c.JSON(status, gin.H{"message": msg})
}

// bindMessage describes a ShouldBindJSON failure. Validation failures answer
// invalid; a field of the wrong JSON type is named; anything else is a
// malformed body.
func bindMessage(err error, invalid string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return invalid
	}
	var typeErr *stdjson.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be %s", typeErr.Field, jsonKind(typeErr.Type))
	}
	return "Invalid request body"
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "a valid value"
	}
}
