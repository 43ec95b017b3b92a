package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
)

// ErrorResponse is the body of every non-2xx response rendered from an error.
type ErrorResponse struct {
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Kind        apperr.Kind       `json:"kind"`
	Message     string            `json:"message"`
	Timestamp   time.Time         `json:"timestamp"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:   http.StatusBadRequest,
	apperr.KindNotFound:     http.StatusNotFound,
	apperr.KindBusinessRule: http.StatusUnprocessableEntity,
	apperr.KindConflict:     http.StatusConflict,
	apperr.KindInternal:     http.StatusInternalServerError,
}

// StatusOf returns the HTTP status an error is rendered with.
func StatusOf(err error) int {
	if status, ok := kindStatus[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Internal errors are logged and replaced with a generic message.
func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusOf(err)

		resp := ErrorResponse{
			Status:    status,
			Error:     http.StatusText(status),
			Kind:      apperr.KindOf(err),
			Timestamp: time.Now().UTC(),
		}
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
			resp.Message = appErr.Message
			resp.FieldErrors = appErr.Fields
		} else {
			resp.Message = "An unexpected error occurred"
		}

		if status >= http.StatusInternalServerError {
			log.ErrorContext(c.Request.Context(), "request failed", "error", err, "path", c.Request.URL.Path)
		}
		c.AbortWithStatusJSON(status, resp)
	}
}

// bindingError converts a request binding failure into a Validation error.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return apperr.Validation("One or more fields are invalid", fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.InvalidField(typeErr.Field, "Must be a "+jsonKind(typeErr.Type))
	}
	return apperr.Validation("Malformed request body: "+err.Error(), nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Must not be empty"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "equipment_status":
		return "Must be one of: " + model.StatusList()
	}
	return "Is invalid"
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Bool:
		return "boolean"
	}
	return "string"
}

var registerOnce sync.Once

// registerValidations installs the equipment_status rule and reports field
// errors under their JSON names. It is safe to call more than once.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("unexpected gin validator engine %T", binding.Validator.Engine()))
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("equipment_status", validEquipmentStatus); err != nil {
			panic(fmt.Sprintf("register equipment_status validation: %v", err))
		}
	})
}

func validEquipmentStatus(fl validator.FieldLevel) bool {
	return model.Status(fl.Field().String()).Valid()
}
