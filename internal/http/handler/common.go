package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return toJSONFieldName(f.Name)
		}
		return name
	})
	return v
}

// maxJSONBody bounds request bodies other than uploads
const maxJSONBody = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondFile sends a generated or stored file as an attachment
func respondFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decodeJSON reads and validates a request body, answering 400 itself on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// parseUUIDParam reads a UUID path parameter, answering 400 itself on failure
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", label))
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDQuery reads an optional UUID query parameter
func parseUUIDQuery(r *http.Request, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &id, nil
}

// parseIntQuery parses an integer query parameter with a default value
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

func parseBoolQuery(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// respondValidationError sends a validation error response with field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fieldErrors := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fieldErrors[fe.Field()] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fieldErrors,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to camelCase
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a problem-details error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the problem type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusRequestEntityTooLarge:
		return domain.ErrorTypeTooLarge
	default:
		return domain.ErrorTypeInternal
	}
}

// errorStatuses maps service errors to HTTP statuses; the first match wins
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrLabSuspended, http.StatusForbidden},
	{service.ErrPermissionDenied, http.StatusForbidden},
	{service.ErrCannotDeactivateSelf, http.StatusForbidden},

	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrLabNotFound, http.StatusNotFound},
	{service.ErrFluorochromeNotFound, http.StatusNotFound},
	{service.ErrAntibodyNotFound, http.StatusNotFound},
	{service.ErrLotNotFound, http.StatusNotFound},
	{service.ErrVialNotFound, http.StatusNotFound},
	{service.ErrStorageUnitNotFound, http.StatusNotFound},
	{service.ErrCellNotFound, http.StatusNotFound},
	{service.ErrDocumentNotFound, http.StatusNotFound},
	{service.ErrTicketNotFound, http.StatusNotFound},

	{service.ErrConflict, http.StatusConflict},
	{service.ErrDuplicateEmail, http.StatusConflict},
	{service.ErrDuplicateLab, http.StatusConflict},
	{service.ErrDuplicateFluorochrome, http.StatusConflict},
	{service.ErrFluorochromeInUse, http.StatusConflict},
	{service.ErrDuplicateLot, http.StatusConflict},
	{service.ErrLotArchived, http.StatusConflict},
	{service.ErrAntibodyInactive, http.StatusConflict},
	{service.ErrQCDocumentRequired, http.StatusConflict},
	{service.ErrQCNotApproved, http.StatusConflict},
	{service.ErrVialNotSealed, http.StatusConflict},
	{service.ErrVialNotOpened, http.StatusConflict},
	{service.ErrVialNotInUse, http.StatusConflict},
	{service.ErrCellMismatch, http.StatusConflict},
	{service.ErrCellOccupied, http.StatusConflict},
	{service.ErrInsufficientSpace, http.StatusConflict},
	{service.ErrUnitNotEmpty, http.StatusConflict},
	{service.ErrResizeOccupied, http.StatusConflict},
	{service.ErrUnitInactive, http.StatusConflict},
	{service.ErrStorageDisabled, http.StatusConflict},

	{service.ErrInvalidInput, http.StatusBadRequest},
	{service.ErrLabRequired, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusBadRequest},
	{service.ErrPasswordUnchanged, http.StatusBadRequest},
	{service.ErrInvalidExpirationDate, http.StatusBadRequest},
	{service.ErrInvalidDateRange, http.StatusBadRequest},
	{service.ErrCellNotInUnit, http.StatusBadRequest},
	{service.ErrCellCountMismatch, http.StatusBadRequest},

	{service.ErrDocumentTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrDocumentStoreUnavailable, http.StatusServiceUnavailable},
}

// handleServiceError answers with the status of a known service error and
// logs anything else as an internal error
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			respondWithError(w, e.status, capitalize(err.Error()))
			return
		}
	}
	logger.Error("failed to "+action, zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Failed to "+action)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
