package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/apperr"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/metrics"
)

// validate is shared across handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// ListResponse wraps every collection endpoint.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func writeList[T any](w http.ResponseWriter, r *http.Request, items []T) error {
	apperr.WriteJSON(w, apperr.GetRequestID(r.Context()), http.StatusOK, ListResponse[T]{
		Items: items,
		Total: len(items),
	})
	return nil
}

func writeItem(w http.ResponseWriter, r *http.Request, status int, item any) error {
	apperr.WriteJSON(w, apperr.GetRequestID(r.Context()), status, item)
	return nil
}

// strs keeps array fields as [] rather than null in responses.
func strs(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// storeError counts a failed repository call against its table and wraps
// it for the client.
func storeError(table, message string, err error) error {
	metrics.DBQueryErrors.WithLabelValues(table).Inc()
	return apperr.DatabaseError(message).WithCause(err)
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid id")
	}
	return id, nil
}

// validationError converts validator output into a field-relevant message.
func validationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		switch fe.Tag() {
		case "required":
			return apperr.ValidationError(fe.Field() + " is required")
		case "oneof":
			return apperr.ValidationError(fe.Field() + " must be one of: " + fe.Param())
		case "gte", "min":
			return apperr.ValidationError(fe.Field() + " must be at least " + fe.Param())
		case "lte", "max":
			return apperr.ValidationError(fe.Field() + " must be at most " + fe.Param())
		case "url":
			return apperr.ValidationError(fe.Field() + " must be a valid URL")
		default:
			return apperr.ValidationError(fe.Field() + " is invalid")
		}
	}
	return apperr.ValidationError("invalid request")
}
