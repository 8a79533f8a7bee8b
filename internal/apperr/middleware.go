package apperr

import (
	"net/http"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/logging"
)

const (
	// RequestIDHeader is the HTTP header for request ID
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware injects a request ID into the context, the response
// headers, and the request-scoped logger.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = GenerateRequestID()
		}

		ctx := WithRequestID(r.Context(), requestID)
		scoped := logging.Logger().With().Str("request_id", requestID).Logger()
		ctx = logging.WithLogger(ctx, scoped)

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler wraps an http.HandlerFunc with error handling capabilities
type Handler func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler is the handler boundary: it converts Handlers into standard
// http.HandlerFuncs and decides whether server-error causes are attached to
// response bodies. Causes stay internal when built for production.
type ErrorHandler struct {
	exposeCause bool
}

// NewErrorHandler builds the handler boundary for the given environment.
func NewErrorHandler(production bool) *ErrorHandler {
	return &ErrorHandler{exposeCause: !production}
}

// HandleFunc converts a Handler to a standard http.HandlerFunc. Returned
// errors are rendered as JSON error bodies so nothing escapes the handler
// boundary; server errors are logged with the request id.
func (eh *ErrorHandler) HandleFunc(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			requestID := GetRequestID(r.Context())
			if IsServerError(err) || !IsClientError(err) {
				logger := logging.Ctx(r.Context())
				logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
			}
			writeError(w, requestID, err, eh.exposeCause)
		}
	}
}
