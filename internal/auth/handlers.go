package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/apperr"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/db"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/logging"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/metrics"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 8

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// UserResponse is the success envelope for every auth route.
type UserResponse struct {
	User *UserInfo `json:"user"`
}

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// Register handles POST /api/v1/auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) error {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validateRegisterRequest(&req); err != nil {
		return err
	}

	user, pair, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, db.ErrEmailExists) {
			return apperr.EmailExists()
		}
		return apperr.InternalError("failed to create user").WithCause(err)
	}

	logger := logging.Ctx(r.Context())
	logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	h.service.SetAuthCookies(w, pair)
	writeUser(w, r, http.StatusCreated, user)
	return nil
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) error {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return apperr.ValidationError("email and password are required")
	}

	user, pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.AuthFailures.WithLabelValues("credentials").Inc()
			return apperr.InvalidCredentials()
		}
		return apperr.InternalError("login failed").WithCause(err)
	}

	h.service.SetAuthCookies(w, pair)
	writeUser(w, r, http.StatusOK, user)
	return nil
}

// Refresh handles POST /api/v1/auth/refresh. A missing cookie is rejected
// without touching cookies; any verification failure (or a vanished user)
// clears both cookies so the client cannot silently retry a dead token.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) error {
	refreshToken := readCookie(r, RefreshCookieName)
	if refreshToken == "" {
		return apperr.Unauthorized("no refresh token")
	}

	user, pair, err := h.service.Refresh(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			metrics.AuthFailures.WithLabelValues("token").Inc()
			h.service.ClearAuthCookies(w)
			return apperr.Unauthorized("invalid or expired refresh token")
		}
		return apperr.InternalError("token refresh failed").WithCause(err)
	}

	h.service.SetAuthCookies(w, pair)
	writeUser(w, r, http.StatusOK, user)
	return nil
}

// Logout handles POST /api/v1/auth/logout. Idempotent: clearing already
// cleared cookies succeeds the same way.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) error {
	h.service.ClearAuthCookies(w)
	apperr.WriteJSON(w, apperr.GetRequestID(r.Context()), http.StatusOK, map[string]string{
		"status": "logged out",
	})
	return nil
}

// Me handles GET /api/v1/auth/me. Reads the row so the response carries
// current profile fields, not the ones frozen into the token.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) error {
	identity := CurrentUser(r.Context())
	if identity == nil {
		return apperr.Unauthorized("not authenticated")
	}

	user, err := h.service.GetUser(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			h.service.ClearAuthCookies(w)
			return apperr.Unauthorized("not authenticated")
		}
		return apperr.InternalError("failed to load user").WithCause(err)
	}

	writeUser(w, r, http.StatusOK, user)
	return nil
}

// UpdateProfile handles PATCH /api/v1/auth/me.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) error {
	identity := CurrentUser(r.Context())
	if identity == nil {
		return apperr.Unauthorized("not authenticated")
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return apperr.ValidationError("username is required")
	}
	if len(req.Username) > 50 {
		return apperr.ValidationError("username must be at most 50 characters")
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.UserID, req.Username, req.Avatar)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return apperr.Unauthorized("not authenticated")
		}
		return apperr.InternalError("failed to update profile").WithCause(err)
	}

	writeUser(w, r, http.StatusOK, user)
	return nil
}

func validateRegisterRequest(req *RegisterRequest) error {
	if req.Email == "" {
		return apperr.ValidationError("email is required")
	}
	if !emailRegex.MatchString(req.Email) {
		return apperr.ValidationError("invalid email format")
	}
	if req.Password == "" {
		return apperr.ValidationError("password is required")
	}
	if len(req.Password) < minPasswordLength {
		return apperr.ValidationError("password must be at least 8 characters")
	}
	return nil
}

func writeUser(w http.ResponseWriter, r *http.Request, status int, user *db.User) {
	apperr.WriteJSON(w, apperr.GetRequestID(r.Context()), status, UserResponse{User: PublicUser(user)})
}
