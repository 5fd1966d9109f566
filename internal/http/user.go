package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tally/internal/core"
	"tally/internal/log"
)

type userContextKey struct{}

// HeaderForwardedEmail carries the proxy-authenticated user's email.
const HeaderForwardedEmail = "X-Forwarded-Email"

// withUser resolves the acting user from the trusted proxy header, falling
// back to the default user, and stores it in the request context.
func (s *Server) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, email := s.identify(r)

		ctx, cancel := requestContext(r)
		user, err := s.svc.Users.Resolve(ctx, username, email)
		cancel()
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Failed to resolve user",
				log.FieldUsername, username, log.FieldError, err)
			if core.IsValidation(err) {
				BadRequestError("Invalid user").Write(w)
				return
			}
			InternalServerError("Could not resolve user").Write(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey{}, user)))
	})
}

func (s *Server) identify(r *http.Request) (username, email string) {
	if s.opts.UserHeader != "" {
		username = strings.TrimSpace(r.Header.Get(s.opts.UserHeader))
	}
	email = strings.TrimSpace(r.Header.Get(HeaderForwardedEmail))
	if username == "" {
		username = s.opts.DefaultUser
		if email == "" {
			email = s.opts.DefaultEmail
		}
	}
	return username, email
}

// currentUser returns the user resolved by withUser.
func currentUser(ctx context.Context) core.User {
	u, _ := ctx.Value(userContextKey{}).(core.User)
	return u
}

// writeServiceError maps service errors to status codes. Unknown errors are
// logged and hidden behind a generic message.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		NotFoundError("Not found").Write(w)
	case errors.Is(err, core.ErrInUse):
		ConflictError("Still used by expenses. Merge or delete them first.").Write(w)
	case core.IsValidation(err):
		UnprocessableEntityError(err.Error()).Write(w)
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.ErrorContext(r.Context(), "Request timed out",
			log.FieldOperation, op, log.FieldError, err, log.FieldErrorType, log.ErrorTypeTimeout)
		ErrorResponse(http.StatusServiceUnavailable, "The request took too long").Write(w)
	default:
		s.logger.ErrorContext(r.Context(), "Request failed",
			log.FieldOperation, op,
			log.FieldUserID, currentUser(r.Context()).ID,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeInternal)
		InternalServerError("Something went wrong").Write(w)
	}
}

// writeAPIError is writeServiceError for the JSON endpoints.
func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, core.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case core.IsValidation(err):
		status, msg = http.StatusBadRequest, err.Error()
	default:
		s.logger.ErrorContext(r.Context(), "API request failed",
			log.FieldOperation, op, log.FieldError, err, log.FieldErrorType, log.ErrorTypeInternal)
	}
	NewHTMXResponse().Status(status).JSON(map[string]string{"error": msg}).Write(w)
}
