package httpapi

import (
	"net/http"
	"strings"

	"github.com/knothost/siteapi/internal/common"
	"github.com/knothost/siteapi/internal/server/services"
)

const (
	msgSignedUp = "User created. Confirmation email sent."
	msgForgot   = "If the email exists, a reset link has been sent."
)

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type meResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := s.auth.Signup(r.Context(), services.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, msgSignedUp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleForgot answers identically whether or not the account exists.
func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, msgForgot)
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exists, err := s.auth.EmailExists(r.Context(), req.Email)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.auth.ResetPassword(r.Context(), req.Email, req.Password); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	token, ok := extractBearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	user, err := s.auth.WhoAmI(r.Context(), token)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{Email: user.Email, FirstName: user.FirstName, LastName: user.LastName})
}

func extractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	return token, token != ""
}
