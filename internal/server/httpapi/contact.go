package httpapi

import (
	"net/http"

	"github.com/knothost/siteapi/internal/server/services"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Details string `json:"details"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := s.contact.Submit(r.Context(), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Details: req.Details,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{
		Success: true,
		Message: "Request received. We will contact you shortly.",
		ID:      msg.ID,
	})
}
