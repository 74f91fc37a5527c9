package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httptransport "gallery-server/internal/transport/http"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Service) handleContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondMessage(c, http.StatusBadRequest, "All fields are required")
		return
	}

	if _, err := s.contact.Submit(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to submit message")
		return
	}
	httptransport.RespondMessage(c, http.StatusCreated, "Message received")
}
