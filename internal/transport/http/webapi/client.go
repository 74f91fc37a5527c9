package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httptransport "gallery-server/internal/transport/http"
)

type clientLoginRequest struct {
	Key string `json:"key"`
}

func (s *Service) handleClientLogin(c *gin.Context) {
	var req clientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondMessage(c, http.StatusBadRequest, "Client key required")
		return
	}

	record, err := s.clients.AuthenticateByKey(c.Request.Context(), req.Key)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to login")
		return
	}

	token, err := s.tokens.IssueClient(record.ID, record.Name)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"role":       "client",
		"clientId":   record.ID,
		"clientName": record.Name,
	})
}

func (s *Service) handleClientPhotos(c *gin.Context) {
	claims, ok := httptransport.ClaimsFrom(c)
	if !ok {
		httptransport.RespondMessage(c, http.StatusUnauthorized, "Missing token")
		return
	}

	photos, err := s.photos.ListForClient(c.Request.Context(), claims.ClientID)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to fetch photos")
		return
	}
	c.JSON(http.StatusOK, photos)
}
