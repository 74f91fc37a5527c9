package webapi

import (
	"crypto/subtle"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gallery-server/internal/platform/mail"
	httptransport "gallery-server/internal/transport/http"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (s *Service) handleAdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		httptransport.RespondMessage(c, http.StatusBadRequest, "Password required")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.Auth.AdminPassword)) != 1 {
		httptransport.RespondMessage(c, http.StatusUnauthorized, "Invalid admin password")
		return
	}

	token, err := s.tokens.IssueAdmin()
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "role": "admin"})
}

func (s *Service) handleListClients(c *gin.Context) {
	clients, err := s.clients.List(c.Request.Context())
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to fetch clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

type clientCreateRequest struct {
	Name string `json:"name"`
}

func (s *Service) handleCreateClient(c *gin.Context) {
	var req clientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondMessage(c, http.StatusBadRequest, "Name is required")
		return
	}

	record, err := s.clients.Create(c.Request.Context(), req.Name)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// handleDeleteClient removes a client and everything the client owns.
// Storage is reclaimed before the rows go away; the database cannot
// reclaim external bytes on its own.
func (s *Service) handleDeleteClient(c *gin.Context) {
	clientID, ok := parseID(c, "Invalid client id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	photos, err := s.photos.ListForClient(ctx, clientID)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to delete client")
		return
	}
	for _, p := range photos {
		s.reclaim(c, p.PreviewURL)
		s.reclaim(c, p.HDURL)
	}

	if err := s.photos.DeleteForClient(ctx, clientID); err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to delete client")
		return
	}
	if err := s.clients.Delete(ctx, clientID); err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to delete client")
		return
	}
	httptransport.RespondMessage(c, http.StatusOK, "Client deleted")
}

func (s *Service) handleAdminClientPhotos(c *gin.Context) {
	clientID, ok := parseID(c, "Invalid client id")
	if !ok {
		return
	}

	photos, err := s.photos.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to fetch photos")
		return
	}
	c.JSON(http.StatusOK, photos)
}

type photoCreateRequest struct {
	ClientID   uint   `json:"clientId"`
	Title      string `json:"title"`
	PreviewURL string `json:"previewUrl"`
	HDURL      string `json:"hdUrl"`
}

// handleCreatePhoto accepts either JSON with external locators or a
// multipart form carrying `preview` and `hd` files. Uploaded files go
// through the active storage provider; the registry only ever sees
// locators.
func (s *Service) handleCreatePhoto(c *gin.Context) {
	var req photoCreateRequest

	contentType := c.ContentType()
	isMultipart := strings.HasPrefix(contentType, "multipart/form-data")

	if isMultipart {
		clientID, _ := strconv.ParseUint(c.PostForm("clientId"), 10, 32)
		req.ClientID = uint(clientID)
		req.Title = c.PostForm("title")
		req.PreviewURL = c.PostForm("previewUrl")
		req.HDURL = c.PostForm("hdUrl")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondMessage(c, http.StatusBadRequest, "clientId and title are required")
		return
	}

	if req.ClientID == 0 || strings.TrimSpace(req.Title) == "" {
		httptransport.RespondMessage(c, http.StatusBadRequest, "clientId and title are required")
		return
	}

	previewURL := req.PreviewURL
	hdURL := req.HDURL

	if isMultipart {
		if locator, ok := s.storeUploadedFile(c, "preview"); !ok {
			return
		} else if locator != "" {
			previewURL = locator
		}
		if locator, ok := s.storeUploadedFile(c, "hd"); !ok {
			return
		} else if locator != "" {
			hdURL = locator
		}
	}

	record, err := s.photos.Create(c.Request.Context(), req.ClientID, req.Title, previewURL, hdURL)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to upload photo")
		return
	}

	c.JSON(http.StatusCreated, record)

	mail.Dispatch(s.notifier, s.logger, "New photo uploaded",
		fmt.Sprintf("Client ID: %d\nTitle: %s\nUploaded: %s", record.ClientID, record.Title, record.UploadedAt.Format(timeLayout)))
}

func (s *Service) handleDeletePhoto(c *gin.Context) {
	photoID, ok := parseID(c, "Invalid photo id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	record, err := s.photos.Get(ctx, photoID)
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to delete photo")
		return
	}

	s.reclaim(c, record.PreviewURL)
	s.reclaim(c, record.HDURL)

	if err := s.photos.Delete(ctx, photoID); err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to delete photo")
		return
	}
	httptransport.RespondMessage(c, http.StatusOK, "Photo deleted")
}

// storeUploadedFile pushes one multipart file through the provider.
// A missing field is fine (locator ""); oversize or unreadable input
// writes the error response and reports !ok.
func (s *Service) storeUploadedFile(c *gin.Context, field string) (string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", true
	}

	if fileHeader.Size > s.config.Uploads.MaxBytes {
		httptransport.RespondMessage(c, http.StatusBadRequest,
			fmt.Sprintf("File exceeds the %dMB limit", s.config.Uploads.MaxBytes>>20))
		return "", false
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		s.logger.ErrorTag("HTTP", "failed to read uploaded file %q: %v", field, err)
		httptransport.RespondMessage(c, http.StatusInternalServerError, "Failed to upload photo")
		return "", false
	}

	locator, err := s.uploads.Store(c.Request.Context(), data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		httptransport.RespondError(c, s.logger, err, "Failed to upload photo")
		return "", false
	}
	return locator, true
}

// reclaim releases stored bytes and only ever logs failures: the row
// delete must go through even when the provider misbehaves.
func (s *Service) reclaim(c *gin.Context, locator string) {
	if locator == "" {
		return
	}
	if err := s.uploads.Reclaim(c.Request.Context(), locator); err != nil {
		s.logger.WarnTag("Storage", "failed to reclaim %q: %v", locator, err)
	}
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func parseID(c *gin.Context, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httptransport.RespondMessage(c, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}

const timeLayout = "2006-01-02 15:04:05"
