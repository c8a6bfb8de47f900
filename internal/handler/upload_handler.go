package handler

import (
	"net/http"

	"chat-history/internal/services"
	"chat-history/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Auth handles GET /api/upload and returns {token, expire, signature}.
func (h *UploadHandler) Auth(c *gin.Context) {
	params, err := h.service.GetUploadAuthParams(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error getting upload credentials!")
		return
	}
	c.JSON(http.StatusOK, params)
}

// Presign handles GET /api/upload/presign.
func (h *UploadHandler) Presign(c *gin.Context) {
	var req httpdto.PresignUploadRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, "invalid request")
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		unauthorized(c)
		return
	}

	result, err := h.service.PresignUpload(c.Request.Context(), services.PresignInput{
		UploaderID:  userID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		respondError(c, err, "Error presigning upload!")
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(result))
}
