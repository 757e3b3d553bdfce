package upload

import (
	"fmt"
	"time"

	"github.com/classpoint/classpoint/services/spaces"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/gofiber/fiber/v2"
)

// maxUploadSize caps a single uploaded file at 25 MB
const maxUploadSize = 25 << 20

// UploadHandler handles file uploads to the object store
type UploadHandler struct {
	spacesClient *spaces.Client
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(spacesClient *spaces.Client) *UploadHandler {
	return &UploadHandler{spacesClient: spacesClient}
}

// UploadFile handles POST /api/v1/uploads
// Accepts one multipart file and returns its storage key and public URL.
// The returned key is what callers place in attachment lists and avatar
// fields.
func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	if h.spacesClient == nil {
		return response.ServiceUnavailable(c, "File storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "A file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return response.BadRequest(c, "File exceeds the 25 MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	key := spaces.GenerateKey(fmt.Sprintf("uploads/%d", userID), fileHeader.Filename)
	url, err := h.spacesClient.Upload(c.Context(), key, file, spaces.ContentType(fileHeader.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store file")
	}

	return response.Created(c, fiber.Map{
		"key": key,
		"url": url,
	})
}

// GetFile handles GET /api/v1/uploads/*
// Redirects to a short-lived signed URL for the stored object.
func (h *UploadHandler) GetFile(c *fiber.Ctx) error {
	if _, ok := middleware.GetUserID(c); !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	if h.spacesClient == nil {
		return response.ServiceUnavailable(c, "File storage is not configured")
	}

	key := c.Params("*")
	if key == "" {
		return response.BadRequest(c, "A file key is required")
	}

	url, err := h.spacesClient.PresignedURL(key, 15*time.Minute)
	if err != nil {
		return response.InternalServerError(c, "Failed to sign download URL")
	}

	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}
