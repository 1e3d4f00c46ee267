package handlers

import (
	"io"
	"net/http"

	"eod-reports/internal/blob"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
)

// screenshot payloads stay small; the CDN does its own resizing
const maxUploadBytes = 10 << 20

var blobStore blob.Store = blob.NewMemory()

// SetBlobStore swaps the image-host client in; main wires the real one.
func SetBlobStore(s blob.Store) {
	blobStore = s
}

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// UploadScreenshot pushes one image to the host and returns its URL. The
// caller attaches the URL to a report afterwards.
func UploadScreenshot(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}
	if ident.Role == models.RoleViewer {
		respondError(c, http.StatusForbidden, CodeForbidden, "viewers cannot upload")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "file is required")
		return
	}
	if fh.Size > maxUploadBytes {
		respondError(c, http.StatusBadRequest, CodeValidation, "file exceeds 10MB limit")
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[contentType]; !ok {
		respondError(c, http.StatusBadRequest, CodeValidation, "unsupported image type")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to read upload")
		return
	}

	url, err := blobStore.Store(c.Request.Context(), data, contentType)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to store image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
