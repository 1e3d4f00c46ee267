package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageHost talks to the third-party image CDN over its REST API:
// multipart POST /upload returns the public URL, DELETE /images removes one.
type ImageHost struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewImageHost(baseURL, apiKey string) *ImageHost {
	return &ImageHost{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *ImageHost) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", uuid.NewString()+extFor(contentType))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Api-Key", h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("image host upload failed: status %d", resp.StatusCode)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("image host upload: bad response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("image host upload: empty url in response")
	}
	return out.URL, nil
}

func (h *ImageHost) Delete(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		h.baseURL+"/images?url="+url.QueryEscape(imageURL), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// 404 means it is already gone, which is what we wanted
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent &&
		resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image host delete failed: status %d", resp.StatusCode)
	}
	return nil
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
