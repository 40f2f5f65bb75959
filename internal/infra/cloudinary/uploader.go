// internal/infra/cloudinary/uploader.go
package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// HTTPUploader posts images to the Cloudinary unsigned-upload API and
// returns the hosted secure_url.
//
// Request shape: multipart/form-data with fields "file" and "upload_preset",
// response body: JSON containing "secure_url".
type HTTPUploader struct {
	client       *http.Client
	baseURL      string // override for tests; empty means the public API
	cloudName    string
	uploadPreset string
}

// NewHTTPUploader creates an uploader for the given cloud and unsigned
// upload preset.
func NewHTTPUploader(cloudName, uploadPreset string) *HTTPUploader {
	return &HTTPUploader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cloudName:    strings.TrimSpace(cloudName),
		uploadPreset: strings.TrimSpace(uploadPreset),
	}
}

// NewHTTPUploaderWithBaseURL points the uploader at an alternative endpoint
// (httptest servers).
func NewHTTPUploaderWithBaseURL(baseURL, cloudName, uploadPreset string) *HTTPUploader {
	u := NewHTTPUploader(cloudName, uploadPreset)
	u.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return u
}

func (u *HTTPUploader) endpoint() string {
	if u.baseURL != "" {
		return u.baseURL + "/v1_1/" + u.cloudName + "/image/upload"
	}
	return "https://api.cloudinary.com/v1_1/" + u.cloudName + "/image/upload"
}

// Upload sends the file and returns the secure URL.
func (u *HTTPUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if u.cloudName == "" || u.uploadPreset == "" {
		return "", fmt.Errorf("cloudinary uploader not configured")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("copy file: %w", err)
	}
	if err := mw.WriteField("upload_preset", u.uploadPreset); err != nil {
		return "", fmt.Errorf("write upload_preset: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint(), &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[cloudinary] upload request FAILED err=%v", err)
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[cloudinary] upload FAILED status=%d body=%s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("upload failed: status=%d", resp.StatusCode)
	}

	var res struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Printf("[cloudinary] decode upload response FAILED err=%v body=%s", err, string(bodyBytes))
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("upload response has empty secure_url")
	}

	log.Printf("[cloudinary] upload OK url=%s", res.SecureURL)
	return res.SecureURL, nil
}
