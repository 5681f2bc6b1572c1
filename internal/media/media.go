// Package media rehosts recipe images on the Ghost media library so the
// stored recipe does not depend on the source site keeping its image up.
package media

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"recipeclip/internal/config"
)

// maxImageBytes caps how much image data is downloaded before upload.
const maxImageBytes = 10 << 20

// Client is an interface for the media library.
type Client interface {
	// UploadImage downloads the image at imageURL and uploads it to the
	// media library, returning the hosted public URL.
	UploadImage(ctx context.Context, imageURL string) (string, error)
}

// mediaClient is the concrete implementation of the media library client.
type mediaClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a new media library client.
func NewClient(cfg *config.Config) Client {
	return &mediaClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     cfg,
	}
}

// UploadImage fetches the remote image and pushes it to the Admin API's
// image upload endpoint.
func (c *mediaClient) UploadImage(ctx context.Context, imageURL string) (string, error) {
	data, err := c.download(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	token, err := c.createAdminToken()
	if err != nil {
		return "", fmt.Errorf("failed to create admin token: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", imageFilename(imageURL))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	uploadURL := fmt.Sprintf("%s/ghost/api/v3/admin/images/upload/", c.config.MediaURL)
	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Ghost "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media api error: status %d", resp.StatusCode)
	}

	var uploadResp struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if len(uploadResp.Images) == 0 || uploadResp.Images[0].URL == "" {
		return "", fmt.Errorf("no image URL returned from api")
	}

	return uploadResp.Images[0].URL, nil
}

func (c *mediaClient) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// createAdminToken generates a short-lived JWT for the Admin API.
func (c *mediaClient) createAdminToken() (string, error) {
	keyParts := strings.Split(c.config.MediaAdminKey, ":")
	if len(keyParts) != 2 {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}

	id := keyParts[0]
	secret, err := hex.DecodeString(keyParts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(5 * time.Minute).Unix(),
		"aud": "/v3/admin/",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}

func imageFilename(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "recipe-image"
	}
	return path.Base(u.Path)
}
