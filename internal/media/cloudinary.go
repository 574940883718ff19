// Package media uploads images to Cloudinary, optionally stripping the
// background through remove.bg first.
package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("media uploads are not configured")

// UploadResult is the subset of Cloudinary's response the app cares about.
type UploadResult struct {
	PublicID  string `json:"publicId"`
	SecureURL string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
}

type cloudinaryResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type CloudinaryClient struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   "https://api.cloudinary.com/v1_1",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewCloudinaryClientWithBaseURL is used by tests.
func NewCloudinaryClientWithBaseURL(cloudName, apiKey, apiSecret, baseURL string) *CloudinaryClient {
	c := NewCloudinaryClient(cloudName, apiKey, apiSecret)
	c.baseURL = baseURL
	return c
}

func (c *CloudinaryClient) Configured() bool {
	return c.cloudName != "" && c.apiKey != "" && c.apiSecret != ""
}

// Upload sends the image to Cloudinary's signed upload endpoint and returns
// the hosted URL.
func (c *CloudinaryClient) Upload(ctx context.Context, image []byte, filename, folder string) (*UploadResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{"timestamp": timestamp}
	if folder != "" {
		params["folder"] = folder
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range params {
		writer.WriteField(k, v)
	}
	writer.WriteField("api_key", c.apiKey)
	writer.WriteField("signature", c.sign(params))

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary unreachable: %w", err)
	}
	defer resp.Body.Close()

	var result cloudinaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode cloudinary response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if result.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("cloudinary returned status %d", resp.StatusCode)
	}

	return &UploadResult{
		PublicID:  result.PublicID,
		SecureURL: result.SecureURL,
		Width:     result.Width,
		Height:    result.Height,
		Format:    result.Format,
		Bytes:     result.Bytes,
	}, nil
}

// sign builds Cloudinary's request signature: sorted key=value pairs joined
// with &, followed by the API secret, hashed with SHA-1.
func (c *CloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
