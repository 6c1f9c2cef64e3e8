// Package disk uploads cache exports to a Yandex.Disk-compatible remote.
package disk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the Yandex.Disk resources API.
const DefaultBaseURL = "https://cloud-api.yandex.net/v1/disk/resources"

// UploaderConfig holds configuration for the uploader.
type UploaderConfig struct {
	Token      string
	BaseURL    string       // Optional (tests)
	HTTPClient *http.Client // Optional (tests)
}

// Uploader pushes local files to remote disk storage. The upload is the
// two-step disk protocol: request an upload href, then PUT the file body to
// it.
type Uploader struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewUploader creates an uploader. The token is required.
func NewUploader(cfg UploaderConfig, logger *slog.Logger) (*Uploader, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("disk token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		token:      cfg.Token,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		logger:     logger,
	}, nil
}

// Upload sends the file at localPath to remotePath, overwriting any previous
// version.
func (u *Uploader) Upload(ctx context.Context, localPath, remotePath string) error {
	href, err := u.uploadHref(ctx, remotePath)
	if err != nil {
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, href, f)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload rejected: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	u.logger.Info("file uploaded", "remote", remotePath)
	return nil
}

// uploadHref asks the API where to PUT the file.
func (u *Uploader) uploadHref(ctx context.Context, remotePath string) (string, error) {
	q := url.Values{}
	q.Set("path", remotePath)
	q.Set("overwrite", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		u.baseURL+"/upload?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create href request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+u.token)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request upload href: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("upload href rejected: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Href string `json:"href"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode upload href: %w", err)
	}
	if parsed.Href == "" {
		return "", fmt.Errorf("upload href response is empty")
	}
	return parsed.Href, nil
}
