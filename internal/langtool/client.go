// Package langtool talks to a local LanguageTool server for grammar
// correction of assembled OCR text.
package langtool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// DefaultURL is the local LanguageTool endpoint.
const DefaultURL = "http://localhost:8081"

// DefaultLanguage is the language code sent with every check.
const DefaultLanguage = "ru-RU"

// Error is a failed response from the LanguageTool server.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("languagetool: status %d: %s", e.StatusCode, e.Body)
}

// Replacement is one suggested substitution.
type Replacement struct {
	Value string `json:"value"`
}

// Match is one grammar finding with its span and suggested replacements.
type Match struct {
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Replacements []Replacement `json:"replacements"`
}

type checkResponse struct {
	Matches []Match `json:"matches"`
}

// Client checks text against a LanguageTool server.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
	attempts   uint
	retryDelay time.Duration
}

// NewClient creates a client for the server at baseURL. Empty arguments fall
// back to the local defaults.
func NewClient(baseURL, language string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if language == "" {
		language = DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		attempts:   3,
		retryDelay: 250 * time.Millisecond,
	}
}

// Check submits text to /v2/check and returns the grammar matches. Network
// errors and 5xx responses are retried a few times, then surfaced; a 4xx
// response fails immediately as *Error.
func (c *Client) Check(ctx context.Context, text string) ([]Match, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)
	body := form.Encode()

	var matches []Match
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost,
				c.baseURL+"/v2/check", strings.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				apiErr := &Error{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
				if resp.StatusCode >= 500 {
					return apiErr
				}
				return retry.Unrecoverable(apiErr)
			}

			var parsed checkResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
			}
			matches = parsed.Matches
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Health probes the server's /v2/languages endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/languages", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("languagetool unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &Error{StatusCode: resp.StatusCode}
	}
	return nil
}

// Correct returns text with every suggested correction applied. On service
// failure the error is returned so the caller can decide to keep the
// uncorrected text.
func (c *Client) Correct(ctx context.Context, text string) (string, error) {
	matches, err := c.Check(ctx, text)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			c.logger.Warn("grammar check failed", "status", apiErr.StatusCode)
		}
		return "", err
	}
	return ApplyCorrections(text, matches), nil
}

// ApplyCorrections applies the first replacement of every match to text.
// Matches are applied in descending offset order so earlier offsets stay
// valid while later spans are rewritten.
func ApplyCorrections(text string, matches []Match) string {
	if len(matches) == 0 {
		return text
	}

	ordered := make([]Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Offset > ordered[j].Offset
	})

	runes := []rune(text)
	for _, m := range ordered {
		if len(m.Replacements) == 0 {
			continue
		}
		start, end := m.Offset, m.Offset+m.Length
		if start < 0 || end > len(runes) || start > end {
			continue
		}
		replacement := []rune(m.Replacements[0].Value)
		runes = append(runes[:start], append(replacement, runes[end:]...)...)
	}
	return string(runes)
}
