package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
)

// HTTPClient talks to a translation service over its JSON API
// (an IndicTrans-style deployment or any compatible endpoint).
type HTTPClient struct {
	baseURL    string
	target     string
	httpClient *http.Client
}

// NewHTTPClient creates a translation client targeting the working language
func NewHTTPClient(cfg model.TranslateConfig, httpCfg model.HTTPConfig, workingLanguage string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		target:  workingLanguage,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
	}
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"` // Hint; service detection wins
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText   string `json:"translated_text"`
	DetectedLanguage string `json:"detected_language"`
	Error            string `json:"error,omitempty"`
}

// Translate sends text to the service and returns the working-language text
func (c *HTTPClient) Translate(ctx context.Context, text, sourceLang string) (*Result, error) {
	if c.baseURL == "" {
		return nil, fault.Permanentf("translation service not configured")
	}

	payload, err := json.Marshal(translateRequest{
		Text:   text,
		Source: sourceLang,
		Target: c.target,
	})
	if err != nil {
		return nil, fault.Permanentf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return nil, fault.Permanentf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Transientf("translate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.Transientf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusBadRequest:
		// The service rejects languages outside its model; not worth retrying
		return nil, fault.Permanent(fmt.Errorf("%w: %s", ErrUnsupportedLanguage, errorDetail(body)))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fault.Transientf("translation rate limited: HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fault.Transientf("translation server error: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fault.Permanentf("translate: unexpected status %d", resp.StatusCode)
	}

	var tr translateResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fault.Permanentf("decode response: %w", err)
	}
	if tr.TranslatedText == "" {
		return nil, fault.Permanentf("empty translation for %q", truncate(text, 50))
	}

	detected := tr.DetectedLanguage
	if detected == "" {
		detected = sourceLang
	}

	return &Result{Text: tr.TranslatedText, DetectedLanguage: detected}, nil
}

func errorDetail(body []byte) string {
	var tr translateResponse
	if err := json.Unmarshal(body, &tr); err == nil && tr.Error != "" {
		return tr.Error
	}
	return strings.TrimSpace(string(body))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
