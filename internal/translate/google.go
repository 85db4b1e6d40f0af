package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medportal_backend/platform/config"
)

// GoogleProvider calls the Google Cloud Translation v2 REST API.
type GoogleProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoogleProvider creates a translation provider from config.
func NewGoogleProvider(cfg config.TranslateConfig) *GoogleProvider {
	return &GoogleProvider{
		baseURL: cfg.GetTranslateBaseURL(),
		apiKey:  cfg.GetTranslateAPIKey(),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type googleTranslateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate sends a single text to the provider. The pipeline batches all
// segments into this one call.
func (g *GoogleProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	payload := googleTranslateRequest{
		Q:      []string{text},
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate failed: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed googleTranslateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("translate response decode: %w", err)
	}
	if len(parsed.Data.Translations) == 0 {
		return "", fmt.Errorf("translate response contained no translations")
	}

	return parsed.Data.Translations[0].TranslatedText, nil
}

var _ Provider = (*GoogleProvider)(nil)
