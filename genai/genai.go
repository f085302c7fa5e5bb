package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrMissingAPIKey is a configuration error: no generation is attempted and
// no network call is made.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")

const (
	defaultModel    = "gemini-2.5-flash-lite-preview-09-2025"
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	maxOutputTokens = 8192
	requestTimeout  = 90 * time.Second
)

// Client is a minimal Gemini generateContent client. One request, one
// response, no retry; callers decide whether to ask the user to try again.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	http     *http.Client
}

func NewClient() *Client {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		model:    model,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWith wires explicit values, mainly for tests.
func NewClientWith(apiKey, model, endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{apiKey: apiKey, model: model, endpoint: endpoint, http: httpClient}
}

// InlineData is a base64 file part for multimodal requests.
type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
	MaxOutputTokens  int    `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText sends a text-only prompt and returns the raw response text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []part{{Text: prompt}})
}

// GenerateWithFile sends a prompt plus an inline file (itinerary image/PDF).
func (c *Client) GenerateWithFile(ctx context.Context, prompt string, file InlineData) (string, error) {
	return c.generate(ctx, []part{{Text: prompt}, {InlineData: &file}})
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			MaxOutputTokens:  maxOutputTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", parseAPIError(resp)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}

	var sb strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("no response text generated from AI model")
	}
	return text, nil
}

func parseAPIError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}
	var payload generateResponse
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != nil && payload.Error.Message != "" {
		return fmt.Errorf("gemini api error: %s", payload.Error.Message)
	}
	return fmt.Errorf("gemini api error: %s", resp.Status)
}
