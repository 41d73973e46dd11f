package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"forensic/internal/core/config"
	"forensic/internal/core/errors"
	"forensic/internal/shared/util"
)

// jsonBlock grabs the first-to-last brace span of the model's reply; models
// routinely wrap the requested JSON in prose or code fences.
var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

const systemPromptFmt = "Analyze this %s code for AI patterns. Return ONLY JSON with keys: " +
	"'overall_ai_probability', 'suspected_source_site', 'reasoning', 'text_summary'."

// GeminiClient judges code via the generativelanguage generateContent API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	limiter *util.Limiter
}

// NewGeminiClient builds a client from the judge config and an explicitly
// supplied API key. The key is required here so that missing credentials
// fail at startup, not on the first request.
func NewGeminiClient(cfg config.Judge, apiKey string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New(errors.CodeValidationError,
			fmt.Sprintf("judge API key missing (set %s)", cfg.APIKeyEnv))
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: util.NewLimiter(cfg.RequestsPerMinute/60.0, cfg.Burst),
	}, nil
}

func (c *GeminiClient) ModelName() string {
	return c.model
}

type generateRequest struct {
	SystemInstruction content   `json:"system_instruction"`
	Contents          []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// rawVerdict tolerates the probability arriving as a number or a numeric
// string before it is narrowed to an int.
type rawVerdict struct {
	Probability     json.Number `json:"overall_ai_probability"`
	SuspectedSource string      `json:"suspected_source_site"`
	Reasoning       string      `json:"reasoning"`
	Summary         string      `json:"text_summary"`
}

// Judge sends the code to the model and parses its structured verdict.
// Failures carry one of three codes: QUOTA_EXCEEDED, TRANSPORT_FAILURE or
// MALFORMED_RESPONSE.
func (c *GeminiClient) Judge(ctx context.Context, source string, languageTag string) (*Verdict, error) {
	if err := c.limiter.Wait(ctx, 1); err != nil {
		return nil, errors.Wrap(err, errors.CodeTransportFailure, "rate limit wait aborted")
	}

	reqBody := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: fmt.Sprintf(systemPromptFmt, languageTag)}}},
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: fmt.Sprintf("Code:\n```%s\n%s\n```", languageTag, source)}},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to marshal request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeTransportFailure, "judgment request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeTransportFailure, "failed to read response")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.New(errors.CodeQuotaExceeded, "judgment quota exhausted, retry later")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeTransportFailure,
			fmt.Sprintf("API returned status %d: %s", resp.StatusCode, preview(body)))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, errors.Wrap(err, errors.CodeMalformedResponse,
			fmt.Sprintf("failed to parse response (body: %s)", preview(body)))
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New(errors.CodeMalformedResponse, "response contains no candidates")
	}

	var text strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	return parseVerdict(text.String())
}

func parseVerdict(text string) (*Verdict, error) {
	match := jsonBlock.FindString(text)
	if match == "" {
		return nil, errors.New(errors.CodeMalformedResponse, "no JSON object in model reply")
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, errors.Wrap(err, errors.CodeMalformedResponse, "model reply is not valid verdict JSON")
	}

	probability := 0
	if raw.Probability != "" {
		f, err := raw.Probability.Float64()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeMalformedResponse, "probability is not numeric")
		}
		probability = int(f)
	}

	return &Verdict{
		Probability:     probability,
		SuspectedSource: raw.SuspectedSource,
		Reasoning:       raw.Reasoning,
		Summary:         raw.Summary,
	}, nil
}

func preview(body []byte) string {
	const limit = 200
	s := string(body)
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
