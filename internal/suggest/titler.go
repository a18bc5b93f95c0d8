// Package suggest calls a hosted generative model to propose task titles
// from a free-text description.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taskdeck/internal/config"
)

// MinDescriptionLen is the shortest description worth sending to the model.
// Callers enforce it before invoking the client.
const MinDescriptionLen = 10

const (
	minTitles = 3
	maxTitles = 5
)

const promptTemplate = `You are a creative assistant that specializes in generating concise and engaging task titles.
Based on the following task description, suggest 3 to 5 creative and concise titles.
The titles should be short, impactful, and clearly represent the core of the task.

Task Description:
%s

Please provide your suggestions in a JSON object with a single key 'suggestedTitles' which contains an array of strings.`

// Client talks to the Gemini generateContent endpoint. One request per
// suggestion call: no retry, no caching, no rate limiting.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(cfg config.SuggestConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type titlerOutput struct {
	SuggestedTitles []string `json:"suggestedTitles"`
}

// SuggestTitles asks the model for 3 to 5 candidate titles. Anything that
// goes wrong - transport failure, non-200 status, undecodable output, too
// few usable titles - is a single error; the caller shows a generic failure
// and keeps its current suggestions.
func (c *Client) SuggestTitles(ctx context.Context, description string) ([]string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: fmt.Sprintf(promptTemplate, description)}}},
		},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode suggestion request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call suggestion model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("suggestion model status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read suggestion response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("parse suggestion response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("suggestion response has no candidates")
	}

	//the model returns the titles as a JSON document inside the text part
	var out titlerOutput
	text := genResp.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("parse suggested titles: %w", err)
	}

	titles := make([]string, 0, maxTitles)
	for _, t := range out.SuggestedTitles {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		titles = append(titles, t)
		if len(titles) == maxTitles {
			break
		}
	}
	if len(titles) < minTitles {
		return nil, fmt.Errorf("suggestion model returned %d titles, want at least %d", len(titles), minTitles)
	}

	return titles, nil
}
