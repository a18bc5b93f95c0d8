package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskdeck/internal/config"
)

func modelServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.SuggestConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gemini-test",
		Timeout: 2 * time.Second,
	})
	return srv, client
}

func modelResponse(titles []string) string {
	inner, _ := json.Marshal(map[string][]string{"suggestedTitles": titles})
	outer, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": string(inner)}}}},
		},
	})
	return string(outer)
}

func TestSuggestTitles(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	_, client := modelServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, modelResponse([]string{"Ship it", "Wrap the release", "Final countdown"}))
	})

	titles, err := client.SuggestTitles(context.Background(), "prepare the quarterly release notes")
	if err != nil {
		t.Fatalf("SuggestTitles: %v", err)
	}

	if len(titles) != 3 {
		t.Fatalf("titles=%v", titles)
	}
	if titles[0] != "Ship it" {
		t.Errorf("titles[0]=%q", titles[0])
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Errorf("path=%q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header=%q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("request body=%+v", gotBody)
	}
	if prompt := gotBody.Contents[0].Parts[0].Text; !strings.Contains(prompt, "prepare the quarterly release notes") {
		t.Errorf("prompt does not carry the description: %q", prompt)
	}
}

func TestSuggestTitlesTruncatesToFive(t *testing.T) {
	_, client := modelServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse([]string{"a", "b", "c", "d", "e", "f", "g"}))
	})

	titles, err := client.SuggestTitles(context.Background(), "a long enough description")
	if err != nil {
		t.Fatalf("SuggestTitles: %v", err)
	}
	if len(titles) != 5 {
		t.Fatalf("len=%d want 5", len(titles))
	}
}

func TestSuggestTitlesDropsEmptyStrings(t *testing.T) {
	_, client := modelServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse([]string{"one", "  ", "two", "", "three"}))
	})

	titles, err := client.SuggestTitles(context.Background(), "a long enough description")
	if err != nil {
		t.Fatalf("SuggestTitles: %v", err)
	}
	if len(titles) != 3 {
		t.Fatalf("titles=%v", titles)
	}
}

func TestSuggestTitlesTooFew(t *testing.T) {
	_, client := modelServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse([]string{"only one"}))
	})

	if _, err := client.SuggestTitles(context.Background(), "a long enough description"); err == nil {
		t.Fatal("expected error for fewer than 3 titles")
	}
}

func TestSuggestTitlesModelError(t *testing.T) {
	_, client := modelServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	if _, err := client.SuggestTitles(context.Background(), "a long enough description"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestSuggestTitlesMalformedOutput(t *testing.T) {
	_, client := modelServer(t, func(w http.ResponseWriter, r *http.Request) {
		//a candidate whose text is not the expected JSON document
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"sure, here are some titles!"}]}}]}`)
	})

	if _, err := client.SuggestTitles(context.Background(), "a long enough description"); err == nil {
		t.Fatal("expected error for malformed model output")
	}
}

func TestSuggestTitlesNoCandidates(t *testing.T) {
	_, client := modelServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	if _, err := client.SuggestTitles(context.Background(), "a long enough description"); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
