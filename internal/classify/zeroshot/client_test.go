package zeroshot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthon-rodrigues/docprocessor/internal/common"
)

func TestClassifyTopLabel(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/classify", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"invoice document", "tax document"},
			"scores": []float64{0.91, 0.05},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Model: "bart-large-mnli"}, nil)
	got, err := c.Classify(context.Background(), "Invoice No 42, Total: $10")
	require.NoError(t, err)
	assert.Equal(t, "invoice document", got.Label)
	assert.Equal(t, 0.91, got.Confidence)

	params, ok := gotBody["parameters"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, params["candidate_labels"], 4)
}

func TestClassifyTruncatesInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		inputs, _ := body["inputs"].(string)
		assert.Len(t, inputs, 1500)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"general correspondence"},
			"scores": []float64{0.5},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	_, err := c.Classify(context.Background(), strings.Repeat("x", 5000))
	require.NoError(t, err)
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	_, err := c.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrClassification)
}

func TestClassifyMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty labels", `{"labels": [], "scores": []}`},
		{"missing scores", `{"labels": ["invoice document"]}`},
		{"score out of range", `{"labels": ["invoice document"], "scores": [1.5]}`},
		{"not json", `oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL}, nil)
			_, err := c.Classify(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrClassification)
		})
	}
}
