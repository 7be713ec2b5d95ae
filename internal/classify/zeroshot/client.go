package zeroshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/classify"
	"github.com/anthon-rodrigues/docprocessor/internal/common"
	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// Classify implements classify.Classifier against a zero-shot inference
// endpoint. The endpoint ranks the fixed candidate label set; we take the
// top label and score. Every failure mode maps to ErrClassification,
// which aborts the classify/all paths.
func (c *Client) Classify(ctx context.Context, text string) (entity.Classification, error) {
	rid := uuid.New().String()
	start := time.Now()

	input := classify.Truncate(text)
	body := map[string]any{
		"model":  c.cfg.Model,
		"inputs": input,
		"parameters": map[string]any{
			"candidate_labels": constants.DocumentTypeStrings(),
		},
	}

	c.log.Info("classify.request",
		"req_id", rid,
		"model", c.cfg.Model,
		"input_bytes", len(input),
	)

	raw, err := c.post(ctx, strings.TrimRight(c.cfg.BaseURL, "/")+"/classify", body)
	if err != nil {
		c.log.Error("classify.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.Classification{}, fmt.Errorf("%w: %v", common.ErrClassification, err)
	}

	if err := validateResponse(raw); err != nil {
		c.log.Error("classify.schema_validation_failed",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.Classification{}, fmt.Errorf("%w: %v", common.ErrClassification, err)
	}

	var out struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return entity.Classification{}, fmt.Errorf("%w: decode response: %v", common.ErrClassification, err)
	}

	result := entity.Classification{
		Label:      out.Labels[0],
		Confidence: out.Scores[0],
	}
	c.log.Info("classify.ok",
		"req_id", rid,
		"label", result.Label,
		"confidence", result.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("classifier response body close error", "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classifier status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
