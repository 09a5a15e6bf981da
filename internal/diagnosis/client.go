package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// APIError carries the detail message from a non-2xx diagnosis response so
// it can be surfaced to the user as-is.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("diagnosis service returned %d", e.StatusCode)
}

// Client posts uploads to the remote diagnosis endpoint. The model run can
// take minutes, so the timeout is generous. There is no retry and no
// idempotency key; a duplicate submission produces a duplicate remote run.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewClient(baseURL string, logger internal.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
		logger:     logger,
	}
}

// Diagnose sends user_id, input_type and the raw file as a multipart body.
// The 2xx body is discarded; callers re-read the profile store instead.
func (c *Client) Diagnose(ctx context.Context, userID string, inputType internal.InputType, filename string, file io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("user_id", userID); err != nil {
		return err
	}
	if err := writer.WriteField("input_type", string(inputType)); err != nil {
		return err
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/diagnose", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Errorf("failed to call diagnosis service: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		c.logger.Errorf("diagnosis service returned %d: %s", resp.StatusCode, apiErr.Detail)
		return apiErr
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
