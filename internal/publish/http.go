package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error codes carried in ErrorResponse bodies.
const (
	ErrCodeFileExists     = "FILE_EXISTS"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// WireRequest is the JSON body of POST /recipes/publish.
type WireRequest struct {
	DirectoryName string   `json:"directoryName"`
	FileName      string   `json:"fileName"`
	Overwrite     bool     `json:"overwrite"`
	Commands      []string `json:"commands"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPPublisher publishes to a remote recipr server.
type HTTPPublisher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPublisher returns a publisher posting to baseURL. A nil client uses
// an http.Client with a 30 second timeout.
func NewHTTPPublisher(baseURL string, client *http.Client) *HTTPPublisher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPPublisher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Publish posts the request and maps a FILE_EXISTS code or a 409 status to
// ErrFileExists.
// Any other failure is returned with the server's message.
func (p *HTTPPublisher) Publish(ctx context.Context, req Request, lines []string) (Result, error) {
	body, err := json.Marshal(WireRequest{
		DirectoryName: req.DirectoryName,
		FileName:      req.FileName,
		Overwrite:     req.Overwrite,
		Commands:      lines,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encode publish request: %w", err)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/recipes/publish", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	hreq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(hreq)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read publish response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var res Result
		if err := json.Unmarshal(b, &res); err != nil {
			return Result{}, fmt.Errorf("decode publish response: %w", err)
		}
		return res, nil
	}

	var er ErrorResponse
	decodeErr := json.Unmarshal(b, &er)
	if er.Error.Code == ErrCodeFileExists || resp.StatusCode == http.StatusConflict {
		if er.Error.Message == "" {
			return Result{}, ErrFileExists
		}
		return Result{}, fmt.Errorf("%s: %w", er.Error.Message, ErrFileExists)
	}
	if decodeErr != nil || er.Error.Message == "" {
		return Result{}, fmt.Errorf("publish failed: %s", resp.Status)
	}
	return Result{}, errors.New(er.Error.Message)
}
