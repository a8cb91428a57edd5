package tfi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 18_6_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148"

const defaultTimeout = 10 * time.Second

// StatusError is returned for non 2xx responses
type StatusError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Status)
}

// UnsuccessfulResponseError is returned when the API answers but flags the request as failed
type UnsuccessfulResponseError struct {
	Endpoint string
}

func (e *UnsuccessfulResponseError) Error() string {
	return fmt.Sprintf("%s: API returned unsuccessful status", e.Endpoint)
}

type statusResponse interface {
	succeeded() bool
}

func (s *Source) post(ctx context.Context, endpoint string, payload any, response statusResponse) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(s.BaseURL, "/"), endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", s.APIKey)
	req.Header.Set("User-Agent", userAgent)

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)

		return &StatusError{
			URL:        req.URL.Redacted(),
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	if !response.succeeded() {
		return &UnsuccessfulResponseError{Endpoint: endpoint}
	}

	return nil
}
