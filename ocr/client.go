/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package ocr talks to the external OCR sidecar that converts
// uploaded report images and PDFs into plain text.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hemolens/hemolens/logging"
)

var logger = logging.Logger(logging.SourceOCR)

// ErrNotConfigured is returned when OCR_URL is unset. Callers can
// still accept pasted text in that case.
var ErrNotConfigured = errors.New("OCR service not configured: OCR_URL must be set")

// Config holds the OCR sidecar configuration.
type Config struct {
	URL string
}

// GetConfig loads OCR configuration from environment variables.
func GetConfig() (*Config, error) {
	url := os.Getenv("OCR_URL")
	if url == "" {
		return nil, ErrNotConfigured
	}
	return &Config{URL: url}, nil
}

type extractResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Client posts report files to the OCR sidecar.
type Client struct {
	config *Config
	http   *http.Client
}

// NewClient builds a client from the environment.
func NewClient() (*Client, error) {
	config, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		http: &http.Client{
			Timeout: 120 * time.Second, // large scans take a while
		},
	}, nil
}

// ExtractText uploads a report file and returns the recognized text.
func (c *Client) ExtractText(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	endpoint := strings.TrimSuffix(c.config.URL, "/") + "/extract"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	logger.Debug("sending file to OCR service", "filename", filename)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OCR service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var extracted extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&extracted); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if extracted.Error != "" {
		return "", fmt.Errorf("OCR error: %s", extracted.Error)
	}

	return extracted.Text, nil
}
