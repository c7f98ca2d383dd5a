// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "report.png" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(extractResponse{Text: "Hemoglobin 14.5 g/dL"})
	}))
	defer server.Close()

	t.Setenv("OCR_URL", server.URL)

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	text, err := client.ExtractText(context.Background(), "report.png", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "Hemoglobin 14.5 g/dL" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(extractResponse{Error: "unreadable scan"})
	}))
	defer server.Close()

	t.Setenv("OCR_URL", server.URL)

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.ExtractText(context.Background(), "report.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected error from OCR response")
	}
}

func TestNewClientUnconfigured(t *testing.T) {
	t.Setenv("OCR_URL", "")

	if _, err := NewClient(); err == nil {
		t.Fatal("expected configuration error")
	}
}
