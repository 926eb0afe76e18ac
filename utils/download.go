package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxDownloadSize caps the body read by Download.
const maxDownloadSize = 4 << 20

// Download retrieves the resource found at uri and returns its body.
// A nil client falls back to http.DefaultClient.
func Download(ctx context.Context, client *http.Client, uri string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request for %s: %w", uri, err)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download file from URI: %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download file from URI: %s, status %v", uri, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	if len(data) > maxDownloadSize {
		return nil, fmt.Errorf("the downloaded file exceeds %d bytes", maxDownloadSize)
	}
	return data, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// DetectContentType detects the content type of data by sniffing its first
// bytes. Svg documents, which http.DetectContentType reports as plain text
// or xml, are recognized by their root element.
func DetectContentType(data []byte) string {
	// Only the first 512 bytes are used to sniff the content type.
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.Contains(strings.ToLower(string(head)), "<svg") {
		return "image/svg+xml"
	}
	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(head)
}
