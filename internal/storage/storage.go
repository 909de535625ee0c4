package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store writes the fetched page to disk as classification evidence so a
// verdict can be reviewed after the domain changes hands or content.
// Layout: {baseDir}/pages/{sanitized_host}/{sha1}.txt
func Store(baseDir string, u *url.URL, headers http.Header, body []byte, finalURL string) (string, error) {
	path := buildPath(baseDir, u)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create evidence directory: %w", err)
	}

	if err := os.WriteFile(path, formatEvidence(headers, body, finalURL), 0644); err != nil {
		return "", fmt.Errorf("failed to write evidence file: %w", err)
	}

	return path, nil
}

func buildPath(baseDir string, u *url.URL) string {
	sum := sha1.Sum([]byte("GET:" + u.String()))
	filename := hex.EncodeToString(sum[:]) + ".txt"
	return filepath.Join(baseDir, "pages", sanitizeHost(u.Host), filename)
}

// sanitizeHost makes a hostname safe for use as a directory name.
func sanitizeHost(host string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return '_'
	}, host)
}

func formatEvidence(headers http.Header, body []byte, finalURL string) []byte {
	var b strings.Builder

	b.WriteString("=== FINAL URL ===\n")
	b.WriteString(finalURL)
	b.WriteString("\n\n=== RESPONSE HEADERS ===\n")

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n=== BODY ===\n")
	b.Write(body)

	return []byte(b.String())
}
