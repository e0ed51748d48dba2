// Package document provides the steering document model and
// frontmatter parsing.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse failure modes for the metadata block. The validator reports all
// of them as a single metadata-syntax finding; the distinction is kept
// for error messages.
var (
	// ErrMissingFrontmatter indicates the file does not start with a
	// frontmatter delimiter.
	ErrMissingFrontmatter = errors.New("file must start with YAML frontmatter")

	// ErrUnterminatedFrontmatter indicates the opening delimiter was
	// never closed.
	ErrUnterminatedFrontmatter = errors.New("frontmatter not closed with ---")
)

// Document represents a parsed steering document.
type Document struct {
	// Path is the path the document was read from.
	Path string `json:"path"`

	// Filename is the base filename.
	Filename string `json:"filename"`

	// Content is the raw document content.
	Content string `json:"content"`

	// Frontmatter contains parsed YAML frontmatter if present.
	Frontmatter map[string]any `json:"frontmatter,omitempty"`

	// Body is the content without frontmatter.
	Body string `json:"body"`
}

// HasFrontmatter returns true if the document has parsed frontmatter.
func (d *Document) HasFrontmatter() bool {
	return d.Frontmatter != nil
}

// Parse parses a steering document, extracting frontmatter and body.
// On a metadata parse failure the returned document is still populated
// (body falls back to the full content) alongside the error, so callers
// can record a finding and keep going.
func Parse(path string, content []byte) (*Document, error) {
	doc := &Document{
		Path:     path,
		Filename: filepath.Base(path),
		Content:  string(content),
		Body:     string(content),
	}

	str := string(content)
	if !strings.HasPrefix(str, "---\n") && !strings.HasPrefix(str, "---\r\n") {
		return doc, ErrMissingFrontmatter
	}

	frontmatter, body, err := extractFrontmatter(str)
	if err != nil {
		return doc, err
	}

	doc.Frontmatter = frontmatter
	doc.Body = body
	return doc, nil
}

// extractFrontmatter parses YAML frontmatter from document content.
// Returns the parsed frontmatter map, the remaining body, and any error.
func extractFrontmatter(content string) (map[string]any, string, error) {
	const delimiter = "---"

	// Skip the opening delimiter
	start := len(delimiter)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	// An immediately following delimiter means an empty block.
	rest := content[start:]
	if strings.HasPrefix(rest, delimiter) &&
		(len(rest) == len(delimiter) || rest[len(delimiter)] == '\n' || rest[len(delimiter)] == '\r') {
		bodyStart := start + len(delimiter)
		for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
			bodyStart++
		}
		return map[string]any{}, content[bodyStart:], nil
	}

	// Find the closing delimiter
	closeIdx := strings.Index(content[start:], "\n"+delimiter)
	if closeIdx == -1 {
		closeIdx = strings.Index(content[start:], "\r\n"+delimiter)
	}
	if closeIdx == -1 {
		return nil, content, ErrUnterminatedFrontmatter
	}

	yamlContent := content[start : start+closeIdx]

	// Find where the body starts (after closing delimiter and newline)
	bodyStart := start + closeIdx + 1 + len(delimiter)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}

	body := ""
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &frontmatter); err != nil {
		return nil, body, fmt.Errorf("parse YAML frontmatter: %w", err)
	}
	if frontmatter == nil {
		frontmatter = map[string]any{}
	}

	return frontmatter, body, nil
}

// ContentHash computes a SHA256 hash of the content.
// Used by the watcher to skip re-validation of unchanged files.
func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
