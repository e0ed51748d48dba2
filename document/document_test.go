package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoFrontmatter(t *testing.T) {
	content := `# Hello World

This is a test document.

## Section 1

Some content here.
`

	doc, err := Parse("test.md", []byte(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingFrontmatter))

	// Document is still usable for reporting
	require.NotNil(t, doc)
	assert.Equal(t, "test.md", doc.Filename)
	assert.Equal(t, content, doc.Body)
	assert.False(t, doc.HasFrontmatter())
}

func TestParse_WithFrontmatter(t *testing.T) {
	content := `---
title: Error Handling
description: Go error handling guidelines
category: code-quality
tags:
  - errors
  - golang
inclusion: always
---
# Error Handling

All Go code must follow these error handling guidelines.
`

	doc, err := Parse("error-handling.md", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "error-handling.md", doc.Filename)
	assert.True(t, doc.HasFrontmatter())

	assert.Equal(t, "Error Handling", doc.Frontmatter["title"])
	assert.Equal(t, "code-quality", doc.Frontmatter["category"])
	assert.Equal(t, "always", doc.Frontmatter["inclusion"])

	tags, ok := doc.Frontmatter["tags"].([]any)
	require.True(t, ok)
	assert.Len(t, tags, 2)
	assert.Equal(t, "errors", tags[0])

	// Body doesn't include frontmatter
	assert.True(t, len(doc.Body) < len(doc.Content))
	assert.Contains(t, doc.Body, "# Error Handling")
	assert.NotContains(t, doc.Body, "inclusion:")
}

func TestParse_UnterminatedFrontmatter(t *testing.T) {
	content := `---
title: Test

# No closing delimiter

Content here.
`

	doc, err := Parse("test.md", []byte(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnterminatedFrontmatter))
	assert.False(t, doc.HasFrontmatter())
}

func TestParse_MalformedYAML(t *testing.T) {
	content := `---
tags: [unclosed array
---
# Test

Content.
`

	doc, err := Parse("test.md", []byte(content))
	require.Error(t, err)
	assert.False(t, doc.HasFrontmatter())
}

func TestParse_EmptyFrontmatter(t *testing.T) {
	content := "---\n---\n# Title\n"

	doc, err := Parse("test.md", []byte(content))
	require.NoError(t, err)

	// An empty block parses; missing fields are the validator's job.
	assert.True(t, doc.HasFrontmatter())
	assert.Empty(t, doc.Frontmatter)
	assert.Contains(t, doc.Body, "# Title")
}

func TestParse_WindowsLineEndings(t *testing.T) {
	content := "---\r\ntitle: Test\r\n---\r\n# Title\r\n"

	doc, err := Parse("test.md", []byte(content))
	require.NoError(t, err)

	assert.True(t, doc.HasFrontmatter())
	assert.Equal(t, "Test", doc.Frontmatter["title"])
}

func TestParse_ScalarFrontmatter(t *testing.T) {
	// A frontmatter block that isn't a mapping is a syntax failure.
	content := "---\njust a string\n---\n# Title\n"

	doc, err := Parse("test.md", []byte(content))
	require.Error(t, err)
	assert.False(t, doc.HasFrontmatter())
}

func TestContentHash(t *testing.T) {
	content := []byte("test content")
	hash := ContentHash(content)

	// SHA256 produces 64 hex chars
	assert.Len(t, hash, 64)

	// Same content produces same hash
	hash2 := ContentHash(content)
	assert.Equal(t, hash, hash2)

	// Different content produces different hash
	hash3 := ContentHash([]byte("different content"))
	assert.NotEqual(t, hash, hash3)
}
