// Package schema provides the validation schema for steering documents.
//
// The schema is an immutable configuration value constructed once at
// startup and passed explicitly to the validator. Defaults mirror the
// steering documentation standards; a YAML override file can adjust
// them for repositories with different conventions.
package schema

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// FieldKind discriminates the expected shape of a frontmatter field.
type FieldKind string

const (
	// KindString is a scalar string field.
	KindString FieldKind = "string"

	// KindStringList is a sequence of strings.
	KindStringList FieldKind = "string-list"

	// KindEnum is a string field restricted to a closed value set.
	KindEnum FieldKind = "enum"
)

// FieldSpec describes a single frontmatter field.
type FieldSpec struct {
	// Name is the frontmatter key.
	Name string

	// Kind is the expected field shape.
	Kind FieldKind

	// Required indicates the field must be present.
	Required bool

	// Values is the closed value set for enum fields.
	Values []string

	// NonEmpty requires a non-empty string value.
	NonEmpty bool

	// MaxLength caps the string length when > 0 (exclusive bound).
	MaxLength int

	// MinItems is the minimum list length when > 0.
	MinItems int

	// Pattern constrains the string format when non-nil.
	Pattern *regexp.Regexp

	// CheckPaths marks a string-list whose entries must resolve to
	// existing files.
	CheckPaths bool
}

// versionPattern accepts semantic-version-like strings (1.0, 1.2.3,
// v2.0.1-beta).
var versionPattern = regexp.MustCompile(`^v?\d+\.\d+(\.\d+)?([-+][0-9A-Za-z.-]+)?$`)

// Schema is the full validation schema for a steering document corpus.
type Schema struct {
	// Categories is the closed set of valid category values.
	Categories []string `yaml:"categories"`

	// Inclusions is the closed set of valid inclusion values.
	Inclusions []string `yaml:"inclusions"`

	// RequiredSections lists body headings that must appear.
	RequiredSections []string `yaml:"required_sections"`

	// MaxDescriptionLength is the exclusive upper bound on description
	// length.
	MaxDescriptionLength int `yaml:"max_description_length"`

	// MinTags is the minimum number of tag entries.
	MinTags int `yaml:"min_tags"`
}

// Default returns the schema matching the steering documentation
// standards.
func Default() *Schema {
	return &Schema{
		Categories: []string{
			"code-quality",
			"testing",
			"security",
			"frameworks",
			"workflows",
		},
		Inclusions: []string{
			"always",
			"fileMatch",
			"manual",
		},
		RequiredSections: []string{
			"Core Principle",
			"How Kiro Will Write",
			"What This Prevents",
		},
		MaxDescriptionLength: 150,
		MinTags:              2,
	}
}

// Validate checks that the schema is usable.
func (s *Schema) Validate() error {
	if len(s.Categories) == 0 {
		return fmt.Errorf("categories is required")
	}
	if len(s.Inclusions) == 0 {
		return fmt.Errorf("inclusions is required")
	}
	if s.MaxDescriptionLength <= 0 {
		return fmt.Errorf("max_description_length must be positive")
	}
	if s.MinTags < 0 {
		return fmt.Errorf("min_tags must not be negative")
	}
	return nil
}

// LoadFromFile loads a schema from a YAML file, layered over defaults.
func LoadFromFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}

	return s, nil
}

// Merge merges another schema into this one (other takes precedence
// for non-zero values).
func (s *Schema) Merge(other *Schema) {
	if other == nil {
		return
	}
	if len(other.Categories) > 0 {
		s.Categories = other.Categories
	}
	if len(other.Inclusions) > 0 {
		s.Inclusions = other.Inclusions
	}
	if len(other.RequiredSections) > 0 {
		s.RequiredSections = other.RequiredSections
	}
	if other.MaxDescriptionLength != 0 {
		s.MaxDescriptionLength = other.MaxDescriptionLength
	}
	if other.MinTags != 0 {
		s.MinTags = other.MinTags
	}
}

// Fields returns the frontmatter field specs derived from the schema.
// Each field carries its own shape tag and constraints so the validator
// can report type mismatches as findings instead of coercing values.
func (s *Schema) Fields() []FieldSpec {
	return []FieldSpec{
		{Name: "title", Kind: KindString, Required: true, NonEmpty: true},
		{Name: "description", Kind: KindString, Required: true, MaxLength: s.MaxDescriptionLength},
		{Name: "category", Kind: KindEnum, Required: true, Values: s.Categories},
		{Name: "tags", Kind: KindStringList, Required: true, MinItems: s.MinTags},
		{Name: "inclusion", Kind: KindEnum, Required: true, Values: s.Inclusions},
		{Name: "author", Kind: KindString},
		{Name: "version", Kind: KindString, Pattern: versionPattern},
		{Name: "kiro_version", Kind: KindString},
		{Name: "dependencies", Kind: KindStringList},
		{Name: "file_references", Kind: KindStringList, CheckPaths: true},
	}
}
