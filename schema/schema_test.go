package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()

	if len(s.Categories) != 5 {
		t.Errorf("expected 5 categories, got %d", len(s.Categories))
	}
	if len(s.Inclusions) != 3 {
		t.Errorf("expected 3 inclusion values, got %d", len(s.Inclusions))
	}
	if len(s.RequiredSections) != 3 {
		t.Errorf("expected 3 required sections, got %d", len(s.RequiredSections))
	}
	if s.MaxDescriptionLength != 150 {
		t.Errorf("expected max description length 150, got %d", s.MaxDescriptionLength)
	}
	if s.MinTags != 2 {
		t.Errorf("expected min tags 2, got %d", s.MinTags)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Schema)
		wantErr bool
	}{
		{
			name:    "valid default schema",
			modify:  func(s *Schema) {},
			wantErr: false,
		},
		{
			name:    "no categories",
			modify:  func(s *Schema) { s.Categories = nil },
			wantErr: true,
		},
		{
			name:    "no inclusions",
			modify:  func(s *Schema) { s.Inclusions = nil },
			wantErr: true,
		},
		{
			name:    "zero description length",
			modify:  func(s *Schema) { s.MaxDescriptionLength = 0 },
			wantErr: true,
		},
		{
			name:    "negative min tags",
			modify:  func(s *Schema) { s.MinTags = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "schema.yaml")

	content := `
categories:
  - internal-docs
min_tags: 1
`
	if err := os.WriteFile(schemaPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFromFile(schemaPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if len(s.Categories) != 1 || s.Categories[0] != "internal-docs" {
		t.Errorf("expected overridden categories, got %v", s.Categories)
	}
	if s.MinTags != 1 {
		t.Errorf("expected min tags 1, got %d", s.MinTags)
	}
	// Untouched values keep their defaults
	if s.MaxDescriptionLength != 150 {
		t.Errorf("expected default max description length, got %d", s.MaxDescriptionLength)
	}
	if len(s.Inclusions) != 3 {
		t.Errorf("expected default inclusions, got %v", s.Inclusions)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing schema file")
	}
}

func TestMerge(t *testing.T) {
	s := Default()
	s.Merge(&Schema{
		Categories: []string{"custom"},
		MinTags:    4,
	})

	if len(s.Categories) != 1 || s.Categories[0] != "custom" {
		t.Errorf("expected merged categories, got %v", s.Categories)
	}
	if s.MinTags != 4 {
		t.Errorf("expected merged min tags 4, got %d", s.MinTags)
	}
	if s.MaxDescriptionLength != 150 {
		t.Errorf("merge should not clear defaults, got %d", s.MaxDescriptionLength)
	}

	s.Merge(nil) // no-op
	if len(s.Categories) != 1 {
		t.Errorf("nil merge should not change schema")
	}
}

func TestFields(t *testing.T) {
	fields := Default().Fields()

	required := map[string]bool{}
	for _, f := range fields {
		if f.Required {
			required[f.Name] = true
		}
	}

	for _, name := range []string{"title", "description", "category", "tags", "inclusion"} {
		if !required[name] {
			t.Errorf("expected %q to be required", name)
		}
	}
	if required["author"] || required["version"] {
		t.Error("optional fields must not be required")
	}
}

func TestVersionPattern(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"1.0", true},
		{"1.2.3", true},
		{"v2.0.1", true},
		{"1.0.0-beta", true},
		{"1.0.0+build.5", true},
		{"latest", false},
		{"1", false},
		{"one.two", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := versionPattern.MatchString(tt.version); got != tt.want {
				t.Errorf("versionPattern.MatchString(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}
