// Package validator checks steering documents against a schema and
// produces findings. Each file is validated independently; one file's
// problems never abort processing of the rest.
package validator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mikeartee/kiro-steering-docs/document"
	"github.com/mikeartee/kiro-steering-docs/schema"
)

// Options configures a Validator.
type Options struct {
	// RepoRoot overrides repository root discovery for file_references
	// resolution. When empty the root is found by walking up from the
	// document until a .git directory appears.
	RepoRoot string

	// Pattern is an optional doublestar glob applied to paths relative
	// to the validated directory (e.g. "security/**/*.md").
	Pattern string

	// ExcludeDirs lists directory names skipped during enumeration.
	ExcludeDirs []string

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Validator validates steering documents against a fixed schema.
// The schema is supplied at construction and never mutated.
type Validator struct {
	schema   *schema.Schema
	repoRoot string
	pattern  string
	excludes map[string]bool
	logger   *slog.Logger
}

// New creates a Validator for the given schema.
func New(s *schema.Schema, opts Options) *Validator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	excludes := make(map[string]bool)
	if len(opts.ExcludeDirs) == 0 {
		excludes[".git"] = true
		excludes["node_modules"] = true
		excludes["vendor"] = true
	} else {
		for _, dir := range opts.ExcludeDirs {
			excludes[dir] = true
		}
	}

	return &Validator{
		schema:   s,
		repoRoot: opts.RepoRoot,
		pattern:  opts.Pattern,
		excludes: excludes,
		logger:   logger,
	}
}

// ValidatePath validates a file or a directory tree.
// A path that does not exist or cannot be read is a fatal invocation
// error, not a finding.
func (v *Validator) ValidatePath(path string) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}

	if info.IsDir() {
		return v.ValidateDirectory(path)
	}

	result, err := v.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	return []FileResult{result}, nil
}

// ValidateDirectory validates all Markdown files under dir.
func (v *Validator) ValidateDirectory(dir string) ([]FileResult, error) {
	files, err := v.enumerate(dir)
	if err != nil {
		return nil, err
	}

	v.logger.Debug("Validating directory", "dir", dir, "files", len(files))

	results := make([]FileResult, 0, len(files))
	for _, file := range files {
		result, err := v.ValidateFile(file)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// ValidateFile validates a single steering document on disk.
// Read failures are fatal errors; everything else becomes findings.
func (v *Validator) ValidateFile(path string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("read file: %w", err)
	}
	return FileResult{File: path, Findings: v.ValidateContent(path, content)}, nil
}

// ValidateContent validates document content without touching the file
// the content came from. file_references are still resolved against the
// path's directory and the repository root.
func (v *Validator) ValidateContent(path string, content []byte) []Finding {
	doc, err := document.Parse(path, content)
	if err != nil {
		// Fail fast with a single finding; cascading per-field errors
		// for an unparseable block would be noise.
		return []Finding{{
			File:    path,
			Kind:    KindInvalidMetadataSyntax,
			Message: err.Error(),
		}}
	}

	var findings []Finding
	findings = append(findings, v.checkFields(doc)...)
	findings = append(findings, v.checkBody(doc)...)
	return findings
}

// checkFields validates each frontmatter field against its spec.
// Checks are independent: every violation yields its own finding.
func (v *Validator) checkFields(doc *document.Document) []Finding {
	var findings []Finding

	for _, spec := range v.schema.Fields() {
		value, present := doc.Frontmatter[spec.Name]
		if !present {
			if spec.Required {
				findings = append(findings, Finding{
					File:    doc.Path,
					Kind:    KindMissingRequiredField,
					Message: fmt.Sprintf("required field %q is missing", spec.Name),
				})
			}
			continue
		}

		switch spec.Kind {
		case schema.KindString, schema.KindEnum:
			findings = append(findings, v.checkStringField(doc, spec, value)...)
		case schema.KindStringList:
			findings = append(findings, v.checkListField(doc, spec, value)...)
		}
	}

	return findings
}

// checkStringField validates a scalar string or enum field.
func (v *Validator) checkStringField(doc *document.Document, spec schema.FieldSpec, value any) []Finding {
	str, ok := value.(string)
	if !ok {
		return []Finding{{
			File:    doc.Path,
			Kind:    KindInvalidFieldValue,
			Message: fmt.Sprintf("field %q must be a string, got %T", spec.Name, value),
		}}
	}

	var findings []Finding

	if spec.NonEmpty && strings.TrimSpace(str) == "" {
		findings = append(findings, Finding{
			File:    doc.Path,
			Kind:    KindInvalidFieldValue,
			Message: fmt.Sprintf("field %q must not be empty", spec.Name),
		})
	}

	if spec.MaxLength > 0 && utf8.RuneCountInString(str) >= spec.MaxLength {
		findings = append(findings, Finding{
			File:    doc.Path,
			Kind:    KindDescriptionTooLong,
			Message: fmt.Sprintf("field %q is %d characters, must be under %d", spec.Name, utf8.RuneCountInString(str), spec.MaxLength),
		})
	}

	if spec.Kind == schema.KindEnum && !contains(spec.Values, str) {
		findings = append(findings, Finding{
			File:    doc.Path,
			Kind:    enumFindingKind(spec.Name),
			Message: fmt.Sprintf("%s %q is not valid, must be one of: %s", spec.Name, str, strings.Join(spec.Values, ", ")),
		})
	}

	if spec.Pattern != nil && str != "" && !spec.Pattern.MatchString(str) {
		findings = append(findings, Finding{
			File:    doc.Path,
			Kind:    KindInvalidFieldValue,
			Message: fmt.Sprintf("field %q value %q is not a valid version", spec.Name, str),
		})
	}

	return findings
}

// checkListField validates a string-list field.
func (v *Validator) checkListField(doc *document.Document, spec schema.FieldSpec, value any) []Finding {
	items, ok := asStringList(value)
	if !ok {
		return []Finding{{
			File:    doc.Path,
			Kind:    KindInvalidFieldValue,
			Message: fmt.Sprintf("field %q must be a list of strings, got %T", spec.Name, value),
		}}
	}

	var findings []Finding

	for i, item := range items {
		if item.str == "" && !item.isString {
			findings = append(findings, Finding{
				File:    doc.Path,
				Kind:    KindInvalidFieldValue,
				Message: fmt.Sprintf("field %q entry %d must be a string", spec.Name, i),
			})
		}
	}

	if spec.MinItems > 0 && len(items) < spec.MinItems {
		findings = append(findings, Finding{
			File:    doc.Path,
			Kind:    KindInsufficientTags,
			Message: fmt.Sprintf("field %q has %d entries, at least %d required", spec.Name, len(items), spec.MinItems),
		})
	}

	if spec.CheckPaths {
		findings = append(findings, v.checkFileReferences(doc, spec, items)...)
	}

	return findings
}

// checkFileReferences resolves each referenced path against the
// document directory, then the repository root. One finding per entry
// that resolves nowhere.
func (v *Validator) checkFileReferences(doc *document.Document, spec schema.FieldSpec, items []listItem) []Finding {
	baseDir := filepath.Dir(doc.Path)
	repoRoot := v.repoRoot
	if repoRoot == "" {
		repoRoot = findRepoRoot(baseDir)
	}

	var findings []Finding
	for _, item := range items {
		if !item.isString {
			continue // already reported as a type finding
		}

		if fileExists(filepath.Join(baseDir, item.str)) {
			continue
		}
		if repoRoot != "" && fileExists(filepath.Join(repoRoot, item.str)) {
			continue
		}

		findings = append(findings, Finding{
			File:    doc.Path,
			Kind:    KindMissingReferencedFile,
			Message: fmt.Sprintf("referenced file %q does not exist", item.str),
		})
	}
	return findings
}

// checkBody validates the document body structure.
func (v *Validator) checkBody(doc *document.Document) []Finding {
	if strings.TrimSpace(doc.Body) == "" {
		return []Finding{{
			File:    doc.Path,
			Kind:    KindEmptyBody,
			Message: "document body is empty",
		}}
	}

	var findings []Finding
	for _, section := range v.schema.RequiredSections {
		if !hasSection(doc.Body, section) {
			findings = append(findings, Finding{
				File:    doc.Path,
				Kind:    KindMissingSection,
				Message: fmt.Sprintf("required section %q is missing", section),
			})
		}
	}
	return findings
}

// hasSection reports whether the body contains a heading whose text
// starts with the section name. Matching is case-insensitive and
// accepts any heading level of two or more.
func hasSection(body, section string) bool {
	want := strings.ToLower(section)
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "##") {
			continue
		}
		text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if strings.HasPrefix(strings.ToLower(text), want) {
			return true
		}
	}
	return false
}

// listItem is a frontmatter list entry with its string-ness preserved
// so type mismatches can be reported per entry.
type listItem struct {
	str      string
	isString bool
}

// asStringList normalizes a frontmatter list value. YAML decodes
// sequences as []any; []string appears when callers construct
// frontmatter directly.
func asStringList(value any) ([]listItem, bool) {
	switch list := value.(type) {
	case []any:
		items := make([]listItem, len(list))
		for i, elem := range list {
			if s, ok := elem.(string); ok {
				items[i] = listItem{str: s, isString: true}
			}
		}
		return items, true
	case []string:
		items := make([]listItem, len(list))
		for i, s := range list {
			items[i] = listItem{str: s, isString: true}
		}
		return items, true
	default:
		return nil, false
	}
}

// enumFindingKind maps an enum field to its dedicated finding kind.
func enumFindingKind(field string) Kind {
	switch field {
	case "category":
		return KindInvalidCategory
	case "inclusion":
		return KindInvalidInclusionValue
	default:
		return KindInvalidFieldValue
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
