package validator

import "fmt"

// Kind classifies a validation finding.
type Kind string

const (
	// KindInvalidMetadataSyntax indicates the metadata block is missing,
	// unterminated, or not valid YAML. Emitted at most once per file;
	// field-level checks are skipped when it fires.
	KindInvalidMetadataSyntax Kind = "INVALID_METADATA_SYNTAX"

	// KindMissingRequiredField indicates a required frontmatter field is
	// absent.
	KindMissingRequiredField Kind = "MISSING_REQUIRED_FIELD"

	// KindInvalidFieldValue indicates a field has the wrong type or an
	// ill-formed value.
	KindInvalidFieldValue Kind = "INVALID_FIELD_VALUE"

	// KindInvalidCategory indicates a category outside the schema's
	// closed set.
	KindInvalidCategory Kind = "INVALID_CATEGORY"

	// KindInvalidInclusionValue indicates an inclusion value outside the
	// schema's closed set.
	KindInvalidInclusionValue Kind = "INVALID_INCLUSION_VALUE"

	// KindDescriptionTooLong indicates the description exceeds the
	// schema's length bound.
	KindDescriptionTooLong Kind = "DESCRIPTION_TOO_LONG"

	// KindInsufficientTags indicates the tags list has fewer entries
	// than the schema requires.
	KindInsufficientTags Kind = "INSUFFICIENT_TAGS"

	// KindMissingReferencedFile indicates a file_references entry that
	// does not resolve on disk.
	KindMissingReferencedFile Kind = "MISSING_REFERENCED_FILE"

	// KindMissingSection indicates a required body heading is absent.
	KindMissingSection Kind = "MISSING_SECTION"

	// KindEmptyBody indicates the document has no body content.
	KindEmptyBody Kind = "EMPTY_BODY"
)

// Finding is a single reported validation problem.
type Finding struct {
	// File is the path of the document the finding applies to.
	File string `json:"file"`

	// Kind classifies the problem.
	Kind Kind `json:"kind"`

	// Message is the human-readable description.
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s", f.File, f.Kind, f.Message)
}

// FileResult holds the findings for a single validated file.
// A file with zero findings is valid.
type FileResult struct {
	// File is the validated file path.
	File string `json:"file"`

	// Findings lists all problems found, empty when the file is valid.
	Findings []Finding `json:"findings,omitempty"`
}

// Valid returns true when the file produced no findings.
func (r FileResult) Valid() bool {
	return len(r.Findings) == 0
}
