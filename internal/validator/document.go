// Package validator lints markdown documents before they are built.
package validator

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"docblog/internal/extract"
	"docblog/internal/models"
	"docblog/internal/table"
)

var dateLinePattern = regexp.MustCompile(`^date:\s*(.*)$`)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Line    int
	Column  int
}

// ValidationResult contains validation results.
type ValidationResult struct {
	ID       string
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains document statistics.
type ValidationStats struct {
	Lines      int
	Headings   int
	CodeBlocks int
	TableRows  int
}

// DocumentValidator checks a document for problems that would make the
// builder skip it or produce surprising metadata.
type DocumentValidator struct{}

// NewDocumentValidator creates a new validator.
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{}
}

// Validate lints doc. Errors mark documents the builder would skip;
// warnings mark documents that build with fallback values.
func (v *DocumentValidator) Validate(doc models.Document) *ValidationResult {
	result := &ValidationResult{
		ID:       doc.ID,
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	content := strings.ReplaceAll(doc.Content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	result.Stats.Lines = len(lines)

	bodyStart := v.checkFrontMatter(result, content, lines)
	v.checkBody(result, lines, bodyStart)
	v.checkSummary(result, content)

	return result
}

// checkFrontMatter validates the front-matter block and returns the index
// of the first body line.
func (v *DocumentValidator) checkFrontMatter(result *ValidationResult, content string, lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return 0
	}

	if !extract.HasFrontMatter(content) {
		result.Warnings = append(result.Warnings,
			"line 1: front-matter block is never closed; it is treated as body text")

		return 0
	}

	closing := 1
	for closing < len(lines) && strings.TrimRight(lines[closing], " \t") != "---" {
		closing++
	}

	fm, err := extract.ParseFrontMatter(content)
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationError{
			Line:    1,
			Column:  1,
			Field:   "front-matter",
			Message: err.Error(),
		})

		return closing + 1
	}

	if fm.Date != "" {
		return closing + 1
	}

	for i := 1; i < closing; i++ {
		if m := dateLinePattern.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: front-matter date %q is not YYYY-MM-DD; dates fall back to history or DRAFT", i+1, m[1]))

			break
		}
	}

	return closing + 1
}

func (v *DocumentValidator) checkBody(result *ValidationResult, lines []string, start int) {
	var (
		inFence        bool
		fenceLine      int
		tableCols      int
		firstHeadingIn = -1
	)

	for i := start; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if strings.HasPrefix(trimmed, "```") {
			if !inFence {
				fenceLine = i + 1
				result.Stats.CodeBlocks++
			}

			inFence = !inFence
			tableCols = 0

			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			if firstHeadingIn < 0 {
				firstHeadingIn = boolToInt(inFence)
			}

			if !inFence {
				result.Stats.Headings++
			}
		}

		if inFence {
			continue
		}

		if !table.IsRow(trimmed) {
			tableCols = 0

			continue
		}

		result.Stats.TableRows++

		cols := len(table.Cells(trimmed))
		if tableCols == 0 {
			tableCols = cols
		} else if cols != tableCols {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: table row has %d columns, header has %d", i+1, cols, tableCols))
		}
	}

	if inFence {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("line %d: code fence is never closed; it renders as plain text", fenceLine))
	}

	if firstHeadingIn == 1 {
		result.Warnings = append(result.Warnings,
			"first '#' line is inside a code block; it is still used as the title")
	}
}

func (v *DocumentValidator) checkSummary(result *ValidationResult, content string) {
	summary := extract.Summarize(content)

	switch summary.Title {
	case extract.DefaultTitle:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no heading found; title will be %q", extract.DefaultTitle))
	case "":
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("first heading is empty; title will be %q", extract.DeriveTitle(result.ID)))
	}

	if summary.Excerpt == "" {
		result.Warnings = append(result.Warnings, "no paragraph text found; excerpt will be empty")
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | %s | Lines: %d | Headings: %d | Code blocks: %d | Errors: %d | Warnings: %d",
		status,
		r.ID,
		r.Stats.Lines,
		r.Stats.Headings,
		r.Stats.CodeBlocks,
		len(r.Errors),
		len(r.Warnings),
	)
}

// PrintErrors writes validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintln(w, "❌ Validation Errors:")

	for _, err := range r.Errors {
		if err.Line > 0 {
			fmt.Fprintf(w, "  Line %d, Col %d", err.Line, err.Column)

			if err.Field != "" {
				fmt.Fprintf(w, " [%s]", err.Field)
			}

			fmt.Fprintf(w, ": %s\n", err.Message)

			if err.Value != "" {
				fmt.Fprintf(w, "    Found: %q\n", err.Value)
			}
		} else {
			fmt.Fprintf(w, "  %s\n", err.Message)
		}
	}
}

// PrintWarnings writes validation warnings.
func (r *ValidationResult) PrintWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintln(w, "⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
}
