// Package validate checks plain string payloads against declarative
// per-field rule sets and optionally sanitizes field values in place.
// It has no knowledge of HTTP.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Rule is the set of checks applied to a single field. Zero-valued checks
// are skipped. When Sanitize is set, the field value is rewritten in the
// payload so downstream logic sees cleaned content.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Sanitize  bool
}

type Schema map[string]Rule

type Result struct {
	Valid  bool
	Errors []string
}

var (
	NamePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	EmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// Canonical schemas for the API payloads.
var (
	UserSchema = Schema{
		"name":     {Required: true, MinLength: 2, MaxLength: 50, Pattern: NamePattern},
		"email":    {Required: true, Pattern: EmailPattern},
		"password": {Required: true, MinLength: 6, MaxLength: 128},
		"bio":      {MaxLength: 500},
	}
	PostSchema = Schema{
		"content": {Required: true, MinLength: 1, MaxLength: 1000, Sanitize: true},
	}
	CommentSchema = Schema{
		"content": {Required: true, MinLength: 1, MaxLength: 500, Sanitize: true},
	}
)

var (
	scriptBlocks = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	htmlTags     = regexp.MustCompile(`<[^>]*>?`)
	jsScheme     = regexp.MustCompile(`(?i)javascript:`)
)

// Clean strips script blocks, remaining HTML tags and javascript: schemes,
// then trims surrounding whitespace.
func Clean(s string) string {
	s = scriptBlocks.ReplaceAllString(s, "")
	s = htmlTags.ReplaceAllString(s, "")
	s = jsScheme.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func blank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// Apply evaluates every field of the schema against data, collecting all
// errors rather than failing fast. Sanitized fields are rewritten in data.
func Apply(data map[string]string, schema Schema) Result {
	fields := make([]string, 0, len(schema))
	for f := range schema {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var errs []string
	for _, field := range fields {
		rule := schema[field]
		value, present := data[field]

		if rule.Required && (!present || blank(value)) {
			errs = append(errs, fmt.Sprintf("%s is required", field))
			continue
		}
		if !rule.Required && (!present || blank(value)) {
			continue
		}

		if rule.MinLength > 0 && len([]rune(value)) < rule.MinLength {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters long", field, rule.MinLength))
		}
		if rule.MaxLength > 0 && len([]rune(value)) > rule.MaxLength {
			errs = append(errs, fmt.Sprintf("%s cannot exceed %d characters", field, rule.MaxLength))
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			errs = append(errs, fmt.Sprintf("%s format is invalid", field))
		}
		if rule.Sanitize {
			data[field] = Clean(value)
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
