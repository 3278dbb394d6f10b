// Package validation holds one named rule per field constraint. Every schema
// variant that carries a field reuses the same rule, so each constraint has a
// single definition.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"unicode/utf8"

	util "github.com/spec-kit/blog-service/pkg/util/errorutil"
)

var (
	titlePattern    = regexp.MustCompile(`^[A-Za-z0-9 '"\-!?.,:;]+$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	excerptPattern  = regexp.MustCompile(`^[A-Za-z0-9 '"\-!?.,:;\n]+$`)
	passwordPattern = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]+$`)
	namePattern     = regexp.MustCompile(`^[A-Za-z '\-]+$`)
)

func tooShort(loc []any, min int, input any) *util.Detail {
	return &util.Detail{
		Type:  "string_too_short",
		Loc:   loc,
		Msg:   fmt.Sprintf("String should have at least %d characters", min),
		Input: input,
	}
}

func tooLong(loc []any, max int, input any) *util.Detail {
	return &util.Detail{
		Type:  "string_too_long",
		Loc:   loc,
		Msg:   fmt.Sprintf("String should have at most %d characters", max),
		Input: input,
	}
}

func patternMismatch(loc []any, pattern string, input any) *util.Detail {
	return &util.Detail{
		Type:  "string_pattern_mismatch",
		Loc:   loc,
		Msg:   fmt.Sprintf("String should match pattern '%s'", pattern),
		Input: input,
	}
}

func bounded(loc []any, v string, min, max int, re *regexp.Regexp) *util.Detail {
	n := utf8.RuneCountInString(v)
	if n < min {
		return tooShort(loc, min, v)
	}
	if n > max {
		return tooLong(loc, max, v)
	}
	if re != nil && !re.MatchString(v) {
		return patternMismatch(loc, re.String(), v)
	}
	return nil
}

// Title checks the 1-200 char title charset.
func Title(loc []any, v string) *util.Detail {
	return bounded(loc, v, 1, 200, titlePattern)
}

// Slug checks 3-100 char lowercase kebab-case.
func Slug(loc []any, v string) *util.Detail {
	return bounded(loc, v, 3, 100, slugPattern)
}

// Excerpt checks the title charset plus newline, up to 500 chars.
func Excerpt(loc []any, v string) *util.Detail {
	return bounded(loc, v, 0, 500, excerptPattern)
}

// Content checks 10-10000 chars with no charset restriction.
func Content(loc []any, v string) *util.Detail {
	return bounded(loc, v, 10, 10000, nil)
}

// Password checks 8-128 chars from the letters/digits/@$!%*?& set.
func Password(loc []any, v string) *util.Detail {
	return bounded(loc, v, 8, 128, passwordPattern)
}

// PersonName checks first/last names: letters, apostrophe, hyphen, space,
// up to 100 chars.
func PersonName(loc []any, v string) *util.Detail {
	return bounded(loc, v, 0, 100, namePattern)
}

// Email checks standard address syntax. Display names and angle brackets are
// rejected even though net/mail accepts them.
func Email(loc []any, v string) *util.Detail {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return &util.Detail{
			Type:  "value_error",
			Loc:   loc,
			Msg:   "value is not a valid email address",
			Input: v,
		}
	}
	return nil
}

// Role checks the USER/ADMIN enumeration.
func Role(loc []any, v string) *util.Detail {
	if v == "USER" || v == "ADMIN" {
		return nil
	}
	return &util.Detail{
		Type:  "enum",
		Loc:   loc,
		Msg:   "Input should be 'USER' or 'ADMIN'",
		Input: v,
	}
}
