package router

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/oasrouter/oaserrors"
)

// pathTemplate is an operation path template compiled once at router build
// time. Each "{name}" placeholder matches one or more non-slash characters.
type pathTemplate struct {
	// raw is the template as declared (e.g., "/pets/{petId}")
	raw string

	// regex is anchored at both ends
	regex *regexp.Regexp

	// paramNames are the placeholder names in order of appearance
	paramNames []string

	// specificity is the number of characters left after every
	// placeholder is removed; higher is more specific
	specificity int
}

// compileTemplate compiles a path template. Returns a ConfigError if the
// template has an unclosed brace, an empty or a duplicate placeholder.
func compileTemplate(template string) (*pathTemplate, error) {
	var (
		pattern    strings.Builder
		literal    strings.Builder
		paramNames []string
	)
	pattern.WriteString("^")

	rest := template
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			pattern.WriteString(regexp.QuoteMeta(rest))
			literal.WriteString(rest)
			break
		}
		pattern.WriteString(regexp.QuoteMeta(rest[:open]))
		literal.WriteString(rest[:open])

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, templateError(template, fmt.Sprintf("unclosed path parameter at position %d", len(template)-len(rest)+open))
		}
		name := rest[open+1 : open+end]
		if name == "" {
			return nil, templateError(template, fmt.Sprintf("empty path parameter at position %d", len(template)-len(rest)+open))
		}
		for _, existing := range paramNames {
			if existing == name {
				return nil, templateError(template, fmt.Sprintf("duplicate path parameter %q", name))
			}
		}
		paramNames = append(paramNames, name)
		pattern.WriteString("([^/]+)")
		rest = rest[open+end+1:]
	}
	pattern.WriteString("$")

	regex, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "paths", Value: template, Message: "invalid path template", Cause: err}
	}

	return &pathTemplate{
		raw:         template,
		regex:       regex,
		paramNames:  paramNames,
		specificity: utf8.RuneCountInString(literal.String()),
	}, nil
}

func templateError(template, msg string) error {
	return &oaserrors.ConfigError{Option: "paths", Value: template, Message: msg}
}

// matches reports whether path is accepted by the template.
func (t *pathTemplate) matches(path string) bool {
	return t.regex.MatchString(path)
}

// extract returns the placeholder values captured from path, or nil and
// false if path does not match.
func (t *pathTemplate) extract(path string) (map[string]string, bool) {
	groups := t.regex.FindStringSubmatch(path)
	if groups == nil || len(groups) != len(t.paramNames)+1 {
		return nil, false
	}
	params := make(map[string]string, len(t.paramNames))
	for i, name := range t.paramNames {
		params[name] = groups[i+1]
	}
	return params, true
}
