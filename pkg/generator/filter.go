package generator

import (
	"fmt"
	"regexp"
)

// functionFilter selects function identifiers by include/exclude regex lists.
type functionFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// compileFunctionFilters compiles regex patterns for function filtering
func compileFunctionFilters(include, exclude []string) (*functionFilter, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid includeFunctions pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid excludeFunctions pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return &functionFilter{include: inc, exclude: exc}, nil
}

// shouldIncludeFunction determines if a function should be included based on its identifier
func (f *functionFilter) shouldIncludeFunction(id string) bool {
	// If no include patterns, assume every function is initially included
	included := len(f.include) == 0
	for _, r := range f.include {
		if r.MatchString(id) {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	// Exclude takes precedence over include
	for _, r := range f.exclude {
		if r.MatchString(id) {
			return false
		}
	}
	return true
}
