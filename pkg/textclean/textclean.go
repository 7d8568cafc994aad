// Package textclean turns user input into plain text before it is stored.
package textclean

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Plain strips all markup from s and trims surrounding whitespace. Entities
// are decoded so "&" stays "&".
func Plain(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict().Sanitize(s)))
}

// PlainPtr applies Plain to an optional value.
func PlainPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := Plain(*s)
	return &cleaned
}
