package main

import (
	"regexp"
	"strings"
)

type Canonicalizer struct {
	absoluteMarkerRegex *regexp.Regexp
}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		// `$A$1`, `A$1` and `$A1` address the same cell as `A1`
		absoluteMarkerRegex: regexp.MustCompile(`^\$?([A-Z]+)\$?(\d+)$`),
	}
}

func (c *Canonicalizer) Canonicalize(label string) string {
	return c.absoluteMarkerRegex.ReplaceAllString(
		strings.ToUpper(strings.TrimSpace(label)),
		"$1$2",
	)
}
