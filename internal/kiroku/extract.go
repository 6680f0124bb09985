package kiroku

import "strings"

// Matcher recognizes one command kind in a build trace and optionally
// rewrites the matched line. Matching policy lives behind this pair so it
// can be upgraded (tokenized parsing, regex) without touching the
// pipeline shape.
type Matcher struct {
	Kind      string
	Match     func(line string) bool
	Transform func(line string) string
}

// prefixMatcher matches lines by exact byte-prefix, case-sensitive.
// This mirrors what the verbose swift build trace actually guarantees:
// the compile and link invocations are printed verbatim, one per line.
func prefixMatcher(kind, prefix string, transform func(string) string) Matcher {
	return Matcher{
		Kind:      kind,
		Match:     func(line string) bool { return strings.HasPrefix(line, prefix) },
		Transform: transform,
	}
}

// Extraction holds the recovered compile and link invocations. Each is
// independently present-or-absent.
type Extraction struct {
	Compile      string
	CompileFound bool
	Link         string
	LinkFound    bool
}

// Extractor scans a build trace for the compile and link commands.
type Extractor struct {
	compile Matcher
	link    Matcher
}

// NewExtractor builds an extractor from the configured recognition
// prefixes and warning-suppression policy.
func NewExtractor() *Extractor {
	compileTransform := func(line string) string { return line }
	if addSuppress {
		// add flag to quiet warnings
		compileTransform = func(line string) string { return line + " " + suppressFlag }
	}
	return &Extractor{
		compile: prefixMatcher("compile", compilePrefix, compileTransform),
		link:    prefixMatcher("link", linkPrefix, nil),
	}
}

// Extract iterates the trace lines in order exactly once. First match
// wins per category; later matching lines are ignored. The prefixes are
// disjoint by construction, so a line never satisfies both categories.
func (e *Extractor) Extract(lines []string) Extraction {
	var ext Extraction
	for _, line := range lines {
		if !ext.CompileFound && e.compile.Match(line) {
			ext.Compile = line
			if e.compile.Transform != nil {
				ext.Compile = e.compile.Transform(line)
			}
			ext.CompileFound = true
			continue
		}
		if !ext.LinkFound && e.link.Match(line) {
			ext.Link = line
			if e.link.Transform != nil {
				ext.Link = e.link.Transform(line)
			}
			ext.LinkFound = true
		}
	}
	return ext
}
