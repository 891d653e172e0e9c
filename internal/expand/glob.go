package expand

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/truman-dome/domeshell/internal/domain"
	"github.com/truman-dome/domeshell/internal/validator"
)

// maxGlobDepth bounds recursive '**' expansion to 100 levels relative to
// the pattern's fixed base. Matching is hand-written over
// path/filepath.Match for single-segment wildcards rather than pulling in
// a globbing library, since none of them implement bash-compatible '**'
// recursion out of the box.
const maxGlobDepth = 100

func isWildcardSegment(s string) bool {
	return strings.ContainsAny(s, "*?[]")
}

// splitBaseAndPattern finds the longest prefix of fullPath with no
// wildcard segment and returns it as base, plus the remaining pattern
// segments to match beneath it.
func splitBaseAndPattern(fullPath string) (base string, segments []string) {
	comps := strings.Split(fullPath, "/")
	var baseComps []string
	i := 0
	for ; i < len(comps); i++ {
		if comps[i] == "" {
			continue
		}
		if isWildcardSegment(comps[i]) {
			break
		}
		baseComps = append(baseComps, comps[i])
	}
	base = "/" + strings.Join(baseComps, "/")

	for _, s := range comps[i:] {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return base, segments
}

// ExpandGlobAtom expands a single glob-tagged argument against ctx:
// nullglob-off fallback when the base is outside the sandbox or nothing
// matches, byte-lexicographic sort, dotfile exclusion, and per-match
// re-validation.
//
// raw is the pattern after tilde expansion has already been applied.
func ExpandGlobAtom(raw string, ctx domain.ExecContext) []string {
	isAbs := strings.HasPrefix(raw, "/")

	var fullPath string
	if isAbs {
		fullPath = raw
	} else {
		fullPath = filepath.Join(ctx.CurrentPath, raw)
	}
	fullPath = filepath.Clean(fullPath)

	base, segments := splitBaseAndPattern(fullPath)

	resolvedBase, err := validator.Validate(base, ctx.Sandbox, "")
	if err != nil {
		// Base is outside the sandbox: nullglob off, no filesystem access
		// beyond the base check itself.
		return []string{raw}
	}

	matches := walkSegments(resolvedBase, segments, 0)

	valid := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, err := validator.Validate(m, ctx.Sandbox, ""); err == nil {
			valid = append(valid, m)
		}
	}
	sort.Strings(valid)

	if len(valid) == 0 {
		return []string{raw}
	}

	if isAbs {
		return valid
	}

	hasDotSlash := strings.HasPrefix(raw, "./")
	rel := make([]string, len(valid))
	for i, m := range valid {
		r, err := filepath.Rel(ctx.CurrentPath, m)
		if err != nil {
			r = m
		}
		if hasDotSlash && !strings.HasPrefix(r, "./") {
			r = "./" + r
		}
		rel[i] = r
	}
	return rel
}

// walkSegments matches the pattern segments against the filesystem rooted
// at dir, returning absolute matching paths. depth counts '**' hops taken
// so far, relative to the original base.
func walkSegments(dir string, segments []string, depth int) []string {
	if len(segments) == 0 {
		return []string{dir}
	}

	seg := segments[0]
	rest := segments[1:]

	if seg == "**" {
		var results []string
		// Zero-segment match: '**' may consume nothing.
		results = append(results, walkSegments(dir, rest, depth)...)

		if depth >= maxGlobDepth {
			return results
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return results
		}
		for _, e := range entries {
			if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			results = append(results, walkSegments(filepath.Join(dir, e.Name()), segments, depth+1)...)
		}
		return results
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var results []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(seg, ".") {
			continue
		}
		matched, err := filepath.Match(seg, name)
		if err != nil || !matched {
			continue
		}
		if len(rest) == 0 {
			results = append(results, filepath.Join(dir, name))
			continue
		}
		if e.IsDir() {
			results = append(results, walkSegments(filepath.Join(dir, name), rest, depth)...)
		}
	}
	return results
}
