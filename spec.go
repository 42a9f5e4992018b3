package reposnap

import (
	"regexp"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrInvalidSpec signals a repository spec whose name or URL is empty
	// after parsing and sanitization.
	ErrInvalidSpec = errors.NewKind("invalid repository spec %q")

	// ErrDuplicateName signals two specs that sanitize to the same name,
	// which would make their outputs collide.
	ErrDuplicateName = errors.NewKind("duplicate repository name %q")
)

// RepoSpec identifies one repository to snapshot. Name is a sanitized
// identifier used for the working copy and output directories, URL the
// normalized remote endpoint.
type RepoSpec struct {
	Name string
	URL  string
}

// treeMarker is the path segment that marks "list, then sub-path" URLs.
// For those the derived name combines the segment before the marker with
// the last path segment.
const treeMarker = "tree"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// ParseSpecs turns raw "name=url" or bare "url" spec strings into an
// ordered, deduplicated list of RepoSpecs. Order is preserved; the first
// duplicated name fails the whole batch.
func ParseSpecs(raw []string) ([]RepoSpec, error) {
	seen := make(map[string]bool, len(raw))
	specs := make([]RepoSpec, 0, len(raw))

	for _, r := range raw {
		spec, err := parseSpec(r)
		if err != nil {
			return nil, err
		}

		if seen[spec.Name] {
			return nil, ErrDuplicateName.New(spec.Name)
		}

		seen[spec.Name] = true
		specs = append(specs, spec)
	}

	return specs, nil
}

func parseSpec(raw string) (RepoSpec, error) {
	s := strings.TrimSpace(raw)

	var name, url string
	if i := strings.Index(s, "="); i >= 0 && !strings.ContainsAny(s[:i], "/:?#") {
		name, url = s[:i], NormalizeURL(s[i+1:])
	} else {
		// Bare URL; an "=" inside a query string is not a separator.
		url = NormalizeURL(s)
		name = nameFromURL(url)
	}

	name = SanitizeName(name)
	if name == "" || name == "." || name == ".." || url == "" {
		return RepoSpec{}, ErrInvalidSpec.New(raw)
	}

	return RepoSpec{Name: name, URL: url}, nil
}

// NormalizeURL trims whitespace and any trailing slash. Remote comparison
// during synchronization always happens on this form.
func NormalizeURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

func nameFromURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}

	url = strings.TrimRight(url, "/")

	parts := strings.Split(url, "/")
	for i, p := range parts {
		if p == treeMarker && i > 0 && i < len(parts)-1 {
			return parts[i-1] + "-" + parts[len(parts)-1]
		}
	}

	if last := parts[len(parts)-1]; last != "" {
		return last
	}

	return url
}

// SanitizeName replaces every character outside [A-Za-z0-9._-] with an
// underscore and strips leading and trailing underscores. It is idempotent.
func SanitizeName(name string) string {
	return strings.Trim(unsafeNameChars.ReplaceAllString(name, "_"), "_")
}
