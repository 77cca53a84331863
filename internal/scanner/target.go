package scanner

import (
	"fmt"
	"net/url"
	"strings"
)

// JoinTarget resolves segment against base. The base is normalised to end
// with exactly one "/" first, so "http://x.test" and "http://x.test/" are
// equivalent and "http://x.test/app" is treated as the directory /app/.
func JoinTarget(base, segment string) (string, error) {
	b, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	ref, err := url.Parse(segment)
	if err != nil {
		return "", fmt.Errorf("invalid path segment %q: %w", segment, err)
	}
	return b.ResolveReference(ref).String(), nil
}

// IsDirectory is the recursion heuristic: a target looks like a directory
// when it ends with a path separator.
func IsDirectory(target string) bool {
	return strings.HasSuffix(target, "/")
}
