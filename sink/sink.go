// Package sink provides the destinations generated sources are written to.
package sink

import (
	"context"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile stores content under a relative, slash-separated path.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// ValidatePath checks that p is a clean relative path that stays inside the
// sink root.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return errors.New("path is empty")
	case strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`):
		return errors.New("absolute paths not allowed")
	case len(p) >= 2 && p[1] == ':' && isLetter(p[0]):
		return errors.New("absolute paths not allowed")
	case strings.Contains(p, `\`):
		return errors.New("path must use forward slashes")
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if cleaned := path.Clean(p); cleaned != p {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, p)
	}
	return nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
