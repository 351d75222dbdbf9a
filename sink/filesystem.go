package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// FilesystemSink writes files below a root directory.
type FilesystemSink struct {
	Root string

	// Mode is the permission of written files (default 0644).
	Mode os.FileMode

	// Overwrite allows replacing existing files. When false, writing a
	// path that already exists is an error.
	Overwrite bool

	// SkipUnchanged leaves files whose content is already identical
	// untouched, so watch-mode rebuilds do not bump modification times.
	SkipUnchanged bool
}

// NewFilesystemSink returns a sink writing below root that overwrites
// existing files.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0644, Overwrite: true}
}

// WriteFile writes content atomically: the data goes to a temporary file
// in the target directory which is then renamed (or linked, when
// Overwrite is false) into place.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if s.SkipUnchanged && s.Overwrite {
		if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, content) {
			return nil
		}
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create directories")
	}

	tmp, err := os.CreateTemp(dir, ".shimgen-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	// Leftover temp files share the .shimgen-*.tmp pattern.
	discard := func() { _ = os.Remove(tmpPath) }

	_, werr := tmp.Write(content)
	cerr := tmp.Close()
	if werr != nil {
		discard()
		return errors.Wrap(werr, "write temp file")
	}
	if cerr != nil {
		discard()
		return errors.Wrap(cerr, "close temp file")
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		discard()
		return errors.Wrap(err, "set file mode")
	}
	if err := ctx.Err(); err != nil {
		discard()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, target); err != nil {
			discard()
			return errors.Wrap(err, "rename temp file")
		}
		return nil
	}

	// Link fails with EEXIST instead of replacing the target.
	err = os.Link(tmpPath, target)
	discard()
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.Newf("file already exists: %q", path)
		}
		return errors.Wrap(err, "create file")
	}
	return nil
}

func (s *FilesystemSink) resolve(path string) (string, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "resolve root directory")
	}
	target, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		return "", errors.Wrap(err, "resolve path")
	}
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", errors.Newf("path escapes root directory: %q", path)
	}
	return target, nil
}
