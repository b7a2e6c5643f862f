package template

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fractionestate/specify/internal/clierr"
)

const dirMode = 0o750

// Extract unpacks a template archive into destDir. Archives that wrap
// everything in a single root directory are flattened so the template
// contents land directly in destDir. Existing files are overwritten,
// which is what merging into a pre-existing directory needs.
func Extract(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return clierr.Newf(clierr.ExtractFailed, "opening template archive: %v", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, dirMode); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	prefix := singleRootPrefix(reader.File)
	for _, f := range reader.File {
		rel := strings.TrimPrefix(f.Name, prefix)
		if rel == "" {
			continue
		}
		if err := extractEntry(f, destDir, rel); err != nil {
			return err
		}
	}
	return nil
}

// singleRootPrefix returns "<root>/" when every archive entry lives
// under the same top-level directory, else "".
func singleRootPrefix(files []*zip.File) string {
	root := ""
	for _, f := range files {
		name := strings.TrimPrefix(f.Name, "./")
		first, _, found := strings.Cut(name, "/")
		if !found || first == "" || first == "." || first == ".." {
			return ""
		}
		if root == "" {
			root = first
		} else if first != root {
			return ""
		}
	}
	if root == "" {
		return ""
	}
	return root + "/"
}

func extractEntry(f *zip.File, destDir, rel string) error {
	target := filepath.Join(destDir, filepath.FromSlash(rel))

	// Reject entries that escape the destination.
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return clierr.Newf(clierr.ExtractFailed, "archive entry %q escapes destination", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, dirMode); err != nil {
			return fmt.Errorf("creating directory %s: %w", rel, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}

	src, err := f.Open()
	if err != nil {
		return clierr.Newf(clierr.ExtractFailed, "reading archive entry %s: %v", f.Name, err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = fileMode
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) //nolint:gosec // target validated against destDir above
	if err != nil {
		return fmt.Errorf("creating %s: %w", rel, err)
	}

	if _, err := io.Copy(dst, src); err != nil { //nolint:gosec // template archives come from trusted releases
		dst.Close()
		return clierr.Newf(clierr.ExtractFailed, "extracting %s: %v", f.Name, err)
	}
	return dst.Close()
}

// EnsureExecutable adds execute bits to POSIX shell scripts under
// .specify/scripts that start with a shebang. Read bits are propagated
// to execute bits. Returns the number of files updated; a no-op on
// Windows and when the scripts tree is absent.
func EnsureExecutable(projectRoot string) (int, error) {
	if runtime.GOOS == "windows" {
		return 0, nil
	}
	scriptsRoot := filepath.Join(projectRoot, ".specify", "scripts")
	if info, err := os.Stat(scriptsRoot); err != nil || !info.IsDir() {
		return 0, nil
	}

	updated := 0
	err := filepath.WalkDir(scriptsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sh") || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !hasShebang(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		mode := info.Mode().Perm()
		if mode&0o111 != 0 {
			return nil
		}

		newMode := mode
		if mode&0o400 != 0 {
			newMode |= 0o100
		}
		if mode&0o040 != 0 {
			newMode |= 0o010
		}
		if mode&0o004 != 0 {
			newMode |= 0o001
		}
		newMode |= 0o100
		if err := os.Chmod(path, newMode); err != nil {
			return err
		}
		updated++
		return nil
	})
	if err != nil {
		return updated, fmt.Errorf("setting script permissions: %w", err)
	}
	return updated, nil
}

func hasShebang(path string) bool {
	f, err := os.Open(path) //nolint:gosec // path enumerated under the scripts tree
	if err != nil {
		return false
	}
	defer f.Close()

	var head [2]byte
	if _, err := io.ReadFull(f, head[:]); err != nil {
		return false
	}
	return head[0] == '#' && head[1] == '!'
}
