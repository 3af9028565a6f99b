package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("ERROR\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, name := range []string{
		"app.log",
		"notes.TXT",
		"nested/deeper/worker.Log",
		"nested/readme.md",
		"archive.log.gz",
		"nested/db.txt",
	} {
		touch(t, filepath.Join(root, name))
	}
	if err := os.MkdirAll(filepath.Join(root, "dir.log"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(root, []string{".log", ".txt"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "app.log"),
		filepath.Join(root, "nested/db.txt"),
		filepath.Join(root, "nested/deeper/worker.Log"),
		filepath.Join(root, "notes.TXT"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() =\n%v\nwant\n%v", got, want)
	}
}

func TestFind_CustomExtensions(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.log"))
	touch(t, filepath.Join(root, "b.out"))

	got, err := Find(root, []string{".OUT"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "b.out" {
		t.Errorf("unexpected result %v", got)
	}
}

func TestFind_EmptyDirectory(t *testing.T) {
	t.Parallel()
	got, err := Find(t.TempDir(), []string{".log"})
	if err != nil || len(got) != 0 {
		t.Errorf("expected no files and no error, got %v, %v", got, err)
	}
}

func TestFind_Errors(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	file := filepath.Join(root, "plain.log")
	touch(t, file)

	if _, err := Find(filepath.Join(root, "missing"), []string{".log"}); err == nil {
		t.Error("expected error for a missing root")
	}
	if _, err := Find(file, []string{".log"}); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestFind_FollowsFileSymlinks(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.log")
	touch(t, target)
	if err := os.Symlink(target, filepath.Join(root, "link.log")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "nowhere.log"), filepath.Join(root, "dangling.log")); err != nil {
		t.Fatal(err)
	}

	got, err := Find(root, []string{".log"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "link.log" {
		t.Errorf("expected only the live link, got %v", got)
	}
}

func TestIsDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "f.log")
	touch(t, file)

	for path, want := range map[string]bool{"": false, dir: true, file: false, filepath.Join(dir, "nope"): false} {
		if got := IsDir(path); got != want {
			t.Errorf("IsDir(%q) = %v, want %v", path, got, want)
		}
	}
}
