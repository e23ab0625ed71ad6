package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emberlog/ember/record"
)

func TestAppender_WriteCreatesAndWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	a, err := New(Config{Filename: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	buf := record.NewBuffer(32, 4)
	if err := a.Write(buf, []byte("hello\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "hello\n" {
		t.Errorf("file contents = %q, want %q", got, "hello\n")
	}
}

func TestAppender_RotatesOnMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	a, err := New(Config{Filename: path, MaxSize: 8})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	buf := record.NewBuffer(32, 4)
	for i := 0; i < 5; i++ {
		if err := a.Write(buf, []byte("12345678\n")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := a.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(matches) == 0 {
		t.Error("expected at least one rotated backup file")
	}
}
