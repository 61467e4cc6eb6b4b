package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile_Success(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "onboarding.xlsx")
	if err := writeFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("workbook"))
		return err
	}); err != nil {
		t.Fatalf("writeFile returned error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(b) != "workbook" {
		t.Fatalf("unexpected content: %q", b)
	}
}

func TestWriteFile_RemovesPartialOutputOnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "onboarding.xlsx")
	writeErr := errors.New("write failed")

	err := writeFile(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return writeErr
	})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected partial file to be removed, stat error: %v", statErr)
	}
}
