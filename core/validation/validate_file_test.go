package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.env")
	if err := os.WriteFile(file, []byte("X=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", file, false},
		{"missing file", filepath.Join(dir, "absent.env"), true},
		{"directory", dir, true},
		{"empty path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFileExists(tt.path)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("CheckFileExists(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			var fe *FileExistsError
			if !errors.As(err, &fe) {
				t.Fatalf("CheckFileExists(%q) = %v, want *FileExistsError", tt.path, err)
			}
			if fe.Path != tt.path {
				t.Errorf("Path = %q, want %q", fe.Path, tt.path)
			}
		})
	}
}

func TestCheckDirWritable(t *testing.T) {
	dir := t.TempDir()
	if err := CheckDirWritable(dir); err != nil {
		t.Errorf("CheckDirWritable(tempdir) = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("scratch file left behind: %v", entries)
	}

	if err := CheckDirWritable(filepath.Join(dir, "missing")); err == nil {
		t.Error("CheckDirWritable(missing) should fail")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckDirWritable(file); err == nil {
		t.Error("CheckDirWritable(file) should fail")
	}
}
