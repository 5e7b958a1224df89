package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetWriter(t *testing.T) {
	for _, format := range Formats {
		w, err := GetWriter(format)
		if err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
		if w == nil {
			t.Errorf("GetWriter(%q) returned nil", format)
		}
	}
	if _, err := GetWriter("xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestWriteReport_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.sarif")
	if err := WriteReport(sampleReport(), "sarif", path); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"version": "2.1.0"`) {
		t.Errorf("unexpected file content: %s", data)
	}
}

func TestWriteReport_BadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := WriteReport(sampleReport(), "yaml", path); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created for an unsupported format")
	}
}
