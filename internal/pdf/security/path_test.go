package security

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupInvoiceDir creates a bounded invoice directory with a nested year
// subfolder, the layout accountants typically hand the tool.
func setupInvoiceDir(t *testing.T) (dir, invoice, nested string) {
	t.Helper()
	dir = t.TempDir()

	invoice = filepath.Join(dir, "hoadon_001.pdf")
	if err := os.WriteFile(invoice, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	yearDir := filepath.Join(dir, "2024")
	if err := os.Mkdir(yearDir, 0o755); err != nil {
		t.Fatal(err)
	}
	nested = filepath.Join(yearDir, "hoadon_002.pdf")
	if err := os.WriteFile(nested, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, invoice, nested
}

func TestNewPathValidator(t *testing.T) {
	if _, err := NewPathValidator(""); err == nil {
		t.Error("expected error for empty invoice directory")
	}

	// A directory that does not exist yet is allowed: batch mode creates
	// it on first run.
	v, err := NewPathValidator(filepath.Join(t.TempDir(), "invoices"))
	if err != nil {
		t.Fatalf("NewPathValidator() error = %v", err)
	}
	if v == nil {
		t.Fatal("validator should not be nil")
	}
}

func TestPathValidator_ValidatePath(t *testing.T) {
	dir, invoice, nested := setupInvoiceDir(t)

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error = %v", err)
	}

	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{name: "empty path", path: "", wantError: true},
		{name: "invoice in root", path: invoice, wantError: false},
		{name: "invoice in year subfolder", path: nested, wantError: false},
		{name: "system file outside directory", path: "/etc/passwd", wantError: true},
		{name: "parent traversal", path: filepath.Join(dir, "..", "outside.pdf"), wantError: true},
		{name: "dot segment inside directory", path: filepath.Join(dir, ".", "hoadon_001.pdf"), wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPathValidator_IsPathWithinDirectory(t *testing.T) {
	dir, invoice, _ := setupInvoiceDir(t)

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error = %v", err)
	}

	// A symlink inside the directory pointing at an invoice inside it is
	// still within bounds.
	link := filepath.Join(dir, "link.pdf")
	if err := os.Symlink(invoice, link); err != nil {
		t.Logf("symlink not supported, skipping symlink case: %v", err)
		link = invoice
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "invoice within directory", path: invoice, want: true},
		{name: "path outside directory", path: "/tmp/outside.pdf", want: false},
		{name: "parent traversal", path: filepath.Join(dir, "..", "outside.pdf"), want: false},
		{name: "symlink to invoice within directory", path: link, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.IsPathWithinDirectory(tt.path)
			if err != nil {
				t.Fatalf("IsPathWithinDirectory() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsPathWithinDirectory(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathValidator_NormalizePath(t *testing.T) {
	dir, _, _ := setupInvoiceDir(t)

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error = %v", err)
	}

	// Relative paths resolve against the invoice directory, the form MCP
	// clients usually send.
	got, err := v.NormalizePath("hoadon_001.pdf")
	if err != nil {
		t.Fatalf("NormalizePath() error = %v", err)
	}
	if !filepath.IsAbs(got) || !strings.HasPrefix(got, dir) {
		t.Errorf("NormalizePath() = %q, want absolute path under %q", got, dir)
	}

	if _, err := v.NormalizePath(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := v.NormalizePath("../outside.pdf"); err == nil {
		t.Error("expected error for traversal out of the invoice directory")
	}
}

func TestPathValidator_ValidateDirectory(t *testing.T) {
	dir, invoice, _ := setupInvoiceDir(t)

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error = %v", err)
	}

	if err := v.ValidateDirectory(filepath.Join(dir, "2024")); err != nil {
		t.Errorf("year subfolder rejected: %v", err)
	}
	if err := v.ValidateDirectory(invoice); err == nil {
		t.Error("expected error for file given as directory")
	}
	if err := v.ValidateDirectory("/tmp"); err == nil {
		t.Error("expected error for directory outside bounds")
	}
	// Not-yet-created subfolders pass: they may be created by the run.
	if err := v.ValidateDirectory(filepath.Join(dir, "2025")); err != nil {
		t.Errorf("missing subfolder rejected: %v", err)
	}
}

func TestPathValidator_SanitizePath(t *testing.T) {
	dir, _, _ := setupInvoiceDir(t)

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error = %v", err)
	}

	got, err := v.SanitizePath("hoadon\x00_001.pdf")
	if err != nil {
		t.Fatalf("SanitizePath() error = %v", err)
	}
	if strings.ContainsRune(got, '\x00') {
		t.Errorf("SanitizePath() = %q, null byte not removed", got)
	}

	if _, err := v.SanitizePath("../../../etc/passwd"); err == nil {
		t.Error("expected error for traversal attempt")
	}
}
