package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewService(t *testing.T) {
	svc, err := NewService(1024, t.TempDir())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if svc.reader == nil || svc.validator == nil || svc.search == nil || svc.stats == nil {
		t.Error("service components not initialized")
	}

	if _, err := NewService(1024, ""); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestService_BoundsFileAccess(t *testing.T) {
	inside := t.TempDir()
	outside := t.TempDir()

	outsidePDF := filepath.Join(outside, "secret.pdf")
	if err := os.WriteFile(outsidePDF, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := NewService(1024*1024, inside)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ReadFile(outsidePDF); err == nil {
		t.Error("read outside the invoice directory was allowed")
	} else if !strings.Contains(err.Error(), "security validation failed") {
		t.Errorf("error = %v", err)
	}

	if _, err := svc.ValidateFile(outsidePDF); err == nil {
		t.Error("validate outside the invoice directory was allowed")
	}
}

func TestService_SearchDefaultsToInvoiceDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := NewService(1024*1024, dir)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.SearchDirectory("", "")
	if err != nil {
		t.Fatalf("SearchDirectory() error = %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", result.TotalCount)
	}
	if svc.InvoiceDirectory() != dir {
		t.Errorf("InvoiceDirectory() = %q", svc.InvoiceDirectory())
	}
}
