package pdf

import (
	"fmt"

	"github.com/hoadonkit/hoadonkit/internal/pdf/security"
)

// Service is the façade over the document components. All file access is
// bounded to the configured invoice directory via the path validator, so
// an MCP client cannot point the tools at arbitrary paths.
type Service struct {
	maxFileSize   int64
	reader        *Reader
	validator     *Validator
	stats         *Stats
	search        *Search
	pathValidator *security.PathValidator
}

// NewService creates a document service rooted at invoiceDirectory.
func NewService(maxFileSize int64, invoiceDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(invoiceDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		reader:        NewReader(maxFileSize),
		validator:     NewValidator(maxFileSize),
		stats:         NewStats(maxFileSize),
		search:        NewSearch(maxFileSize),
		pathValidator: pathValidator,
	}, nil
}

// ReadFile extracts the per-page text of one document.
func (s *Service) ReadFile(path string) (*ReadResult, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.reader.ReadFile(path)
}

// ValidateFile checks that the file is a structurally valid PDF.
func (s *Service) ValidateFile(path string) (*ValidateResult, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(path)
}

// FileStats returns size and metadata statistics for one document.
func (s *Service) FileStats(path string) (*FileStats, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetFileStats(path)
}

// SearchDirectory lists the invoice documents under directory, defaulting
// to the configured invoice directory.
func (s *Service) SearchDirectory(directory, query string) (*SearchResult, error) {
	if directory == "" {
		directory = s.pathValidator.GetConfiguredDirectory()
	}
	if err := s.pathValidator.ValidateDirectory(directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.search.SearchDirectory(directory, query)
}

// DirectoryStats aggregates statistics over the documents under directory.
func (s *Service) DirectoryStats(directory string) (*DirectoryStats, error) {
	if directory == "" {
		directory = s.pathValidator.GetConfiguredDirectory()
	}
	if err := s.pathValidator.ValidateDirectory(directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetDirectoryStats(directory)
}

// InvoiceDirectory returns the directory the service is bounded to.
func (s *Service) InvoiceDirectory() string {
	return s.pathValidator.GetConfiguredDirectory()
}
