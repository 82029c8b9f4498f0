package pdf

// FileInfo describes one invoice document found on disk.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ReadResult is the outcome of text extraction from one document. PageTexts
// holds the plain text of each page in order; downstream extraction joins
// them itself.
type ReadResult struct {
	Path        string   `json:"path"`
	PageTexts   []string `json:"page_texts"`
	PageCount   int      `json:"page_count"`
	Size        int64    `json:"size"`
	ContentType string   `json:"content_type"` // "text", "scanned_images", "mixed", "no_content"
	HasImages   bool     `json:"has_images"`
	ImageCount  int      `json:"image_count"`
}

// ValidateResult reports whether a file is a structurally sound PDF.
// Validation failure is data, not an error: the batch driver records the
// message and moves on.
type ValidateResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// FileStats carries size and document metadata for one file.
type FileStats struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Pages        int    `json:"pages"`
	ModifiedDate string `json:"modified_date"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Producer     string `json:"producer,omitempty"`
}

// SearchResult lists the invoice documents under a directory.
type SearchResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// DirectoryStats aggregates size statistics over a directory of documents.
type DirectoryStats struct {
	Directory        string `json:"directory"`
	TotalFiles       int    `json:"total_files"`
	TotalSize        int64  `json:"total_size"`
	LargestFileSize  int64  `json:"largest_file_size"`
	LargestFileName  string `json:"largest_file_name"`
	SmallestFileSize int64  `json:"smallest_file_size"`
	SmallestFileName string `json:"smallest_file_name"`
	AverageFileSize  int64  `json:"average_file_size"`
}
