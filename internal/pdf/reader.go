package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts per-page plain text from invoice PDFs.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a reader that rejects files larger than maxFileSize.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadFile extracts the text of every page of the PDF at path. A document
// with no extractable text is NOT an error here: PageTexts comes back
// empty and ContentType tells the caller why (scanned_images/no_content),
// so it can degrade instead of aborting the batch.
func (r *Reader) ReadFile(path string) (*ReadResult, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pageTexts := r.extractPageTexts(pdfReader)
	contentType := r.analyzeContentType(pageTexts, pdfReader)
	hasImages, imageCount := r.detectImages(pdfReader)

	return &ReadResult{
		Path:        path,
		PageTexts:   pageTexts,
		PageCount:   pdfReader.NumPage(),
		Size:        fileInfo.Size(),
		ContentType: contentType,
		HasImages:   hasImages,
		ImageCount:  imageCount,
	}, nil
}

// validatePDFFile performs basic validation on a PDF file
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// extractPageTexts reads each page's plain text, skipping pages that fail
// individually and stopping once the total text budget is spent.
func (r *Reader) extractPageTexts(pdfReader *pdf.Reader) []string {
	var pages []string
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		content := r.extractPageText(pdfReader, pageNum)

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				pages = append(pages, content[:remaining])
			}
			break
		}

		pages = append(pages, content)
		totalLength += len(content)
	}

	return pages
}

// extractPageText reads one page's plain text. Malformed content streams
// panic inside the parser; a failed page contributes an empty string so the
// rest of the document still extracts.
func (r *Reader) extractPageText(pdfReader *pdf.Reader, pageNum int) (content string) {
	defer func() {
		if recover() != nil {
			content = ""
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// analyzeContentType determines what kind of content the document carries.
func (r *Reader) analyzeContentType(pageTexts []string, pdfReader *pdf.Reader) string {
	// Minimum text length to consider content meaningful
	const minMeaningfulTextLength = 50

	text := strings.TrimSpace(strings.Join(pageTexts, ""))
	hasImages, _ := r.detectImages(pdfReader)

	if text == "" || len(text) < minMeaningfulTextLength {
		if hasImages {
			return "scanned_images"
		}
		return "no_content"
	}

	if hasImages {
		return "mixed"
	}
	return "text"
}

// detectImages scans the PDF for image objects
func (r *Reader) detectImages(pdfReader *pdf.Reader) (bool, int) {
	imageCount := 0
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		imageCount += r.countImagesOnPage(pdfReader, pageNum)
	}
	return imageCount > 0, imageCount
}

// countImagesOnPage counts image XObjects on a specific page.
func (r *Reader) countImagesOnPage(pdfReader *pdf.Reader, pageNum int) int {
	defer func() {
		// Malformed resource dictionaries panic inside the parser.
		_ = recover()
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	imageCount := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}
		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}
		imageCount++
	}

	return imageCount
}
