package batch

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/hoadonkit/hoadonkit/internal/export"
	"github.com/hoadonkit/hoadonkit/internal/extract"
	"github.com/hoadonkit/hoadonkit/internal/pdf"
)

// Runner drives a one-shot extraction of every invoice document in a
// directory into a single summary workbook. Documents are extracted
// concurrently; output order follows the directory listing regardless of
// which worker finishes first.
type Runner struct {
	documents *pdf.Service
	extractor *extract.Extractor
	builder   *export.Builder
	workers   int
	logger    *log.Logger
}

// Summary reports what a batch run produced.
type Summary struct {
	Total      int    // documents processed
	Degraded   int    // documents where no text could be extracted
	OutputFile string // workbook written
}

// NewRunner builds a batch runner. workers is clamped to at least one.
func NewRunner(documents *pdf.Service, extractor *extract.Extractor, workers int, logger *log.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		documents: documents,
		extractor: extractor,
		builder:   export.NewBuilder(),
		workers:   workers,
		logger:    logger,
	}
}

// Run extracts every PDF in the configured invoice directory and writes
// the summary workbook to outputFile. A document that cannot be read is
// recorded as a degraded row rather than failing the run.
func (r *Runner) Run(ctx context.Context, outputFile string) (*Summary, error) {
	listing, err := r.documents.SearchDirectory("", "")
	if err != nil {
		return nil, fmt.Errorf("list invoice directory: %w", err)
	}
	if listing.TotalCount == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", listing.Directory)
	}

	r.logger.Printf("processing %d invoice files from %s", listing.TotalCount, listing.Directory)

	docs := r.extractAll(ctx, listing.Files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.builder.WriteFile(outputFile, docs); err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(docs), OutputFile: outputFile}
	for _, d := range docs {
		if d.Record.IsDegraded() {
			summary.Degraded++
		}
	}
	r.logger.Printf("wrote %s: %d documents, %d unrecognized", outputFile, summary.Total, summary.Degraded)
	return summary, nil
}

type job struct {
	index int
	file  pdf.FileInfo
}

// extractAll fans the files out over the worker pool and collects results
// back into listing order.
func (r *Runner) extractAll(ctx context.Context, files []pdf.FileInfo) []export.Document {
	jobs := make(chan job)
	results := make([]export.Document, len(files))

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = r.extractOne(j.file)
			}
		}()
	}

	for i, f := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results[:i]
		case jobs <- job{index: i, file: f}:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// extractOne processes a single document. Read failures degrade to the
// sentinel record so one broken file never aborts the batch.
func (r *Runner) extractOne(file pdf.FileInfo) export.Document {
	read, err := r.documents.ReadFile(file.Path)
	if err != nil {
		r.logger.Printf("cannot read %s: %v", file.Name, err)
		return export.Document{Record: extract.NewDegradedRecord(file.Name)}
	}

	record, items := r.extractor.Extract(file.Name, read.PageTexts)
	r.logger.Printf("extracted %s: %d line items", file.Name, len(items))
	return export.Document{Record: record, Items: items}
}
