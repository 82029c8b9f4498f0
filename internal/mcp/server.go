package mcp

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hoadonkit/hoadonkit/internal/config"
	"github.com/hoadonkit/hoadonkit/internal/extract"
	"github.com/hoadonkit/hoadonkit/internal/pdf"
)

// Server exposes the invoice extraction engine over MCP stdio.
type Server struct {
	config    *config.Config
	documents *pdf.Service
	extractor *extract.Extractor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, documents *pdf.Service, extractor *extract.Extractor) (*Server, error) {
	if documents == nil {
		return nil, fmt.Errorf("document service cannot be nil")
	}
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		documents: documents,
		extractor: extractor,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"invoice_extract_file",
		mcp.WithDescription("Extract structured invoice data (date, number, seller, amounts, line items) from one PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the invoice PDF file"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractDirectoryTool := mcp.NewTool(
		"invoice_extract_directory",
		mcp.WithDescription("Extract structured invoice data from every PDF in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory path to process (uses the configured invoice directory if empty)"),
		),
	)
	s.mcpServer.AddTool(extractDirectoryTool, s.handleExtractDirectory)

	validateFileTool := mcp.NewTool(
		"invoice_validate_file",
		mcp.WithDescription("Validate that a file is a readable PDF before extraction"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	searchDirectoryTool := mcp.NewTool(
		"invoice_search_directory",
		mcp.WithDescription("List invoice PDF files in a directory with optional name matching"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses the configured invoice directory if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query matched against file names"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	statsDirectoryTool := mcp.NewTool(
		"invoice_stats_directory",
		mcp.WithDescription("Get aggregate size statistics for the PDF files in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory path to analyze (uses the configured invoice directory if empty)"),
		),
	)
	s.mcpServer.AddTool(statsDirectoryTool, s.handleStatsDirectory)

	statsFileTool := mcp.NewTool(
		"invoice_stats_file",
		mcp.WithDescription("Get size, page count and metadata for one PDF file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(statsFileTool, s.handleStatsFile)

	serverInfoTool := mcp.NewTool(
		"invoice_server_info",
		mcp.WithDescription("Get server information, available tools, and invoice directory contents"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	read, err := s.documents.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, items := s.extractor.Extract(filepath.Base(path), read.PageTexts)

	responseText := fmt.Sprintf("Extracted invoice: %s\n", path)
	responseText += fmt.Sprintf("Pages: %d, Content Type: %s\n\n", read.PageCount, read.ContentType)
	responseText += formatRecord(record, items)

	if read.ContentType == "scanned_images" {
		responseText += "\nNote: this PDF contains scanned images with no extractable text; fields carry the unrecognized marker.\n"
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}

	listing, err := s.documents.SearchDirectory(directory, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if listing.TotalCount == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No PDF files found in directory: %s", listing.Directory)), nil
	}

	responseText := fmt.Sprintf("Extracted %d invoice(s) from %s\n", listing.TotalCount, listing.Directory)
	for i, file := range listing.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, items := s.extractDocument(file)
		responseText += fmt.Sprintf("\n--- %d. %s ---\n", i+1, file.Name)
		responseText += formatRecord(record, items)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.documents.ValidateFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}
	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	result, err := s.documents.SearchDirectory(directory, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleStatsFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.documents.FileStats(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatFileStats(result)), nil
}

func (s *Server) handleStatsDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}

	result, err := s.documents.DirectoryStats(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDirectoryStats(result)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s - Vietnamese e-invoice extraction server\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Invoice Directory: %s\n", s.documents.InvoiceDirectory())
	text += fmt.Sprintf("Max File Size: %d MB\n\n", s.config.MaxFileSize/(1024*1024))

	listing, err := s.documents.SearchDirectory("", "")
	if err == nil && listing.TotalCount > 0 {
		text += fmt.Sprintf("Directory Contents (%d PDF files found):\n", listing.TotalCount)
		for i, file := range listing.Files {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", listing.TotalCount-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "Directory Contents: No PDF files found in invoice directory\n\n"
	}

	text += "Available Tools:\n"
	text += "• invoice_extract_file - extract structured data from one invoice PDF\n"
	text += "• invoice_extract_directory - extract every invoice PDF in a directory\n"
	text += "• invoice_validate_file - check that a file is a readable PDF\n"
	text += "• invoice_search_directory - list invoice PDFs with optional name matching\n"
	text += "• invoice_stats_file - size, pages and metadata of one PDF\n"
	text += "• invoice_stats_directory - aggregate size statistics for a directory\n"
	text += "• invoice_server_info - this information\n"

	return mcp.NewToolResultText(text), nil
}

// extractDocument reads and extracts one file, degrading to the sentinel
// record when the document cannot be read.
func (s *Server) extractDocument(file pdf.FileInfo) (extract.InvoiceRecord, []extract.LineItem) {
	read, err := s.documents.ReadFile(file.Path)
	if err != nil {
		return extract.NewDegradedRecord(file.Name), nil
	}
	return s.extractor.Extract(file.Name, read.PageTexts)
}

// Formatting methods
func formatRecord(record extract.InvoiceRecord, items []extract.LineItem) string {
	text := fmt.Sprintf("Ngày hóa đơn: %s\n", record.IssueDate)
	text += fmt.Sprintf("Số hóa đơn: %s\n", record.InvoiceNumber)
	text += fmt.Sprintf("Đơn vị bán: %s\n", record.SellerName)
	text += fmt.Sprintf("Mã số thuế: %s\n", record.SellerTaxID)
	text += fmt.Sprintf("Ký hiệu: %s\n", record.SerialCode)
	text += fmt.Sprintf("Mã tra cứu: %s\n", record.LookupCode)
	text += fmt.Sprintf("Mã CQT: %s\n", record.TaxAuthorityCode)
	text += fmt.Sprintf("Link lấy hóa đơn: %s\n", record.LookupURL)
	text += fmt.Sprintf("Số tiền trước Thuế: %s\n", record.PreTaxAmount)
	text += fmt.Sprintf("Tiền thuế: %s\n", record.TaxAmount)
	text += fmt.Sprintf("Số tiền sau: %s\n", record.PostTaxAmount)
	text += fmt.Sprintf("Phân loại: %s\n", record.Category)

	if len(items) > 0 {
		text += fmt.Sprintf("\nLine Items (%d):\n", len(items))
		for i, item := range items {
			text += fmt.Sprintf("%d. %s | SL: %s | Đơn giá: %s | Thành tiền: %s\n",
				i+1, item.Description, item.Quantity, item.UnitPrice, item.Amount)
		}
	}

	return text
}

func (s *Server) formatSearchResult(result *pdf.SearchResult) string {
	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatDirectoryStats(result *pdf.DirectoryStats) string {
	text := "PDF Directory Statistics\n"
	text += fmt.Sprintf("Directory: %s\n", result.Directory)
	text += fmt.Sprintf("Total PDF files: %d\n", result.TotalFiles)
	text += fmt.Sprintf("Total size: %d bytes\n", result.TotalSize)

	if result.TotalFiles > 0 {
		text += fmt.Sprintf("Average file size: %d bytes\n", result.AverageFileSize)
		if result.LargestFileName != "" {
			text += fmt.Sprintf("Largest file: %s (%d bytes)\n", result.LargestFileName, result.LargestFileSize)
		}
		if result.SmallestFileName != "" {
			text += fmt.Sprintf("Smallest file: %s (%d bytes)\n", result.SmallestFileName, result.SmallestFileSize)
		}
	}

	return text
}

func (s *Server) formatFileStats(result *pdf.FileStats) string {
	text := "PDF File Statistics\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Modified: %s\n", result.ModifiedDate)

	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	if result.Author != "" {
		text += fmt.Sprintf("Author: %s\n", result.Author)
	}
	if result.Producer != "" {
		text += fmt.Sprintf("Producer: %s\n", result.Producer)
	}

	return text
}

// Run starts the MCP server over stdio
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting invoice MCP server in stdio mode")
		log.Printf("Invoice directory: %s", s.documents.InvoiceDirectory())
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
