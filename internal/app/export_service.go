package app

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"kairosai/internal/model"
	"kairosai/internal/repository"
)

var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// ExportService renders generated documents for download. Content is stored
// as markdown, so markdown export is a passthrough and plain text strips the
// markup.
type ExportService struct {
	genRepo *repository.GeneratedDocumentRepository
}

func NewExportService(genRepo *repository.GeneratedDocumentRepository) *ExportService {
	return &ExportService{genRepo: genRepo}
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (s *ExportService) Export(documentID uint, format string) (*ExportFile, error) {
	doc, err := s.genRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrGeneratedDocNotFound
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "markdown", "md":
		return &ExportFile{
			Filename:    exportFilename(doc, "md"),
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte(renderMarkdown(doc)),
		}, nil
	case "txt", "text", "plain":
		return &ExportFile{
			Filename:    exportFilename(doc, "txt"),
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(markdownToPlainText(renderMarkdown(doc))),
		}, nil
	default:
		return nil, ErrUnsupportedExportFormat
	}
}

func renderMarkdown(doc *model.GeneratedDocument) string {
	header := fmt.Sprintf("Document Type: %s\nCreated: %s\nVersion: %d\n\n",
		strings.ToUpper(doc.DocumentType),
		doc.CreatedAt.Format("January 2, 2006"),
		doc.Version,
	)
	return header + doc.Content
}

var (
	filenameUnsafe    = regexp.MustCompile(`[^\w\s-]`)
	filenameSeparator = regexp.MustCompile(`[-\s]+`)
)

func exportFilename(doc *model.GeneratedDocument, ext string) string {
	safeTitle := filenameUnsafe.ReplaceAllString(doc.Title, "")
	safeTitle = filenameSeparator.ReplaceAllString(safeTitle, "-")
	safeTitle = strings.Trim(safeTitle, "-")
	if safeTitle == "" {
		safeTitle = "document"
	}
	return fmt.Sprintf("%s-%s-v%d.%s", safeTitle, doc.DocumentType, doc.Version, ext)
}

var (
	markdownHeading  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	markdownEmphasis = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	markdownLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markdownBullet   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	markdownCode     = regexp.MustCompile("`([^`]*)`")
)

func markdownToPlainText(text string) string {
	text = markdownHeading.ReplaceAllString(text, "")
	text = markdownEmphasis.ReplaceAllString(text, "$2")
	text = markdownLink.ReplaceAllString(text, "$1")
	text = markdownBullet.ReplaceAllString(text, "- ")
	text = markdownCode.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
