// Package extract turns uploaded résumé bytes into plain text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Content types understood by Extract.
const (
	ContentTypePDF   = "application/pdf"
	ContentTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePlain = "text/plain"
)

// ErrUnsupportedType is returned for content types no parser handles.
var ErrUnsupportedType = errors.New("unsupported file type")

// ParseError reports bytes that are not a well-formed document of the
// declared format.
type ParseError struct {
	ContentType string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.ContentType, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extractor converts document bytes into a single string spanning all pages.
// It holds no state between calls.
type Extractor struct {
	logger *zap.Logger
}

// New creates an Extractor. A nil logger disables logging.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract parses data as contentType and returns its full text. An empty
// content type is treated as PDF. The whole document is extracted before
// Extract returns.
func (e *Extractor) Extract(ctx context.Context, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = ContentTypePDF
	}

	var (
		text string
		err  error
	)
	switch contentType {
	case ContentTypePDF:
		text, err = extractPDFText(ctx, data)
	case ContentTypeDOCX:
		text, err = extractDocxText(data)
	case ContentTypePlain:
		if !utf8.Valid(data) {
			err = &ParseError{ContentType: contentType, Err: errors.New("invalid utf-8")}
		} else {
			text = string(data)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if err != nil {
		e.logger.Warn("text extraction failed",
			zap.String("content_type", contentType),
			zap.Int("size_bytes", len(data)),
			zap.Error(err))
		return "", err
	}

	e.logger.Debug("text extracted",
		zap.String("content_type", contentType),
		zap.Int("size_bytes", len(data)),
		zap.Int("text_len", len(text)))
	return text, nil
}

// JoinPages joins each page's fragments with a single space and
// concatenates the pages in order with nothing between them.
func JoinPages(pages [][]string) string {
	var b strings.Builder
	for _, fragments := range pages {
		b.WriteString(strings.Join(fragments, " "))
	}
	return b.String()
}

// ContentTypeForFile guesses the content type from a file name's extension.
// Unknown extensions fall back to PDF and are left to the parser to reject.
func ContentTypeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return ContentTypeDOCX
	case ".txt":
		return ContentTypePlain
	default:
		return ContentTypePDF
	}
}
