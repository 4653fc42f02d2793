package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractPDFText reads every page in order. The fragments of a page are the
// strings of its show-text operations, top row first and left to right
// within a row.
func extractPDFText(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", &ParseError{ContentType: ContentTypePDF, Err: errors.New("empty document")}
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{ContentType: ContentTypePDF, Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{ContentType: ContentTypePDF, Err: err}
	}

	numPages := reader.NumPage()
	pages := make([][]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", &ParseError{ContentType: ContentTypePDF, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		pages = append(pages, pageFragments(rows))
	}

	return JoinPages(pages), nil
}

func pageFragments(rows pdf.Rows) []string {
	var fragments []string
	for _, row := range rows {
		for _, text := range row.Content {
			fragments = append(fragments, text.S)
		}
	}
	return fragments
}
