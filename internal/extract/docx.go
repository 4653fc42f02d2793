package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// extractDocxText treats the document body as a single page whose fragments
// are its paragraphs.
func extractDocxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ParseError{ContentType: ContentTypeDOCX, Err: errors.New("empty document")}
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{ContentType: ContentTypeDOCX, Err: err}
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", &ParseError{ContentType: ContentTypeDOCX, Err: err}
	}
	return JoinPages([][]string{paragraphs}), nil
}

// docxParagraphs collects the w:t runs of each w:p element, skipping
// paragraphs without text. Tabs and breaks inside a run become spaces.
func docxParagraphs(documentXML string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
		inRun      bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				inRun = true
			case "t":
				inText = true
			case "tab", "br", "cr":
				if inRun {
					current.WriteByte(' ')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				inRun = false
			case "t":
				inText = false
			case "p":
				if current.Len() > 0 {
					paragraphs = append(paragraphs, current.String())
					current.Reset()
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return paragraphs, nil
}
