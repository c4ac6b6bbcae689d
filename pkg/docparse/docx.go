package docparse

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
)

// ExtractedDocument is the flat text plus a minimal HTML rendering of an
// uploaded .docx file, matching what downstream parsing and the chat context
// expect.
type ExtractedDocument struct {
	Text string
	HTML string
}

var errNoDocumentXML = errors.New("docx: missing word/document.xml")

// ExtractDocx reads a .docx (OOXML) package and returns its paragraph text.
// This is the one failure path of the parsing pipeline: a file that is not a
// readable OOXML package surfaces as a document-processing error.
func ExtractDocx(r io.ReaderAt, size int64) (*ExtractedDocument, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("docx: open package: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, errNoDocumentXML
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: open document part: %w", err)
	}
	defer rc.Close()

	paragraphs, err := decodeParagraphs(rc)
	if err != nil {
		return nil, fmt.Errorf("docx: decode document part: %w", err)
	}

	var htmlBuf strings.Builder
	for _, p := range paragraphs {
		htmlBuf.WriteString("<p>")
		htmlBuf.WriteString(html.EscapeString(p))
		htmlBuf.WriteString("</p>\n")
	}

	return &ExtractedDocument{
		Text: strings.Join(paragraphs, "\n"),
		HTML: htmlBuf.String(),
	}, nil
}

// decodeParagraphs walks the WordprocessingML token stream, collecting the
// text runs of each w:p element. Tabs and explicit breaks are preserved so
// the label/numbered-list regexes downstream see line structure.
func decodeParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var cur strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, cur.String())
				cur.Reset()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}

	if cur.Len() > 0 {
		paragraphs = append(paragraphs, cur.String())
	}
	return paragraphs, nil
}
