package segmenter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/legalmind/legalmind/internal/models"
)

var (
	// ErrDocumentFormat signals an upload that cannot be parsed as the
	// expected document format.
	ErrDocumentFormat = errors.New("unreadable document format")

	// ErrEmptyDocument signals that no clauses survived length filtering.
	ErrEmptyDocument = errors.New("no readable content found in the document")
)

type SegmenterConfig struct {
	// MinClauseLength drops segments shorter than this after trimming,
	// filtering out formatting artifacts. 10 for service-backed analysis,
	// 20 for the keyword-only mode.
	MinClauseLength int
}

type Segmenter struct {
	config SegmenterConfig
}

func NewWithConfig(config SegmenterConfig) Segmenter {
	if config.MinClauseLength == 0 {
		config.MinClauseLength = 10
	}
	return Segmenter{config: config}
}

// Segment extracts an ordered sequence of clauses from a raw document.
// The format is chosen by filename extension: .docx, .html/.htm, or plain
// text. The returned slice is materialized once and preserves document
// order; Index is the clause's position after filtering.
func (s Segmenter) Segment(data []byte, filename string) ([]models.Clause, error) {
	var (
		segments []string
		err      error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		segments, err = extractDocxParagraphs(data)
	case ".html", ".htm":
		segments, err = extractHTMLSegments(data)
	default:
		segments = extractTextSegments(data)
	}
	if err != nil {
		return nil, err
	}

	clauses := make([]models.Clause, 0, len(segments))
	for _, segment := range segments {
		text := strings.TrimSpace(segment)
		if len(text) < s.config.MinClauseLength {
			continue
		}
		clauses = append(clauses, models.Clause{Text: text, Index: len(clauses)})
	}

	if len(clauses) == 0 {
		return nil, ErrEmptyDocument
	}
	return clauses, nil
}

// documentXML mirrors the paragraph/run structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

func extractDocxParagraphs(data []byte) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid docx archive", ErrDocumentFormat)
	}

	var content []byte
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentFormat, err)
		}
		content, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentFormat, err)
		}
		break
	}
	if content == nil {
		return nil, fmt.Errorf("%w: missing word/document.xml", ErrDocumentFormat)
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentFormat, err)
	}

	var paragraphs []string
	for _, para := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		paragraphs = append(paragraphs, b.String())
	}
	return paragraphs, nil
}

func extractHTMLSegments(data []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentFormat, err)
	}

	var segments []string
	doc.Find("p, li, h1, h2, h3, h4").Each(func(_ int, selection *goquery.Selection) {
		// Collapse runs of whitespace left over from markup.
		segments = append(segments, strings.Join(strings.Fields(selection.Text()), " "))
	})

	// Pages without block markup still carry text in the body.
	if len(segments) == 0 {
		if body := strings.Join(strings.Fields(doc.Find("body").Text()), " "); body != "" {
			segments = append(segments, body)
		}
	}
	return segments, nil
}

func extractTextSegments(data []byte) []string {
	var segments []string
	for _, line := range strings.Split(string(data), "\n") {
		segments = append(segments, line)
	}
	return segments
}
