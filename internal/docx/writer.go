package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// BlockKind distinguishes headings from body paragraphs
type BlockKind int

const (
	// KindParagraph is a Normal-style paragraph
	KindParagraph BlockKind = iota
	// KindHeading is a paragraph in a HeadingN style
	KindHeading
)

// Block is one paragraph of a document
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
}

// Document is an in-memory sequence of headings and paragraphs
type Document struct {
	blocks []Block
}

// New returns an empty document
func New() *Document {
	return &Document{}
}

// AddHeading appends a heading; level is clamped to 1..9
func (d *Document) AddHeading(text string, level int) {
	level = max(1, min(level, 9))
	d.blocks = append(d.blocks, Block{Kind: KindHeading, Level: level, Text: text})
}

// AddParagraph appends a body paragraph; an empty text yields an empty paragraph
func (d *Document) AddParagraph(text string) {
	d.blocks = append(d.blocks, Block{Kind: KindParagraph, Text: text})
}

// Blocks returns a copy of the document's blocks in order
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Save writes the document to path, replacing any existing file.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write docx %s: %w", path, err)
	}
	return nil
}

// Bytes renders the document as a .docx package
func (d *Document) Bytes() ([]byte, error) {
	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{documentPart, d.documentXML()},
	}

	for _, part := range parts {
		w, err := writer.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx: %w", err)
	}
	return output.Bytes(), nil
}

func (d *Document) documentXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, block := range d.blocks {
		writeParagraph(&sb, block)
	}
	sb.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

// writeParagraph renders newlines as <w:br/> and tabs as <w:tab/> so the
// reader turns them back into the same characters.
func writeParagraph(sb *strings.Builder, block Block) {
	sb.WriteString("<w:p>")
	if block.Kind == KindHeading {
		fmt.Fprintf(sb, `<w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, block.Level)
	}
	if block.Text != "" {
		sb.WriteString("<w:r>")
		var segment strings.Builder
		flush := func() {
			if segment.Len() == 0 {
				return
			}
			sb.WriteString(`<w:t xml:space="preserve">`)
			_ = xml.EscapeText(sb, []byte(segment.String()))
			sb.WriteString("</w:t>")
			segment.Reset()
		}
		for _, r := range block.Text {
			switch r {
			case '\n':
				flush()
				sb.WriteString("<w:br/>")
			case '\t':
				flush()
				sb.WriteString("<w:tab/>")
			case '\r':
			default:
				segment.WriteRune(r)
			}
		}
		flush()
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>")
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`
