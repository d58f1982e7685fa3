// Package docx reads and writes the subset of WordprocessingML (.docx) the assistant needs:
// body paragraphs as plain text, and documents made of headings and paragraphs.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// ReadParagraphs returns the text of every body-level paragraph in document order.
// Empty paragraphs are returned as empty strings. Paragraphs nested in tables,
// text boxes and similar containers are not body paragraphs and are skipped.
func ReadParagraphs(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &FormatError{Path: path, Message: "not a zip package", Cause: err}
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == documentPart {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, &FormatError{Path: path, Message: "document.xml not found"}
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, &FormatError{Path: path, Message: "open document.xml", Cause: err}
	}
	defer rc.Close()

	paragraphs, err := parseParagraphs(rc)
	if err != nil {
		return nil, &FormatError{Path: path, Message: "parse document.xml", Cause: err}
	}
	return paragraphs, nil
}

// parseParagraphs walks the document XML keeping a stack of element names so
// that only <w:p> elements directly under <w:body> are collected.
func parseParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		stack      []string
		current    strings.Builder
		inBodyPara bool
		paraDepth  int
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == "p" && !inBodyPara && len(stack) > 0 && stack[len(stack)-1] == "body" {
				inBodyPara = true
				paraDepth = len(stack)
				current.Reset()
			}
			if inBodyPara {
				switch name {
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if inBodyPara && t.Name.Local == "p" && len(stack) == paraDepth {
				paragraphs = append(paragraphs, current.String())
				inBodyPara = false
			}
		case xml.CharData:
			if inBodyPara && len(stack) > 0 && stack[len(stack)-1] == "t" {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
