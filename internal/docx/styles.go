package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// HeadingStyle is the run formatting of one heading level
type HeadingStyle struct {
	Size  int // half-points
	Color string
}

// headingStyles follows the usual Word defaults: larger and bolder at the top.
var headingStyles = map[int]HeadingStyle{
	1: {Size: 32, Color: "2F5496"},
	2: {Size: 26, Color: "2F5496"},
	3: {Size: 24, Color: "1F3763"},
}

var stylesXML = buildStylesXML()

func buildStylesXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	sb.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="22"/></w:rPr></w:style>`)
	for level := 1; level <= 9; level++ {
		style, ok := headingStyles[level]
		if !ok {
			style = HeadingStyle{Size: 22, Color: "1F3763"}
		}
		fmt.Fprintf(&sb,
			`<w:style w:type="paragraph" w:styleId="Heading%d"><w:name w:val="heading %d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>`+
				`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="0"/><w:outlineLvl w:val="%d"/></w:pPr>`+
				`<w:rPr><w:b/><w:color w:val="%s"/><w:sz w:val="%d"/></w:rPr></w:style>`,
			level, level, level-1, style.Color, style.Size)
	}
	sb.WriteString(`</w:styles>`)
	return sb.String()
}
