package docx

import "encoding/xml"

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// WordprocessingML elements are marshaled with literal w: prefixes; the
// namespace is declared once on the root element.

type document struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNS   string   `xml:"xmlns:w,attr"`
	Body    body     `xml:"w:body"`
}

type body struct {
	Paragraphs []paragraph   `xml:"w:p"`
	Section    sectionProps `xml:"w:sectPr"`
}

type paragraph struct {
	Props *paragraphProps `xml:"w:pPr,omitempty"`
	Runs  []run           `xml:"w:r"`
}

// Field order follows the CT_PPr sequence.
type paragraphProps struct {
	Border  *paragraphBorder `xml:"w:pBdr,omitempty"`
	Tabs    *tabs            `xml:"w:tabs,omitempty"`
	Spacing *spacing         `xml:"w:spacing,omitempty"`
	Indent  *indent          `xml:"w:ind,omitempty"`
	Justify *value           `xml:"w:jc,omitempty"`
}

type paragraphBorder struct {
	Bottom border `xml:"w:bottom"`
}

type border struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type tabs struct {
	Stops []tabStop `xml:"w:tab"`
}

type tabStop struct {
	Val string `xml:"w:val,attr"`
	Pos int    `xml:"w:pos,attr"`
}

type spacing struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

type indent struct {
	Left    int `xml:"w:left,attr"`
	Hanging int `xml:"w:hanging,attr"`
}

type value struct {
	Val string `xml:"w:val,attr"`
}

type run struct {
	Props *runProps `xml:"w:rPr,omitempty"`
	Tab   *struct{} `xml:"w:tab,omitempty"`
	Text  *text     `xml:"w:t,omitempty"`
}

// Field order follows the CT_RPr sequence.
type runProps struct {
	Bold   *struct{} `xml:"w:b,omitempty"`
	Italic *struct{} `xml:"w:i,omitempty"`
	Color  *value    `xml:"w:color,omitempty"`
	Size   *value    `xml:"w:sz,omitempty"`
}

type text struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type sectionProps struct {
	PageSize   pageSize   `xml:"w:pgSz"`
	PageMargin pageMargin `xml:"w:pgMar"`
}

type pageSize struct {
	Width  int `xml:"w:w,attr"`
	Height int `xml:"w:h,attr"`
}

type pageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

func textRun(s string, props *runProps) run {
	return run{Props: props, Text: &text{Space: "preserve", Value: s}}
}

func tabRun(s string, props *runProps) run {
	return run{Props: props, Tab: &struct{}{}, Text: &text{Space: "preserve", Value: s}}
}
