package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/atsresumie/latex-studio/internal/latex"
)

// ContentType is the MIME type of the generated package
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Error represents a failure assembling the Word package
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("docx error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="%s"><w:docDefaults>` +
	`<w:rPrDefault><w:rPr><w:rFonts w:ascii="%[2]s" w:hAnsi="%[2]s" w:cs="%[2]s"/><w:sz w:val="%[3]d"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="%[4]d" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
	`</w:docDefaults></w:styles>`

// Generate converts LaTeX into a .docx package. Content keeps its source order;
// when no sections are found the stripped document becomes plain paragraphs.
func Generate(src string) ([]byte, error) {
	st := ResolveStyle(src)
	doc := buildDocument(src, st)

	docXML, err := xml.Marshal(doc)
	if err != nil {
		return nil, &Error{Message: "failed to encode document.xml", Cause: err}
	}

	var fontName bytes.Buffer
	if err := xml.EscapeText(&fontName, []byte(st.Font)); err != nil {
		return nil, &Error{Message: "failed to escape font name", Cause: err}
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", append([]byte(xml.Header), docXML...)},
		{"word/styles.xml", []byte(fmt.Sprintf(stylesXML, wordNamespace, fontName.String(), st.BodySize, st.LineSpacing))},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, &Error{Message: "failed to create " + part.name, Cause: err}
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, &Error{Message: "failed to write " + part.name, Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &Error{Message: "failed to finalize package", Cause: err}
	}
	return buf.Bytes(), nil
}

func buildDocument(src string, st Style) document {
	var paras []paragraph

	if name := latex.ExtractName(src); name != "" {
		paras = append(paras, paragraph{
			Props: &paragraphProps{Justify: &value{Val: "center"}},
			Runs:  []run{textRun(name, &runProps{Bold: &struct{}{}, Size: size(st.NameSize)})},
		})
	}
	if contacts := latex.ExtractContacts(src); len(contacts) > 0 {
		paras = append(paras, paragraph{
			Props: &paragraphProps{Spacing: &spacing{After: 120}, Justify: &value{Val: "center"}},
			Runs:  []run{textRun(strings.Join(contacts, " | "), &runProps{Color: &value{Val: "555555"}, Size: size(st.SmallSize)})},
		})
	}

	sections := ExtractDocxSections(src)
	if len(sections) == 0 {
		for _, el := range fallbackElements(src) {
			paras = append(paras, elementParagraph(el, st))
		}
	}
	for _, sec := range sections {
		paras = append(paras, headingParagraph(sec.Heading, st))
		for _, el := range sec.Elements {
			paras = append(paras, elementParagraph(el, st))
		}
	}

	return document{
		XMLNS: wordNamespace,
		Body: body{
			Paragraphs: paras,
			Section: sectionProps{
				PageSize: pageSize{Width: st.PageWidth, Height: st.PageHeight},
				PageMargin: pageMargin{
					Top:    st.MarginTop,
					Right:  st.MarginRight,
					Bottom: st.MarginBottom,
					Left:   st.MarginLeft,
					Header: 720,
					Footer: 720,
				},
			},
		},
	}
}

func headingParagraph(heading string, st Style) paragraph {
	return paragraph{
		Props: &paragraphProps{
			Border:  &paragraphBorder{Bottom: border{Val: "single", Size: 6, Space: 1, Color: "000000"}},
			Spacing: &spacing{Before: 200, After: 80},
		},
		Runs: []run{textRun(strings.ToUpper(heading), &runProps{Bold: &struct{}{}, Size: size(st.HeadingSize)})},
	}
}

func elementParagraph(el Element, st Style) paragraph {
	rightTab := &tabs{Stops: []tabStop{{Val: "right", Pos: st.ContentWidth()}}}

	switch el.Kind {
	case KindEntry:
		runs := []run{textRun(el.Text, &runProps{Bold: &struct{}{}})}
		if el.Aside != "" {
			runs = append(runs, tabRun(el.Aside, nil))
		}
		return paragraph{Props: &paragraphProps{Tabs: rightTab, Spacing: &spacing{Before: 80}}, Runs: runs}

	case KindSubentry:
		runs := []run{textRun(el.Text, &runProps{Italic: &struct{}{}})}
		if el.Aside != "" {
			runs = append(runs, tabRun(el.Aside, &runProps{Italic: &struct{}{}}))
		}
		return paragraph{Props: &paragraphProps{Tabs: rightTab}, Runs: runs}

	case KindBullet:
		return paragraph{
			Props: &paragraphProps{Indent: &indent{Left: 360, Hanging: 180}},
			Runs:  []run{textRun("• "+el.Text, nil)},
		}

	default:
		return paragraph{
			Props: &paragraphProps{Spacing: &spacing{After: 80}},
			Runs:  []run{textRun(el.Text, nil)},
		}
	}
}

func size(halfPoints int) *value {
	return &value{Val: strconv.Itoa(halfPoints)}
}
