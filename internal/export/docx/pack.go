package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	// A4 in twips.
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

// Pack writes d as a complete .docx package to w. The archive is built in
// memory first so a failure leaves w untouched.
func Pack(d Document, w io.Writer, now time.Time) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"[Content_Types].xml", literal(contentTypesXML)},
		{"_rels/.rels", literal(relsXML)},
		{"docProps/core.xml", func(w io.Writer) error { return writeCore(w, d.Title, now) }},
		{"word/document.xml", func(w io.Writer) error { return writeDocument(w, d) }},
	}
	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if err := p.write(fw); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func literal(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func writeCore(w io.Writer, title string, now time.Time) error {
	var esc bytes.Buffer
	if err := xml.EscapeText(&esc, []byte(title)); err != nil {
		return err
	}
	stamp := now.UTC().Format(time.RFC3339)
	_, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<dc:title>%s</dc:title>
<dc:creator>resume-composer</dc:creator>
<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`, esc.String(), stamp, stamp)
	return err
}

// tokenWriter emits prefixed WordprocessingML elements. encoding/xml has no
// notion of declared prefixes, so names are written with the "w:" prefix
// literally and the namespace is declared once on the root.
type tokenWriter struct {
	enc *xml.Encoder
	err error
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (t *tokenWriter) start(name string, attrs ...xml.Attr) {
	if t.err != nil {
		return
	}
	t.err = t.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (t *tokenWriter) end(name string) {
	if t.err != nil {
		return
	}
	t.err = t.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

// empty writes <name attrs/> as a start/end pair.
func (t *tokenWriter) empty(name string, attrs ...xml.Attr) {
	t.start(name, attrs...)
	t.end(name)
}

func (t *tokenWriter) text(s string) {
	if t.err != nil {
		return
	}
	t.err = t.enc.EncodeToken(xml.CharData(s))
}

func writeDocument(w io.Writer, d Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	t := &tokenWriter{enc: xml.NewEncoder(w)}

	t.start("w:document", attr("xmlns:w", nsMain))
	t.start("w:body")
	for _, p := range d.Paragraphs {
		t.paragraph(p, d.Font)
	}
	t.sectionProps(d.Margin)
	t.end("w:body")
	t.end("w:document")

	if t.err != nil {
		return t.err
	}
	return t.enc.Flush()
}

func (t *tokenWriter) paragraph(p Paragraph, font string) {
	t.start("w:p")
	t.start("w:pPr")
	if p.BottomBorder {
		t.start("w:pBdr")
		t.empty("w:bottom",
			attr("w:val", "single"),
			attr("w:sz", "6"),
			attr("w:space", "1"),
			attr("w:color", "auto"))
		t.end("w:pBdr")
	}
	if len(p.Tabs) > 0 {
		t.start("w:tabs")
		for _, ts := range p.Tabs {
			t.empty("w:tab", attr("w:val", ts.Align), attr("w:pos", strconv.Itoa(ts.Pos)))
		}
		t.end("w:tabs")
	}
	if p.Before > 0 || p.After > 0 {
		var sp []xml.Attr
		if p.Before > 0 {
			sp = append(sp, attr("w:before", strconv.Itoa(p.Before)))
		}
		if p.After > 0 {
			sp = append(sp, attr("w:after", strconv.Itoa(p.After)))
		}
		t.empty("w:spacing", sp...)
	}
	if p.Align != AlignLeft {
		t.empty("w:jc", attr("w:val", string(p.Align)))
	}
	t.end("w:pPr")

	for _, r := range p.Runs {
		t.run(r, font)
	}
	t.end("w:p")
}

func (t *tokenWriter) run(r Run, font string) {
	t.start("w:r")
	t.start("w:rPr")
	if font != "" {
		t.empty("w:rFonts",
			attr("w:ascii", font),
			attr("w:hAnsi", font),
			attr("w:cs", font),
			attr("w:eastAsia", font))
	}
	if r.Bold {
		t.empty("w:b")
	}
	if r.Italic {
		t.empty("w:i")
	}
	if r.Color != "" {
		t.empty("w:color", attr("w:val", r.Color))
	}
	if r.Size > 0 {
		sz := strconv.Itoa(r.Size)
		t.empty("w:sz", attr("w:val", sz))
		t.empty("w:szCs", attr("w:val", sz))
	}
	if r.Underline {
		t.empty("w:u", attr("w:val", "single"))
	}
	t.end("w:rPr")

	if r.Tab {
		t.empty("w:tab")
	}
	if r.Text != "" {
		t.start("w:t", attr("xml:space", "preserve"))
		t.text(r.Text)
		t.end("w:t")
	}
	t.end("w:r")
}

func (t *tokenWriter) sectionProps(margin int) {
	m := strconv.Itoa(margin)
	t.start("w:sectPr")
	t.empty("w:pgSz",
		attr("w:w", strconv.Itoa(pageWidthTwips)),
		attr("w:h", strconv.Itoa(pageHeightTwips)))
	t.empty("w:pgMar",
		attr("w:top", m),
		attr("w:right", m),
		attr("w:bottom", m),
		attr("w:left", m),
		attr("w:header", "708"),
		attr("w:footer", "708"),
		attr("w:gutter", "0"))
	t.end("w:sectPr")
}
