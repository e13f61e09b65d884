package render

import (
	"bytes"
	_ "embed"
	"io"

	"golang.org/x/net/html"
)

//go:embed style.css
var stylesheet string

// Stylesheet returns the CSS shared by every layout.
func Stylesheet() string { return stylesheet }

// HTMLDocument wraps a page root in a standalone HTML document with the
// stylesheet inlined, so it renders the same from disk, over HTTP or in a
// headless browser.
func HTMLDocument(page *html.Node, title string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	head := tagged("head", "",
		el("meta", []string{"charset", "utf-8"}),
		tagged("title", "", text(title)),
		tagged("style", "", text(stylesheet)),
	)
	return add(doc, el("html", []string{"lang", "en"},
		head,
		tagged("body", "", page),
	))
}

// WriteHTML serializes n.
func WriteHTML(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderHTML renders in and returns a complete HTML document.
func RenderHTML(in Input) ([]byte, error) {
	page := Render(in.Template, in.Document, in.Theme, in.Font)
	var buf bytes.Buffer
	if err := WriteHTML(&buf, HTMLDocument(page, documentTitle(in))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func documentTitle(in Input) string {
	return orDefault(in.Document.PersonalInfo.Name, placeholderName) + " - Resume"
}
