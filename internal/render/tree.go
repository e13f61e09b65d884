package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// el builds an element node. Attributes are given as key/value pairs; nil
// children are skipped so optional blocks can be passed inline.
func el(tag string, attrs []string, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return add(n, children...)
}

// div and friends cover the common case of an element with only a class.
func div(class string, children ...*html.Node) *html.Node {
	return el("div", classAttr(class), children...)
}

func span(class string, children ...*html.Node) *html.Node {
	return el("span", classAttr(class), children...)
}

func tagged(tag, class string, children ...*html.Node) *html.Node {
	return el(tag, classAttr(class), children...)
}

func classAttr(class string) []string {
	if class == "" {
		return nil
	}
	return []string{"class", class}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// add appends the non-nil children to n and returns n.
func add(n *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		n.AppendChild(c)
	}
	return n
}

func setAttr(n *html.Node, key, val string) *html.Node {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return n
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent concatenates every text node under n in document order.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// FindAll returns every element under n (n included) for which match is true.
func FindAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByAttr matches elements carrying key=val.
func ByAttr(key, val string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return ok && v == val
	}
}

// HasAttr matches elements carrying key.
func HasAttr(key string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		_, ok := Attr(n, key)
		return ok
	}
}
