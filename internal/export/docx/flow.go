// Package docx serializes a document straight into a reflowable
// word-processing file. It does not use the visual templates: content is laid
// out as paragraphs of styled runs with right-aligned tab stops for dates.
package docx

import "strings"

// Sizes are in half-points and spacing in twentieths of a point (twips), the
// units WordprocessingML uses.
const (
	SizeName    = 48
	SizeTitle   = 32
	SizeHeading = 28
	SizeBody    = 22
	SizeSmall   = 20

	// MarginTwips is half an inch on every side.
	MarginTwips = 720
	// TabStopMax is the right edge of the text column on A4 with the default
	// margins, where date ranges are right-aligned.
	TabStopMax = 9026
)

type Align string

const (
	AlignLeft   Align = ""
	AlignCenter Align = "center"
)

type Run struct {
	Text string
	// Tab emits a tab before Text.
	Tab       bool
	Bold      bool
	Italic    bool
	Underline bool
	// Size in half-points; zero inherits.
	Size  int
	Color string
}

type TabStop struct {
	Align string
	Pos   int
}

type Paragraph struct {
	Runs         []Run
	Align        Align
	Before       int
	After        int
	BottomBorder bool
	Tabs         []TabStop
}

// Text returns the paragraph text with tabs written as "\t".
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		if r.Tab {
			b.WriteByte('\t')
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

// Document is the flow form of an export: one font, one page setup and an
// ordered list of paragraphs.
type Document struct {
	Title      string
	Font       string
	Margin     int
	Paragraphs []Paragraph
}
