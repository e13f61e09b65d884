// Package render turns a document into a page-shaped HTML tree using one of
// ten layouts. Layouts are pure: the same document, theme and font always
// produce the same tree.
package render

import (
	"golang.org/x/net/html"

	"resume-composer/internal/model"
)

type TemplateID string

const (
	Classic            TemplateID = "classic"
	ATSMinimal         TemplateID = "ats-minimal"
	ModernTwoColumn    TemplateID = "modern-two-column"
	CreativeBold       TemplateID = "creative-bold"
	ExecutiveSummary   TemplateID = "executive-summary"
	TechInnovator      TemplateID = "tech-innovator"
	AcademicCV         TemplateID = "academic-cv"
	FresherSkillsFirst TemplateID = "fresher-skills-first"
	InfoSidebar        TemplateID = "info-sidebar"
	CorporateHeader    TemplateID = "corporate-header"
)

// PreviewID is the element id of the page root. The raster exporter looks
// the page up by this id.
const PreviewID = "resume-preview"

// Input bundles everything a rendering depends on. The engine reads no other
// state.
type Input struct {
	Document model.Document
	Template TemplateID
	Theme    Theme
	Font     Font
}

// Presentation is the user's choice of template, theme and font, kept apart
// from the document so one document can be shown many ways.
type Presentation struct {
	Template TemplateID
	Theme    Theme
	Font     Font
}

// DefaultPresentation is the classic layout in the default theme and font.
var DefaultPresentation = Presentation{Template: Classic, Theme: DefaultTheme, Font: DefaultFont}

// Input pairs p with doc.
func (p Presentation) Input(doc model.Document) Input {
	return Input{Document: doc, Template: p.Template, Theme: p.Theme, Font: p.Font}
}

// view is what a layout gets to work with.
type view struct {
	doc   model.Document
	theme Theme
	font  FontFamily
}

type layout func(v view) *html.Node

// Template describes one selectable layout.
type Template struct {
	ID   TemplateID `json:"id"`
	Name string     `json:"name"`

	layout layout
}

var templates = []Template{
	{ID: Classic, Name: "Classic", layout: classic},
	{ID: ATSMinimal, Name: "ATS Minimal", layout: atsMinimal},
	{ID: ModernTwoColumn, Name: "Modern Two Column", layout: modernTwoColumn},
	{ID: CreativeBold, Name: "Creative Bold", layout: creativeBold},
	{ID: ExecutiveSummary, Name: "Executive Summary", layout: executiveSummary},
	{ID: TechInnovator, Name: "Tech Innovator", layout: techInnovator},
	{ID: AcademicCV, Name: "Academic CV", layout: academicCV},
	{ID: FresherSkillsFirst, Name: "Fresher Skills First", layout: fresherSkillsFirst},
	{ID: InfoSidebar, Name: "Info Sidebar", layout: infoSidebar},
	{ID: CorporateHeader, Name: "Corporate Header", layout: corporateHeader},
}

// Templates lists the layouts in selector order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Lookup returns the template for id. Unknown or empty ids resolve to Classic
// with ok=false.
func Lookup(id TemplateID) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return templates[0], false
}

// Render lays doc out with the template id. The result is the page root: a
// fixed A4-sized element carrying the theme colors and font.
func Render(id TemplateID, doc model.Document, theme Theme, font Font) *html.Node {
	t, _ := Lookup(id)
	return t.Render(doc, theme, font)
}

// Render lays doc out with t.
func (t Template) Render(doc model.Document, theme Theme, font Font) *html.Node {
	fam, _ := LookupFont(font)
	v := view{doc: doc, theme: theme.Normalize(), font: fam}
	style := "--primary-color: " + v.theme.Primary +
		"; --secondary-color: " + v.theme.Secondary +
		"; font-family: " + fam.CSSStack()
	root := el("div", []string{
		"id", PreviewID,
		"class", "page tpl-" + string(t.ID),
		"style", style,
		"data-template", string(t.ID),
		"data-font", string(fam.Token),
	})
	return add(root, t.layout(v))
}

// visible returns the sections a layout may show.
func (v view) visible() []model.Section {
	return v.doc.VisibleSections()
}
