package docx

import (
	"fmt"
	"strings"

	"resume-composer/internal/model"
	"resume-composer/internal/render"
)

const (
	placeholderName  = "Your Name"
	placeholderTitle = "Your Title"
	contactSep       = " | "
	linkColor        = "0000FF"
)

type builder struct {
	primary string
	out     []Paragraph
}

// Build lays doc out as a flow document. Visible sections other than
// interests follow in document order; interests always come last as one
// comma-joined line. Sections without entries are skipped.
func Build(doc model.Document, theme render.Theme, font render.Font) Document {
	fam, _ := render.LookupFont(font)
	b := &builder{primary: hexColor(theme.Primary)}
	pi := doc.PersonalInfo

	b.para(Paragraph{Align: AlignCenter, Runs: []Run{
		{Text: orDefault(pi.Name, placeholderName), Size: SizeName, Bold: true, Color: b.primary},
	}})
	b.para(Paragraph{Align: AlignCenter, After: 200, Runs: []Run{
		{Text: orDefault(pi.Title, placeholderTitle), Size: SizeTitle},
	}})
	b.para(Paragraph{Align: AlignCenter, After: 400, Runs: []Run{
		{Text: strings.Join(contactParts(pi), contactSep), Size: SizeSmall},
	}})

	if doc.Summary != "" {
		b.heading("Summary")
		b.lines(doc.Summary, Run{Size: SizeBody})
	}

	var interests *model.Section
	for _, s := range doc.VisibleSections() {
		if s.Kind == model.KindInterests {
			s := s
			interests = &s
			continue
		}
		if len(s.Items) == 0 {
			continue
		}
		b.heading(s.Title)
		for _, it := range s.Items {
			b.entry(it)
		}
	}
	if interests != nil && len(interests.Items) > 0 {
		names := make([]string, 0, len(interests.Items))
		for _, it := range interests.Items {
			if in, ok := it.(model.Interest); ok {
				names = append(names, in.Name)
			}
		}
		b.heading(interests.Title)
		b.para(Paragraph{Runs: []Run{{Text: strings.Join(names, ", "), Size: SizeBody}}})
	}

	return Document{
		Title:      orDefault(pi.Name, placeholderName) + " - Resume",
		Font:       fam.Name,
		Margin:     MarginTwips,
		Paragraphs: b.out,
	}
}

func (b *builder) para(p Paragraph) {
	b.out = append(b.out, p)
}

func (b *builder) heading(title string) {
	b.para(Paragraph{
		Before:       300,
		After:        150,
		BottomBorder: true,
		Runs:         []Run{{Text: title, Size: SizeHeading, Bold: true, Color: b.primary}},
	})
}

// lines emits one paragraph per line of s, each styled like tmpl.
func (b *builder) lines(s string, tmpl Run) {
	for _, line := range model.Lines(s) {
		r := tmpl
		r.Text = line
		b.para(Paragraph{After: 100, Runs: []Run{r}})
	}
}

func (b *builder) entry(e model.Entry) {
	rightTab := []TabStop{{Align: "right", Pos: TabStopMax}}
	switch v := e.(type) {
	case model.Experience:
		b.para(Paragraph{Tabs: rightTab, After: 50, Runs: []Run{
			{Text: v.Role + " - " + v.Company, Size: SizeBody, Bold: true},
			{Text: v.Period(), Tab: true, Size: SizeSmall},
		}})
		b.lines(v.Description, Run{Size: SizeSmall, Italic: true})
	case model.Education:
		b.para(Paragraph{Tabs: rightTab, Runs: []Run{
			{Text: v.Institution, Size: SizeBody, Bold: true},
			{Text: v.Period(), Tab: true, Size: SizeSmall},
		}})
		b.para(Paragraph{After: 200, Runs: []Run{{Text: v.Degree, Size: SizeSmall, Italic: true}}})
		b.lines(v.Details, Run{Size: SizeSmall})
	case model.Skill:
		b.para(Paragraph{After: 100, Runs: []Run{
			{Text: v.Name + ": ", Size: SizeBody, Bold: true},
			{Text: string(v.Level), Size: SizeBody},
		}})
	case model.Project:
		b.para(Paragraph{Runs: []Run{{Text: v.Name, Size: SizeBody, Bold: true}}})
		if v.Link != "" {
			b.para(Paragraph{Runs: []Run{{Text: v.Link, Size: SizeSmall, Color: linkColor, Underline: true}}})
		}
		b.lines(v.Description, Run{Size: SizeSmall, Italic: true})
	case model.Certification:
		b.para(Paragraph{After: 100, Runs: []Run{{Text: certificationLine(v), Size: SizeBody}}})
	case model.LanguageSkill:
		b.para(Paragraph{After: 100, Runs: []Run{
			{Text: v.Name + ": ", Size: SizeBody, Bold: true},
			{Text: string(v.Proficiency), Size: SizeBody},
		}})
	case model.Interest:
		b.para(Paragraph{Runs: []Run{{Text: v.Name, Size: SizeBody}}})
	default:
		panic(fmt.Sprintf("docx: unhandled entry type %T", e))
	}
}

func certificationLine(c model.Certification) string {
	s := c.Name
	if c.Issuer != "" {
		s += " - " + c.Issuer
	}
	if c.Date != "" {
		s += " (" + c.Date + ")"
	}
	return s
}

func contactParts(pi model.PersonalInfo) []string {
	var out []string
	for _, v := range []string{pi.Email, pi.Phone, pi.Location, pi.Website, pi.LinkedIn, pi.GitHub} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// hexColor converts a theme color to the six-digit form WordprocessingML
// expects. Named colors fall back to the default primary.
func hexColor(c string) string {
	c = strings.TrimPrefix(c, "#")
	switch len(c) {
	case 3:
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	case 6:
	default:
		return hexColor(render.DefaultTheme.Primary)
	}
	for _, r := range c {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return hexColor(render.DefaultTheme.Primary)
		}
	}
	return strings.ToUpper(c)
}
