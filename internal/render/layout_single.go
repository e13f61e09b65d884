package render

import (
	"golang.org/x/net/html"

	"resume-composer/internal/model"
)

// Single-column layouts.

func classic(v view) *html.Node {
	pi := v.doc.PersonalInfo
	return div("layout single",
		tagged("header", "header centered ruled",
			photo(pi),
			nameHeading(pi),
			titleHeading(pi),
			contactList(pi, contactOpts{class: "inline", icons: true}),
		),
		add(tagged("main", "body"), sectionBlocks(v.visible(), sectionOpts{class: "underlined"},
			summaryBlock(v.doc.Summary, summaryHeading, "underlined"))...),
	)
}

// atsMinimal is plain serif text with no photo or icons, for applicant
// tracking parsers.
func atsMinimal(v view) *html.Node {
	pi := v.doc.PersonalInfo
	return div("layout single serif",
		tagged("header", "header centered",
			nameHeading(pi),
			titleHeading(pi),
			contactList(pi, contactOpts{class: "inline muted"}),
		),
		add(tagged("main", "body"), sectionBlocks(v.visible(), sectionOpts{class: "underlined plain"},
			summaryBlock(v.doc.Summary, summaryHeading, "underlined plain"))...),
	)
}

func techInnovator(v view) *html.Node {
	pi := v.doc.PersonalInfo
	return div("layout single mono",
		tagged("header", "header centered",
			nameHeading(pi),
			titleHeading(pi),
			contactList(pi, contactOpts{class: "inline", icons: true}),
		),
		add(tagged("main", "body"), sectionBlocks(v.visible(), sectionOpts{class: "indented", icon: true, prefix: "// "},
			summaryBlock(v.doc.Summary, "", "compact"))...),
	)
}

// academicCV moves education to the top for this rendering only; the other
// sections keep their document order.
func academicCV(v view) *html.Node {
	pi := v.doc.PersonalInfo
	return div("layout single serif",
		tagged("header", "header centered",
			nameHeading(pi),
			titleHeading(pi),
			contactList(pi, contactOpts{class: "inline", sep: " | "}),
		),
		add(tagged("main", "body"), sectionBlocks(educationFirst(v.visible()), sectionOpts{class: "underlined"},
			summaryBlock(v.doc.Summary, summaryHeading, "underlined"))...),
	)
}

func educationFirst(list []model.Section) []model.Section {
	out := make([]model.Section, 0, len(list))
	for _, s := range list {
		if s.Kind == model.KindEducation {
			out = append(out, s)
		}
	}
	for _, s := range list {
		if s.Kind != model.KindEducation {
			out = append(out, s)
		}
	}
	return out
}

// fresherSkillsFirst leads with education, skills and projects for
// candidates without much work history. The summary is shown only when set.
func fresherSkillsFirst(v view) *html.Node {
	pi := v.doc.PersonalInfo
	var summary *html.Node
	if v.doc.Summary != "" {
		summary = summaryBlock(v.doc.Summary, "", "centered")
	}
	return div("layout single",
		tagged("header", "header centered",
			nameHeading(pi),
			titleHeading(pi),
			contactList(pi, contactOpts{class: "inline muted"}),
		),
		add(tagged("main", "body"), sectionBlocks(leading(v.visible(),
			model.KindEducation, model.KindSkills, model.KindProjects), sectionOpts{class: "underlined"},
			summary)...),
	)
}

// leading puts the given kinds first in the given order, then the rest in
// document order.
func leading(list []model.Section, first ...model.SectionKind) []model.Section {
	out := make([]model.Section, 0, len(list))
	for _, k := range first {
		for _, s := range list {
			if s.Kind == k {
				out = append(out, s)
			}
		}
	}
	for _, s := range list {
		if !hasKind(first, s.Kind) {
			out = append(out, s)
		}
	}
	return out
}

func corporateHeader(v view) *html.Node {
	pi := v.doc.PersonalInfo
	return div("layout single bleed",
		tagged("header", "header band",
			nameHeading(pi),
			titleHeading(pi),
			contactList(pi, contactOpts{class: "inline", icons: true}),
		),
		add(tagged("main", "body padded"), sectionBlocks(v.visible(), sectionOpts{class: "ruled"},
			summaryBlock(v.doc.Summary, summaryHeading, ""))...),
	)
}
