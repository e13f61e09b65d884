package render

import "golang.org/x/net/html"

// Two-column layouts. Sidebar-routed kinds are fixed per layout; every other
// visible section stays in the main column in document order.

func modernTwoColumn(v view) *html.Node {
	pi := v.doc.PersonalInfo
	return div("layout columns",
		tagged("aside", "sidebar filled w-third",
			photo(pi),
			div("identity centered", nameHeading(pi), titleHeading(pi)),
			contactList(pi, contactOpts{class: "stacked", icons: true}),
		),
		add(tagged("main", "main w-two-thirds"), sectionBlocks(v.visible(), sectionOpts{},
			summaryBlock(v.doc.Summary, summaryHeading, ""))...),
	)
}

func creativeBold(v view) *html.Node {
	pi := v.doc.PersonalInfo
	mainList, side := splitSidebar(v.visible(), sidebarKinds)
	aside := add(tagged("aside", "sidebar filled w-third"),
		photo(pi),
		div("identity centered", nameHeading(pi), titleHeading(pi)),
		contactList(pi, contactOpts{class: "stacked", icons: true}),
	)
	add(aside, sectionBlocks(side, sectionOpts{class: "underlined", icon: true})...)
	return div("layout columns",
		aside,
		add(tagged("main", "main w-two-thirds"), sectionBlocks(mainList, sectionOpts{class: "timeline", icon: true},
			summaryBlock(v.doc.Summary, summaryHeading, "accent-border"))...),
	)
}

func executiveSummary(v view) *html.Node {
	pi := v.doc.PersonalInfo
	mainList, side := splitSidebar(v.visible(), sidebarKinds)
	mainCol := add(tagged("main", "main w-68"),
		tagged("header", "header left", nameHeading(pi), titleHeading(pi)),
	)
	add(mainCol, sectionBlocks(mainList, sectionOpts{class: "underlined"},
		summaryBlock(v.doc.Summary, summaryHeading, "underlined"))...)
	aside := add(tagged("aside", "sidebar divided w-32"),
		photo(pi),
		contactSection(pi),
	)
	add(aside, sectionBlocks(side, sectionOpts{class: "underlined"})...)
	return div("layout columns", mainCol, aside)
}

// infoSidebar draws skill and language levels as bars in a light sidebar.
func infoSidebar(v view) *html.Node {
	pi := v.doc.PersonalInfo
	mainList, side := splitSidebar(v.visible(), sidebarKinds)
	aside := add(tagged("aside", "sidebar light w-35"),
		photo(pi),
		div("identity centered", nameHeading(pi), titleHeading(pi)),
		contactSection(pi),
	)
	add(aside, sectionBlocks(side, sectionOpts{class: "muted", entry: EntryStyle{Bars: true}})...)
	return div("layout columns",
		aside,
		add(tagged("main", "main w-65"), sectionBlocks(mainList, sectionOpts{class: "ruled-items"},
			summaryBlock(v.doc.Summary, summaryHeading, ""))...),
	)
}
