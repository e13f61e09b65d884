package render

import (
	"golang.org/x/net/html"

	"resume-composer/internal/model"
	"resume-composer/internal/sections"
)

const (
	placeholderName  = "Your Name"
	placeholderTitle = "Your Title"
	summaryHeading   = "Summary"
)

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nameHeading(pi model.PersonalInfo) *html.Node {
	return tagged("h1", "name", text(orDefault(pi.Name, placeholderName)))
}

func titleHeading(pi model.PersonalInfo) *html.Node {
	return tagged("h2", "headline", text(orDefault(pi.Title, placeholderTitle)))
}

func photo(pi model.PersonalInfo) *html.Node {
	if pi.ProfilePicture == "" {
		return nil
	}
	return el("img", []string{"class", "photo", "src", pi.ProfilePicture, "alt", "Profile"})
}

type contactField struct {
	key   string
	value string
	link  bool
}

func contactFields(pi model.PersonalInfo) []contactField {
	all := []contactField{
		{key: "email", value: pi.Email},
		{key: "phone", value: pi.Phone},
		{key: "location", value: pi.Location},
		{key: "website", value: pi.Website, link: true},
		{key: "linkedin", value: pi.LinkedIn, link: true},
		{key: "github", value: pi.GitHub, link: true},
	}
	out := all[:0]
	for _, f := range all {
		if f.value != "" {
			out = append(out, f)
		}
	}
	return out
}

type contactOpts struct {
	class string
	// sep is placed as text between items when set.
	sep   string
	icons bool
}

// contactList renders the present contact fields, or nil when there are none.
func contactList(pi model.PersonalInfo, o contactOpts) *html.Node {
	fields := contactFields(pi)
	if len(fields) == 0 {
		return nil
	}
	list := div("contact " + o.class)
	for i, f := range fields {
		if i > 0 && o.sep != "" {
			list.AppendChild(span("contact-sep", text(o.sep)))
		}
		item := el("span", []string{"class", "contact-item", "data-field", f.key})
		if o.icons {
			item.AppendChild(span("icon icon-" + f.key))
		}
		if f.link {
			item.AppendChild(el("a", []string{"href", FormatURL(f.value)}, text(DisplayURL(f.value))))
		} else {
			item.AppendChild(text(f.value))
		}
		list.AppendChild(item)
	}
	return list
}

// contactSection is the headed "Contact" block used in sidebars.
func contactSection(pi model.PersonalInfo) *html.Node {
	list := contactList(pi, contactOpts{class: "stacked", icons: true})
	if list == nil {
		return nil
	}
	return el("section", []string{"class", "section contact-section", "data-section", "contact"},
		tagged("h3", "section-title", text("Contact")),
		list,
	)
}

type sectionOpts struct {
	class  string
	icon   bool
	prefix string
	entry  EntryStyle
}

func sectionHeading(title string, kind model.SectionKind, o sectionOpts) *html.Node {
	h := tagged("h3", "section-title")
	if o.icon {
		if ic := sections.IconFor(kind); ic != "" {
			h.AppendChild(el("span", []string{"class", "icon icon-" + string(ic), "data-icon", string(ic)}))
		}
	}
	h.AppendChild(text(o.prefix + title))
	return h
}

func sectionBlock(s model.Section, o sectionOpts) *html.Node {
	title := s.Title
	if title == "" {
		title = sections.Title(s.Kind)
	}
	items := div("section-items")
	for _, it := range s.Items {
		items.AppendChild(FormatEntry(it, o.entry))
	}
	return el("section", []string{"class", "section " + o.class, "data-section", string(s.Kind)},
		sectionHeading(title, s.Kind, o),
		items,
	)
}

// sectionBlocks renders list after any leading blocks.
func sectionBlocks(list []model.Section, o sectionOpts, lead ...*html.Node) []*html.Node {
	out := make([]*html.Node, 0, len(lead)+len(list))
	out = append(out, lead...)
	for _, s := range list {
		out = append(out, sectionBlock(s, o))
	}
	return out
}

// summaryBlock renders the summary. An empty heading omits the heading.
func summaryBlock(body, heading, class string) *html.Node {
	var h *html.Node
	if heading != "" {
		h = tagged("h3", "section-title", text(heading))
	}
	return el("section", []string{"class", "section summary " + class, "data-section", "summary"},
		h,
		tagged("p", "summary-text", text(body)),
	)
}

// splitSidebar moves the sidebar kinds out of list. Everything else stays in
// main, in document order.
func splitSidebar(list []model.Section, side []model.SectionKind) (main, sidebar []model.Section) {
	for _, s := range list {
		if hasKind(side, s.Kind) {
			sidebar = append(sidebar, s)
		} else {
			main = append(main, s)
		}
	}
	return main, sidebar
}

func hasKind(set []model.SectionKind, k model.SectionKind) bool {
	for _, s := range set {
		if s == k {
			return true
		}
	}
	return false
}

var sidebarKinds = []model.SectionKind{model.KindSkills, model.KindLanguages, model.KindInterests}
