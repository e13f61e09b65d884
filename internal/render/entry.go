package render

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"resume-composer/internal/model"
)

// EntryStyle selects presentational variants of the shared entry formatter.
// Variants only change wrapper markup; the text of an entry is the same in
// every variant.
type EntryStyle struct {
	// Bars draws skill and language proficiency as a fill bar.
	Bars bool
}

var proficiencyFill = map[string]int{
	"Beginner":     25,
	"Intermediate": 50,
	"Advanced":     75,
	"Expert":       100,
	"Fluent":       90,
	"Native":       100,
}

// ProficiencyPercent maps a skill level or language proficiency to a bar fill
// percentage. Unknown values fill half.
func ProficiencyPercent(level string) int {
	if p, ok := proficiencyFill[level]; ok {
		return p
	}
	return 50
}

// FormatEntry renders one entry. Every layout goes through here.
func FormatEntry(e model.Entry, st EntryStyle) *html.Node {
	var body []*html.Node
	switch v := e.(type) {
	case model.Experience:
		body = []*html.Node{
			entryHead(v.Role, v.Period()),
			subline(v.Company),
			description(v.Description),
		}
	case model.Education:
		body = []*html.Node{
			entryHead(v.Institution, v.Period()),
			subline(v.Degree),
			description(v.Details),
		}
	case model.Skill:
		body = levelLine(v.Name, string(v.Level), st.Bars)
	case model.Project:
		var link *html.Node
		if v.Link != "" {
			link = el("a", []string{"class", "entry-link", "href", FormatURL(v.Link)}, text(DisplayURL(v.Link)))
		}
		body = []*html.Node{
			div("entry-head", tagged("h4", "entry-title", text(v.Name)), link),
			description(v.Description),
		}
	case model.Certification:
		body = []*html.Node{
			entryHead(v.Name, v.Date),
			subline(v.Issuer),
		}
	case model.LanguageSkill:
		body = levelLine(v.Name, string(v.Proficiency), st.Bars)
	case model.Interest:
		body = []*html.Node{span("chip", text(v.Name))}
	default:
		panic(fmt.Sprintf("render: unhandled entry type %T", e))
	}
	n := el("div", []string{
		"class", "entry entry-" + string(e.Kind()),
		"data-entry-id", e.EntryID(),
	})
	return add(n, body...)
}

func entryHead(title, date string) *html.Node {
	var d *html.Node
	if date != "" {
		d = span("entry-date", text(date))
	}
	return div("entry-head", tagged("h4", "entry-title", text(title)), d)
}

func subline(s string) *html.Node {
	if s == "" {
		return nil
	}
	return tagged("h5", "entry-sub", text(s))
}

// description keeps embedded line breaks; the stylesheet renders .entry-desc
// with white-space: pre-wrap.
func description(s string) *html.Node {
	if s == "" {
		return nil
	}
	return tagged("p", "entry-desc", text(s))
}

func levelLine(name, level string, bars bool) []*html.Node {
	line := div("entry-level-line",
		span("entry-name", text(name)),
		span("entry-level", text(level)),
	)
	if !bars {
		return []*html.Node{line}
	}
	pct := strconv.Itoa(ProficiencyPercent(level)) + "%"
	fill := el("div", []string{
		"class", "bar-fill",
		"style", "width: " + pct,
		"data-fill", pct,
	})
	return []*html.Node{line, div("bar", fill)}
}
