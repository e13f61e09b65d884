// Package sections is the static catalog of section kinds: default titles,
// icon hints and blank-entry factories shared by the editor surfaces and the
// renderers.
package sections

import (
	"github.com/google/uuid"

	"resume-composer/internal/model"
)

// Icon names a glyph the icon-bearing layouts draw next to a section heading.
type Icon string

const (
	IconBriefcase   Icon = "briefcase"
	IconAcademicCap Icon = "academic-cap"
	IconSparkles    Icon = "sparkles"
	IconCode        Icon = "code-bracket"
	IconLanguage    Icon = "language"
	IconChatBubble  Icon = "chat-bubble"
	IconHeart       Icon = "heart"
)

// Spec describes one section kind.
type Spec struct {
	Kind  model.SectionKind
	Title string
	Icon  Icon
	// NewEntry returns a blank entry with a fresh ID. It has no side effects.
	NewEntry func() model.Entry
}

var registry = []Spec{
	{
		Kind:  model.KindExperience,
		Title: "Experience",
		Icon:  IconBriefcase,
		NewEntry: func() model.Entry {
			return model.Experience{ID: newID()}
		},
	},
	{
		Kind:  model.KindEducation,
		Title: "Education",
		Icon:  IconAcademicCap,
		NewEntry: func() model.Entry {
			return model.Education{ID: newID()}
		},
	},
	{
		Kind:  model.KindSkills,
		Title: "Skills",
		Icon:  IconSparkles,
		NewEntry: func() model.Entry {
			return model.Skill{ID: newID(), Level: model.SkillIntermediate}
		},
	},
	{
		Kind:  model.KindProjects,
		Title: "Projects",
		Icon:  IconCode,
		NewEntry: func() model.Entry {
			return model.Project{ID: newID()}
		},
	},
	{
		Kind:  model.KindCertifications,
		Title: "Certifications",
		Icon:  IconChatBubble,
		NewEntry: func() model.Entry {
			return model.Certification{ID: newID()}
		},
	},
	{
		Kind:  model.KindLanguages,
		Title: "Languages",
		Icon:  IconLanguage,
		NewEntry: func() model.Entry {
			return model.LanguageSkill{ID: newID(), Proficiency: model.ProficiencyIntermediate}
		},
	},
	{
		Kind:  model.KindInterests,
		Title: "Interests",
		Icon:  IconHeart,
		NewEntry: func() model.Entry {
			return model.Interest{ID: newID()}
		},
	},
}

var byKind = func() map[model.SectionKind]Spec {
	m := make(map[model.SectionKind]Spec, len(registry))
	for _, s := range registry {
		m[s.Kind] = s
	}
	return m
}()

func newID() string { return uuid.NewString() }

// All returns a copy of the registry in display order.
func All() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registry entry for kind.
func Lookup(kind model.SectionKind) (Spec, bool) {
	s, ok := byKind[kind]
	return s, ok
}

// NewEntry returns a blank entry of kind, or nil for an unknown kind.
func NewEntry(kind model.SectionKind) model.Entry {
	s, ok := byKind[kind]
	if !ok {
		return nil
	}
	return s.NewEntry()
}

// Title returns the default display title for kind.
func Title(kind model.SectionKind) string {
	if s, ok := byKind[kind]; ok {
		return s.Title
	}
	return string(kind)
}

// IconFor returns the icon hint for kind, or "" for an unknown kind.
func IconFor(kind model.SectionKind) Icon {
	return byKind[kind].Icon
}

// NewSection builds a visible section holding one blank entry, the shape the
// editor inserts on "add section". An empty title uses the default.
func NewSection(kind model.SectionKind, title string) (model.Section, bool) {
	s, ok := byKind[kind]
	if !ok {
		return model.Section{}, false
	}
	if title == "" {
		title = s.Title
	}
	return model.Section{
		Kind:      kind,
		Title:     title,
		Items:     []model.Entry{s.NewEntry()},
		IsVisible: true,
	}, true
}

// Available lists the kinds, in registry order, that doc does not hold yet.
func Available(doc model.Document) []model.SectionKind {
	out := make([]model.SectionKind, 0, len(registry))
	for _, s := range registry {
		if _, ok := doc.Section(s.Kind); !ok {
			out = append(out, s.Kind)
		}
	}
	return out
}
