package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when persisted data cannot be decoded into a
// Document.
var ErrInvalidDocument = errors.New("invalid document")

// Encode serializes d to its persisted form.
func Encode(d Document) ([]byte, error) {
	norm := d.Clone()
	if norm.Sections == nil {
		norm.Sections = []Section{}
	}
	for i := range norm.Sections {
		if norm.Sections[i].Items == nil {
			norm.Sections[i].Items = []Entry{}
		}
	}
	return json.Marshal(norm)
}

// Decode validates b against the document schema and decodes it. Sections
// saved before visibility existed come back visible.
func Decode(b []byte) (Document, error) {
	if err := ValidateJSON(b); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	d.Sections = dedupeSections(d.Sections)
	return d, nil
}

// dedupeSections keeps the first section of each kind.
func dedupeSections(in []Section) []Section {
	out := make([]Section, 0, len(in))
	seen := make(map[SectionKind]bool, len(in))
	for _, s := range in {
		if seen[s.Kind] {
			continue
		}
		seen[s.Kind] = true
		out = append(out, s)
	}
	return out
}

type sectionWire struct {
	Kind      SectionKind       `json:"id"`
	Title     string            `json:"title"`
	Items     []json.RawMessage `json:"items"`
	IsVisible *bool             `json:"isVisible"`
}

// UnmarshalJSON decodes items by the section kind. A missing or null
// isVisible defaults to true.
func (s *Section) UnmarshalJSON(b []byte) error {
	var w sectionWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if !w.Kind.Valid() {
		return fmt.Errorf("unknown section kind %q", w.Kind)
	}
	items := make([]Entry, 0, len(w.Items))
	for i, raw := range w.Items {
		e, err := DecodeEntry(w.Kind, raw)
		if err != nil {
			return fmt.Errorf("section %s item %d: %w", w.Kind, i, err)
		}
		items = append(items, e)
	}
	*s = Section{
		Kind:      w.Kind,
		Title:     w.Title,
		Items:     items,
		IsVisible: w.IsVisible == nil || *w.IsVisible,
	}
	return nil
}

// DecodeEntry decodes raw as the entry variant for kind.
func DecodeEntry(kind SectionKind, raw json.RawMessage) (Entry, error) {
	switch kind {
	case KindExperience:
		var e Experience
		err := json.Unmarshal(raw, &e)
		return e, err
	case KindEducation:
		var e Education
		err := json.Unmarshal(raw, &e)
		return e, err
	case KindSkills:
		var e Skill
		err := json.Unmarshal(raw, &e)
		return e, err
	case KindProjects:
		var e Project
		err := json.Unmarshal(raw, &e)
		return e, err
	case KindCertifications:
		var e Certification
		err := json.Unmarshal(raw, &e)
		return e, err
	case KindLanguages:
		var e LanguageSkill
		err := json.Unmarshal(raw, &e)
		return e, err
	case KindInterests:
		var e Interest
		err := json.Unmarshal(raw, &e)
		return e, err
	}
	return nil, fmt.Errorf("unknown section kind %q", kind)
}
