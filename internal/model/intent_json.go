package model

import (
	"encoding/json"
	"fmt"
)

// Intent type names used on the wire.
const (
	IntentUpdatePersonalInfo      = "update-personal-info"
	IntentUpdateSummary           = "update-summary"
	IntentAddSection              = "add-section"
	IntentRemoveSection           = "remove-section"
	IntentAddSectionItem          = "add-section-item"
	IntentUpdateSectionItem       = "update-section-item"
	IntentRemoveSectionItem       = "remove-section-item"
	IntentReorderSections         = "reorder-sections"
	IntentToggleSectionVisibility = "toggle-section-visibility"
)

type intentWire struct {
	Type         string             `json:"type"`
	PersonalInfo *PersonalInfoPatch `json:"personalInfo,omitempty"`
	Summary      *string            `json:"summary,omitempty"`
	Section      json.RawMessage    `json:"section,omitempty"`
	Kind         SectionKind        `json:"sectionId,omitempty"`
	Item         json.RawMessage    `json:"item,omitempty"`
	ItemID       string             `json:"itemId,omitempty"`
	FromIndex    *int               `json:"fromIndex,omitempty"`
	ToIndex      *int               `json:"toIndex,omitempty"`
}

// DecodeIntent parses one intent from its JSON form, e.g.
//
//	{"type":"reorder-sections","fromIndex":0,"toIndex":2}
//	{"type":"remove-section-item","sectionId":"skills","itemId":"..."}
func DecodeIntent(b []byte) (Intent, error) {
	var w intentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}
	switch w.Type {
	case IntentUpdatePersonalInfo:
		if w.PersonalInfo == nil {
			return nil, fmt.Errorf("%s: personalInfo is required", w.Type)
		}
		return UpdatePersonalInfo{Patch: *w.PersonalInfo}, nil
	case IntentUpdateSummary:
		if w.Summary == nil {
			return nil, fmt.Errorf("%s: summary is required", w.Type)
		}
		return UpdateSummary{Text: *w.Summary}, nil
	case IntentAddSection:
		if len(w.Section) == 0 {
			return nil, fmt.Errorf("%s: section is required", w.Type)
		}
		var s Section
		if err := json.Unmarshal(w.Section, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", w.Type, err)
		}
		return AddSection{Section: s}, nil
	case IntentRemoveSection:
		if !w.Kind.Valid() {
			return nil, fmt.Errorf("%s: unknown sectionId %q", w.Type, w.Kind)
		}
		return RemoveSection{Kind: w.Kind}, nil
	case IntentAddSectionItem, IntentUpdateSectionItem:
		if !w.Kind.Valid() {
			return nil, fmt.Errorf("%s: unknown sectionId %q", w.Type, w.Kind)
		}
		if len(w.Item) == 0 {
			return nil, fmt.Errorf("%s: item is required", w.Type)
		}
		item, err := DecodeEntry(w.Kind, w.Item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w.Type, err)
		}
		if w.Type == IntentAddSectionItem {
			return AddSectionItem{Kind: w.Kind, Item: item}, nil
		}
		return UpdateSectionItem{Kind: w.Kind, Item: item}, nil
	case IntentRemoveSectionItem:
		if !w.Kind.Valid() {
			return nil, fmt.Errorf("%s: unknown sectionId %q", w.Type, w.Kind)
		}
		return RemoveSectionItem{Kind: w.Kind, ID: w.ItemID}, nil
	case IntentReorderSections:
		if w.FromIndex == nil || w.ToIndex == nil {
			return nil, fmt.Errorf("%s: fromIndex and toIndex are required", w.Type)
		}
		return ReorderSections{From: *w.FromIndex, To: *w.ToIndex}, nil
	case IntentToggleSectionVisibility:
		if !w.Kind.Valid() {
			return nil, fmt.Errorf("%s: unknown sectionId %q", w.Type, w.Kind)
		}
		return ToggleSectionVisibility{Kind: w.Kind}, nil
	}
	return nil, fmt.Errorf("unknown intent type %q", w.Type)
}
