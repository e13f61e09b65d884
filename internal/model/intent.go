package model

// Intent is one of the closed set of edits a Document accepts. Applying an
// intent never fails: inputs that do not match the document leave it unchanged.
type Intent interface {
	apply(d Document) Document
}

// Apply returns the document produced by applying in to d. d itself is not
// modified.
func (d Document) Apply(in Intent) Document {
	if in == nil {
		return d
	}
	return in.apply(d)
}

// PersonalInfoPatch carries the fields to overwrite; nil fields are kept.
type PersonalInfoPatch struct {
	Name           *string `json:"name,omitempty"`
	Title          *string `json:"title,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Location       *string `json:"location,omitempty"`
	Website        *string `json:"website,omitempty"`
	LinkedIn       *string `json:"linkedin,omitempty"`
	GitHub         *string `json:"github,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

type UpdatePersonalInfo struct{ Patch PersonalInfoPatch }

type UpdateSummary struct{ Text string }

// AddSection appends a section. It is a no-op when a section of the same kind
// already exists. Items of a different kind are dropped.
type AddSection struct{ Section Section }

type RemoveSection struct{ Kind SectionKind }

// AddSectionItem appends an entry to the section of the same kind. Entries
// whose ID is already used in that section are ignored.
type AddSectionItem struct {
	Kind SectionKind
	Item Entry
}

// UpdateSectionItem replaces the entry with the same ID.
type UpdateSectionItem struct {
	Kind SectionKind
	Item Entry
}

type RemoveSectionItem struct {
	Kind SectionKind
	ID   string
}

// ReorderSections removes the section at From and reinserts it at To in the
// shortened sequence. An out-of-range From is a no-op; To is clamped.
type ReorderSections struct {
	From int
	To   int
}

type ToggleSectionVisibility struct{ Kind SectionKind }

func (in UpdatePersonalInfo) apply(d Document) Document {
	out := d.Clone()
	p := &out.PersonalInfo
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Name, in.Patch.Name)
	set(&p.Title, in.Patch.Title)
	set(&p.Email, in.Patch.Email)
	set(&p.Phone, in.Patch.Phone)
	set(&p.Location, in.Patch.Location)
	set(&p.Website, in.Patch.Website)
	set(&p.LinkedIn, in.Patch.LinkedIn)
	set(&p.GitHub, in.Patch.GitHub)
	set(&p.ProfilePicture, in.Patch.ProfilePicture)
	return out
}

func (in UpdateSummary) apply(d Document) Document {
	out := d.Clone()
	out.Summary = in.Text
	return out
}

func (in AddSection) apply(d Document) Document {
	if !in.Section.Kind.Valid() || d.indexOf(in.Section.Kind) >= 0 {
		return d
	}
	sec := in.Section.clone()
	items := make([]Entry, 0, len(sec.Items))
	for _, it := range sec.Items {
		if it != nil && it.Kind() == sec.Kind {
			items = append(items, it)
		}
	}
	sec.Items = items
	out := d.Clone()
	out.Sections = append(out.Sections, sec)
	return out
}

func (in RemoveSection) apply(d Document) Document {
	idx := d.indexOf(in.Kind)
	if idx < 0 {
		return d
	}
	out := d.Clone()
	out.Sections = append(out.Sections[:idx], out.Sections[idx+1:]...)
	return out
}

func (in AddSectionItem) apply(d Document) Document {
	idx := d.indexOf(in.Kind)
	if idx < 0 || in.Item == nil || in.Item.Kind() != in.Kind {
		return d
	}
	if d.Sections[idx].indexOf(in.Item.EntryID()) >= 0 {
		return d
	}
	out := d.Clone()
	out.Sections[idx].Items = append(out.Sections[idx].Items, in.Item)
	return out
}

func (in UpdateSectionItem) apply(d Document) Document {
	idx := d.indexOf(in.Kind)
	if idx < 0 || in.Item == nil || in.Item.Kind() != in.Kind {
		return d
	}
	pos := d.Sections[idx].indexOf(in.Item.EntryID())
	if pos < 0 {
		return d
	}
	out := d.Clone()
	out.Sections[idx].Items[pos] = in.Item
	return out
}

func (in RemoveSectionItem) apply(d Document) Document {
	idx := d.indexOf(in.Kind)
	if idx < 0 {
		return d
	}
	pos := d.Sections[idx].indexOf(in.ID)
	if pos < 0 {
		return d
	}
	out := d.Clone()
	items := out.Sections[idx].Items
	out.Sections[idx].Items = append(items[:pos], items[pos+1:]...)
	return out
}

func (in ReorderSections) apply(d Document) Document {
	n := len(d.Sections)
	if in.From < 0 || in.From >= n {
		return d
	}
	to := in.To
	if to < 0 {
		to = 0
	}
	if to > n-1 {
		to = n - 1
	}
	out := d.Clone()
	moved := out.Sections[in.From]
	rest := append(out.Sections[:in.From:in.From], out.Sections[in.From+1:]...)
	sections := make([]Section, 0, n)
	sections = append(sections, rest[:to]...)
	sections = append(sections, moved)
	sections = append(sections, rest[to:]...)
	out.Sections = sections
	return out
}

func (in ToggleSectionVisibility) apply(d Document) Document {
	idx := d.indexOf(in.Kind)
	if idx < 0 {
		return d
	}
	out := d.Clone()
	out.Sections[idx].IsVisible = !out.Sections[idx].IsVisible
	return out
}
