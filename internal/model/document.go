package model

// Go models for the composer's single source of truth: one profile document
// holding identity, a free-text summary and an ordered list of typed sections.

// SectionKind identifies one of the fixed section kinds. At most one section per
// kind exists in a Document.
type SectionKind string

const (
	KindExperience     SectionKind = "experience"
	KindEducation      SectionKind = "education"
	KindSkills         SectionKind = "skills"
	KindProjects       SectionKind = "projects"
	KindCertifications SectionKind = "certifications"
	KindLanguages      SectionKind = "languages"
	KindInterests      SectionKind = "interests"
)

// Kinds lists every section kind in registry order.
func Kinds() []SectionKind {
	return []SectionKind{
		KindExperience,
		KindEducation,
		KindSkills,
		KindProjects,
		KindCertifications,
		KindLanguages,
		KindInterests,
	}
}

// Valid reports whether k is one of the closed set of section kinds.
func (k SectionKind) Valid() bool {
	switch k {
	case KindExperience, KindEducation, KindSkills, KindProjects,
		KindCertifications, KindLanguages, KindInterests:
		return true
	}
	return false
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	// ProfilePicture is a data URI or empty.
	ProfilePicture string `json:"profilePicture"`
}

// Section is a named, orderable, hideable group of same-kind entries. The kind
// is persisted under "id" to stay compatible with saved editor state.
type Section struct {
	Kind      SectionKind `json:"id"`
	Title     string      `json:"title"`
	Items     []Entry     `json:"items"`
	IsVisible bool        `json:"isVisible"`
}

type Document struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Sections     []Section    `json:"sections"`
}

// Section returns the section of the given kind, if present.
func (d Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// VisibleSections returns the visible sections in document order.
func (d Document) VisibleSections() []Section {
	out := make([]Section, 0, len(d.Sections))
	for _, s := range d.Sections {
		if s.IsVisible {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a copy that shares no section or item slices with d.
func (d Document) Clone() Document {
	out := d
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			out.Sections[i] = s.clone()
		}
	}
	return out
}

func (s Section) clone() Section {
	out := s
	if s.Items != nil {
		out.Items = make([]Entry, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}

func (s Section) indexOf(id string) int {
	for i, it := range s.Items {
		if it.EntryID() == id {
			return i
		}
	}
	return -1
}

func (d Document) indexOf(kind SectionKind) int {
	for i, s := range d.Sections {
		if s.Kind == kind {
			return i
		}
	}
	return -1
}
