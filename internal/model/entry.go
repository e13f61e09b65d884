package model

import "strings"

// Entry is one item of a section. The set of implementations is closed: one
// variant per SectionKind, each stored by value.
type Entry interface {
	EntryID() string
	Kind() SectionKind
	isEntry()
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// Proficiency is the language vocabulary; it intentionally differs from SkillLevel.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyFluent       Proficiency = "Fluent"
	ProficiencyNative       Proficiency = "Native"
)

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Details     string `json:"details"`
}

type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Link may be missing its scheme.
	Link string `json:"link"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type LanguageSkill struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (e Experience) EntryID() string    { return e.ID }
func (e Education) EntryID() string     { return e.ID }
func (e Skill) EntryID() string         { return e.ID }
func (e Project) EntryID() string       { return e.ID }
func (e Certification) EntryID() string { return e.ID }
func (e LanguageSkill) EntryID() string { return e.ID }
func (e Interest) EntryID() string      { return e.ID }

func (Experience) Kind() SectionKind    { return KindExperience }
func (Education) Kind() SectionKind     { return KindEducation }
func (Skill) Kind() SectionKind         { return KindSkills }
func (Project) Kind() SectionKind       { return KindProjects }
func (Certification) Kind() SectionKind { return KindCertifications }
func (LanguageSkill) Kind() SectionKind { return KindLanguages }
func (Interest) Kind() SectionKind      { return KindInterests }

func (Experience) isEntry()    {}
func (Education) isEntry()     {}
func (Skill) isEntry()         {}
func (Project) isEntry()       {}
func (Certification) isEntry() {}
func (LanguageSkill) isEntry() {}
func (Interest) isEntry()      {}

// Period formats the date range as "start - end", dropping a missing side.
func (e Experience) Period() string { return period(e.StartDate, e.EndDate) }

// Period formats the date range as "start - end", dropping a missing side.
func (e Education) Period() string { return period(e.StartDate, e.EndDate) }

func period(start, end string) string {
	switch {
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

// Lines splits free text on line breaks. Empty lines are kept so that blank
// lines survive export.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
