package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"resume-composer/internal/model"
)

func fixture() model.Document {
	return model.Document{
		PersonalInfo: model.PersonalInfo{
			Name:     "Jane Doe",
			Title:    "Engineer",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Website:  "https://www.jane.dev",
			LinkedIn: "linkedin.com/in/jane",
		},
		Summary: "Line1\nLine2",
		Sections: []model.Section{
			{Kind: model.KindExperience, Title: "Experience", IsVisible: true, Items: []model.Entry{
				model.Experience{ID: "e1", Company: "Acme", Role: "Engineer", StartDate: "2020", EndDate: "Present", Description: "Did X\nDid Y"},
			}},
			{Kind: model.KindSkills, Title: "Skills", IsVisible: true, Items: []model.Entry{
				model.Skill{ID: "s1", Name: "Go", Level: model.SkillExpert},
				model.Skill{ID: "s2", Name: "SQL", Level: "Guru"},
			}},
			{Kind: model.KindEducation, Title: "Education", IsVisible: true, Items: []model.Entry{
				model.Education{ID: "ed1", Institution: "MIT", Degree: "BSc", StartDate: "2010", EndDate: "2014"},
			}},
			{Kind: model.KindProjects, Title: "Projects", IsVisible: true, Items: []model.Entry{
				model.Project{ID: "p1", Name: "Composer", Description: "Docs", Link: "github.com/jane/composer"},
			}},
			{Kind: model.KindCertifications, Title: "Certifications", IsVisible: true, Items: []model.Entry{
				model.Certification{ID: "c1", Name: "CKA", Issuer: "CNCF", Date: "2023"},
			}},
			{Kind: model.KindLanguages, Title: "Languages", IsVisible: true, Items: []model.Entry{
				model.LanguageSkill{ID: "l1", Name: "Spanish", Proficiency: model.ProficiencyFluent},
			}},
			{Kind: model.KindInterests, Title: "Interests", IsVisible: false, Items: []model.Entry{
				model.Interest{ID: "i1", Name: "Chess"},
			}},
		},
	}
}

func sectionOrder(root *html.Node) []string {
	var out []string
	for _, n := range FindAll(root, HasAttr("data-section")) {
		v, _ := Attr(n, "data-section")
		if v == "summary" || v == "contact" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func TestRender_HiddenSectionsExcluded(t *testing.T) {
	doc := fixture()
	for _, tpl := range Templates() {
		t.Run(string(tpl.ID), func(t *testing.T) {
			root := tpl.Render(doc, DefaultTheme, DefaultFont)
			assert.Empty(t, FindAll(root, ByAttr("data-section", "interests")))
			assert.Empty(t, FindAll(root, ByAttr("data-entry-id", "i1")))
			assert.NotContains(t, TextContent(root), "Chess")
		})
	}
}

func TestRender_EntryTextIdenticalAcrossLayouts(t *testing.T) {
	doc := fixture()
	var want map[string]string
	for _, tpl := range Templates() {
		root := tpl.Render(doc, DefaultTheme, DefaultFont)
		got := map[string]string{}
		for _, n := range FindAll(root, HasAttr("data-entry-id")) {
			id, _ := Attr(n, "data-entry-id")
			got[id] = TextContent(n)
		}
		if want == nil {
			want = got
			require.Len(t, want, 7)
			continue
		}
		assert.Equal(t, want, got, string(tpl.ID))
	}
}

func TestRender_EveryVisibleSectionPlaced(t *testing.T) {
	doc := fixture()
	for _, tpl := range Templates() {
		root := tpl.Render(doc, DefaultTheme, DefaultFont)
		assert.ElementsMatch(t,
			[]string{"experience", "skills", "education", "projects", "certifications", "languages"},
			sectionOrder(root), string(tpl.ID))
	}
}

func TestRender_UnknownTemplateFallsBackToClassic(t *testing.T) {
	for _, id := range []TemplateID{"", "glossy", "CLASSIC"} {
		root := Render(id, fixture(), DefaultTheme, DefaultFont)
		tpl, _ := Attr(root, "data-template")
		assert.Equal(t, "classic", tpl)
	}
	_, ok := Lookup("glossy")
	assert.False(t, ok)
}

func TestRender_PageRoot(t *testing.T) {
	root := Render(ModernTwoColumn, fixture(), Theme{Primary: "#112233", Secondary: "teal"}, "eb-garamond")

	id, _ := Attr(root, "id")
	assert.Equal(t, PreviewID, id)
	style, _ := Attr(root, "style")
	assert.Contains(t, style, "--primary-color: #112233")
	assert.Contains(t, style, "--secondary-color: teal")
	assert.Contains(t, style, "'EB Garamond', serif")
}

func TestRender_DoesNotMutateDocument(t *testing.T) {
	doc := fixture()
	before := doc.Clone()
	for _, tpl := range Templates() {
		tpl.Render(doc, DefaultTheme, DefaultFont)
	}
	assert.Equal(t, before, doc)
}

func TestAcademicCV_EducationFirst(t *testing.T) {
	doc := fixture()
	root := Render(AcademicCV, doc, DefaultTheme, DefaultFont)

	assert.Equal(t,
		[]string{"education", "experience", "skills", "projects", "certifications", "languages"},
		sectionOrder(root))
	assert.Equal(t, model.KindExperience, doc.Sections[0].Kind)

	contact := FindAll(root, func(n *html.Node) bool {
		c, _ := Attr(n, "class")
		return strings.HasPrefix(c, "contact ")
	})
	require.Len(t, contact, 1)
	assert.Equal(t, "jane@example.com | 555-0100 | jane.dev | linkedin.com/in/jane", TextContent(contact[0]))
}

func TestFresherSkillsFirst(t *testing.T) {
	doc := fixture()
	root := Render(FresherSkillsFirst, doc, DefaultTheme, DefaultFont)
	assert.Equal(t,
		[]string{"education", "skills", "projects", "experience", "certifications", "languages"},
		sectionOrder(root))
	assert.Len(t, FindAll(root, ByAttr("data-section", "summary")), 1)

	doc.Summary = ""
	root = Render(FresherSkillsFirst, doc, DefaultTheme, DefaultFont)
	assert.Empty(t, FindAll(root, ByAttr("data-section", "summary")))

	root = Render(Classic, doc, DefaultTheme, DefaultFont)
	assert.Len(t, FindAll(root, ByAttr("data-section", "summary")), 1)
}

func TestTwoColumnRouting(t *testing.T) {
	for _, id := range []TemplateID{CreativeBold, ExecutiveSummary, InfoSidebar} {
		root := Render(id, fixture(), DefaultTheme, DefaultFont)
		asides := FindAll(root, func(n *html.Node) bool { return n.Data == "aside" })
		require.Len(t, asides, 1, string(id))
		assert.Equal(t, []string{"skills", "languages"}, sectionOrder(asides[0]), string(id))

		mains := FindAll(root, func(n *html.Node) bool { return n.Data == "main" })
		require.Len(t, mains, 1, string(id))
		assert.Equal(t, []string{"experience", "education", "projects", "certifications"}, sectionOrder(mains[0]), string(id))
	}
}

func TestInfoSidebar_ProficiencyBars(t *testing.T) {
	root := Render(InfoSidebar, fixture(), DefaultTheme, DefaultFont)
	fills := map[string]string{}
	for _, n := range FindAll(root, HasAttr("data-fill")) {
		entry := n.Parent.Parent
		id, _ := Attr(entry, "data-entry-id")
		fills[id], _ = Attr(n, "data-fill")
	}
	assert.Equal(t, map[string]string{"s1": "100%", "s2": "50%", "l1": "90%"}, fills)

	assert.Empty(t, FindAll(Render(Classic, fixture(), DefaultTheme, DefaultFont), HasAttr("data-fill")))
}

func TestTechInnovator_Headings(t *testing.T) {
	root := Render(TechInnovator, fixture(), DefaultTheme, DefaultFont)
	skills := FindAll(root, ByAttr("data-section", "skills"))
	require.Len(t, skills, 1)
	assert.Equal(t, "// Skills", TextContent(skills[0].FirstChild))
	assert.NotEmpty(t, FindAll(skills[0], ByAttr("data-icon", "sparkles")))

	summary := FindAll(root, ByAttr("data-section", "summary"))
	require.Len(t, summary, 1)
	assert.Equal(t, "Line1\nLine2", TextContent(summary[0]))
}

func TestATSMinimal_NoIconsNoPhoto(t *testing.T) {
	doc := fixture()
	doc.PersonalInfo.ProfilePicture = "data:image/png;base64,AAAA"
	root := Render(ATSMinimal, doc, DefaultTheme, DefaultFont)
	assert.Empty(t, FindAll(root, func(n *html.Node) bool { return n.Data == "img" }))
	assert.Empty(t, FindAll(root, HasAttr("data-icon")))

	root = Render(Classic, doc, DefaultTheme, DefaultFont)
	assert.Len(t, FindAll(root, func(n *html.Node) bool { return n.Data == "img" }), 1)
}

func TestPlaceholders(t *testing.T) {
	for _, tpl := range Templates() {
		root := tpl.Render(model.Document{}, DefaultTheme, DefaultFont)
		txt := TextContent(root)
		assert.Contains(t, txt, "Your Name", string(tpl.ID))
		assert.Contains(t, txt, "Your Title", string(tpl.ID))
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(Input{Document: fixture(), Template: Classic, Theme: DefaultTheme, Font: "lora"})
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, `id="resume-preview"`)
	assert.Contains(t, s, "<title>Jane Doe - Resume</title>")
	assert.Contains(t, s, ".page {")
	assert.Contains(t, s, "Did X\nDid Y")

	parsed, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	assert.Len(t, FindAll(parsed, ByAttr("id", PreviewID)), 1)
}
