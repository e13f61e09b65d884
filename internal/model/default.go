package model

// Default returns the built-in sample document used when no saved state exists.
func Default() Document {
	return Document{
		PersonalInfo: PersonalInfo{
			Name:     "Alex Morgan",
			Title:    "Senior Software Engineer",
			Email:    "alex.morgan@example.com",
			Phone:    "+1 555 010 2030",
			Location: "Austin, TX",
			Website:  "alexmorgan.dev",
			LinkedIn: "linkedin.com/in/alexmorgan",
			GitHub:   "github.com/alexmorgan",
		},
		Summary: "Backend engineer with eight years of experience building data-heavy services.\nFocused on reliability, clear APIs and mentoring.",
		Sections: []Section{
			{
				Kind:  KindExperience,
				Title: "Experience",
				Items: []Entry{
					Experience{
						ID:          "exp-1",
						Company:     "Northwind Systems",
						Role:        "Senior Software Engineer",
						StartDate:   "2020",
						EndDate:     "Present",
						Description: "Led the billing platform rewrite.\nCut p99 latency by 40%.",
					},
				},
				IsVisible: true,
			},
			{
				Kind:  KindEducation,
				Title: "Education",
				Items: []Entry{
					Education{
						ID:          "edu-1",
						Institution: "University of Texas",
						Degree:      "B.S. Computer Science",
						StartDate:   "2012",
						EndDate:     "2016",
					},
				},
				IsVisible: true,
			},
			{
				Kind:  KindSkills,
				Title: "Skills",
				Items: []Entry{
					Skill{ID: "skill-1", Name: "Go", Level: SkillExpert},
					Skill{ID: "skill-2", Name: "PostgreSQL", Level: SkillAdvanced},
				},
				IsVisible: true,
			},
		},
	}
}
