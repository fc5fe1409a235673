package career

import "github.com/wetalkinmedia/PocketWatcha2/internal/demographic"

// Career is one catalog entry. Brackets are typical annual salaries in a
// standard-cost city, per age group.
type Career struct {
	ID          string
	Title       string
	Field       string
	Description string
	Skills      []string
	Brackets    map[demographic.AgeGroup]int64
	// Situations limits the career to some living situations. Empty means all.
	Situations []demographic.LivingSituation
}

func (c Career) fits(s demographic.LivingSituation) bool {
	if len(c.Situations) == 0 {
		return true
	}
	for _, x := range c.Situations {
		if x == s {
			return true
		}
	}
	return false
}

func brackets(a, b, c, d, e int64) map[demographic.AgeGroup]int64 {
	return map[demographic.AgeGroup]int64{
		demographic.Age18To25: a,
		demographic.Age26To35: b,
		demographic.Age36To45: c,
		demographic.Age46To55: d,
		demographic.Age56Plus: e,
	}
}

var catalog = []Career{
	{
		ID: "software-engineer", Title: "Software Engineer", Field: "Technology",
		Description: "Design, build and maintain software systems.",
		Skills:      []string{"Programming", "System Design", "Testing"},
		Brackets:    brackets(75000, 110000, 140000, 155000, 150000),
	},
	{
		ID: "cybersecurity-analyst", Title: "Cybersecurity Analyst", Field: "Technology",
		Description: "Protect networks and data from attacks.",
		Skills:      []string{"Network Security", "Incident Response", "Risk Assessment"},
		Brackets:    brackets(70000, 100000, 125000, 135000, 130000),
	},
	{
		ID: "data-analyst", Title: "Data Analyst", Field: "Technology",
		Description: "Turn raw data into business decisions.",
		Skills:      []string{"SQL", "Spreadsheets", "Data Visualization"},
		Brackets:    brackets(60000, 80000, 95000, 105000, 100000),
	},
	{
		ID: "ux-designer", Title: "UX Designer", Field: "Design",
		Description: "Research and design digital product experiences.",
		Skills:      []string{"User Research", "Prototyping", "Visual Design"},
		Brackets:    brackets(58000, 85000, 105000, 115000, 108000),
	},
	{
		ID: "project-manager", Title: "Project Manager", Field: "Business",
		Description: "Plan and deliver projects on time and on budget.",
		Skills:      []string{"Planning", "Stakeholder Management", "Agile"},
		Brackets:    brackets(55000, 85000, 105000, 115000, 110000),
	},
	{
		ID: "financial-advisor", Title: "Financial Advisor", Field: "Finance",
		Description: "Help clients plan investments, retirement and taxes.",
		Skills:      []string{"Financial Planning", "Client Relations", "Compliance"},
		Brackets:    brackets(50000, 75000, 100000, 120000, 115000),
	},
	{
		ID: "digital-marketer", Title: "Digital Marketing Specialist", Field: "Marketing",
		Description: "Run campaigns across search, social and email.",
		Skills:      []string{"SEO", "Analytics", "Content Strategy"},
		Brackets:    brackets(45000, 65000, 85000, 95000, 90000),
	},
	{
		ID: "registered-nurse", Title: "Registered Nurse", Field: "Healthcare",
		Description: "Provide and coordinate patient care.",
		Skills:      []string{"Patient Care", "Clinical Assessment", "Communication"},
		Brackets:    brackets(62000, 78000, 88000, 94000, 92000),
	},
	{
		ID: "dental-hygienist", Title: "Dental Hygienist", Field: "Healthcare",
		Description: "Clean teeth and educate patients on oral health.",
		Skills:      []string{"Clinical Skills", "Patient Education"},
		Brackets:    brackets(58000, 75000, 82000, 86000, 84000),
	},
	{
		ID: "electrician", Title: "Electrician", Field: "Skilled Trades",
		Description: "Install and repair electrical systems.",
		Skills:      []string{"Wiring", "Safety Codes", "Troubleshooting"},
		Brackets:    brackets(48000, 65000, 75000, 80000, 78000),
	},
	{
		ID: "teacher", Title: "Teacher", Field: "Education",
		Description: "Teach and mentor students in a school setting.",
		Skills:      []string{"Instruction", "Curriculum Design", "Classroom Management"},
		Brackets:    brackets(42000, 55000, 63000, 68000, 70000),
	},
	{
		ID: "bookkeeper", Title: "Bookkeeper", Field: "Finance",
		Description: "Keep accurate financial records for small businesses.",
		Skills:      []string{"Accounting Software", "Reconciliation", "Payroll"},
		Brackets:    brackets(40000, 50000, 56000, 60000, 60000),
		Situations:  []demographic.LivingSituation{demographic.Single, demographic.Couple, demographic.Family, demographic.Retiree},
	},
	{
		ID: "online-tutor", Title: "Online Tutor", Field: "Education",
		Description: "Flexible part-time tutoring in your strongest subjects.",
		Skills:      []string{"Subject Expertise", "Communication"},
		Brackets:    brackets(28000, 35000, 38000, 40000, 42000),
		Situations:  []demographic.LivingSituation{demographic.Student, demographic.Retiree},
	},
}

// Catalog returns a copy of every career.
func Catalog() []Career {
	out := make([]Career, len(catalog))
	copy(out, catalog)
	return out
}
