package career

import (
	"fmt"
	"strings"
)

// pathTemplate is one suggested career path. Compatibility is the realistic
// compatibility plus delta, clamped to [floor, ceiling].
type pathTemplate struct {
	name        string
	description string
	keySkills   []string
	delta       int
	floor       int
	ceiling     int
	shortTime   string
	longTime    string
}

// fieldTemplates is matched in order against the job field by substring.
var fieldTemplates = []struct {
	keywords []string
	paths    []pathTemplate
}{
	{
		keywords: []string{"Software"},
		paths: []pathTemplate{
			{
				name:        "Software Developer → Senior Developer → Tech Lead",
				description: "Grow from feature delivery into owning system design and guiding a development team.",
				keySkills:   []string{"Programming", "System Design", "Code Review", "Technical Leadership"},
				delta:       5, floor: 35, ceiling: 92,
				shortTime: "1-2 years", longTime: "2-3 years",
			},
			{
				name:        "Developer → DevOps Engineer → Infrastructure Architect",
				description: "Move toward automation, deployment pipelines and the platforms other teams build on.",
				keySkills:   []string{"CI/CD", "Cloud Platforms", "Automation", "Monitoring"},
				delta:       -8, floor: 30, ceiling: 78,
				shortTime: "2-3 years", longTime: "3-4 years",
			},
		},
	},
	{
		keywords: []string{"Data"},
		paths: []pathTemplate{
			{
				name:        "Data Analyst → Senior Analyst → Analytics Manager",
				description: "Turn data into business decisions and eventually lead an analytics function.",
				keySkills:   []string{"SQL", "Data Visualization", "Statistics", "Stakeholder Communication"},
				delta:       5, floor: 35, ceiling: 90,
				shortTime: "1-2 years", longTime: "2-3 years",
			},
			{
				name:        "Data Scientist → ML Engineer → AI Specialist",
				description: "Build predictive models and take them into production systems.",
				keySkills:   []string{"Machine Learning", "Python", "Model Deployment", "Experimentation"},
				delta:       -5, floor: 30, ceiling: 82,
				shortTime: "2-3 years", longTime: "3-4 years",
			},
		},
	},
	{
		keywords: []string{"Project"},
		paths: []pathTemplate{
			{
				name:        "Project Coordinator → Project Manager → Program Manager",
				description: "Progress from coordinating tasks to owning delivery across several related projects.",
				keySkills:   []string{"Planning", "Risk Management", "Stakeholder Management", "Agile Methods"},
				delta:       5, floor: 35, ceiling: 88,
				shortTime: "1-2 years", longTime: "2-3 years",
			},
			{
				name:        "Project Manager → PMO Specialist → PMO Director",
				description: "Shape how the organization runs projects through standards, governance and portfolio reporting.",
				keySkills:   []string{"Governance", "Portfolio Management", "Process Improvement", "Reporting"},
				delta:       -10, floor: 30, ceiling: 75,
				shortTime: "2-3 years", longTime: "3-4 years",
			},
		},
	},
	{
		keywords: []string{"UX", "UI"},
		paths: []pathTemplate{
			{
				name:        "UX/UI Designer → Senior Designer → Design Lead",
				description: "Deepen craft in interaction and visual design, then lead design direction for a product.",
				keySkills:   []string{"Interaction Design", "Prototyping", "Visual Design", "Design Systems"},
				delta:       5, floor: 35, ceiling: 90,
				shortTime: "1-2 years", longTime: "2-3 years",
			},
			{
				name:        "UX Designer → UX Researcher → User Experience Director",
				description: "Specialize in understanding users and steer product strategy with research evidence.",
				keySkills:   []string{"User Research", "Usability Testing", "Data Synthesis", "Strategy"},
				delta:       -5, floor: 30, ceiling: 82,
				shortTime: "2-3 years", longTime: "3-4 years",
			},
		},
	},
}

func genericPath(jobField string) pathTemplate {
	return pathTemplate{
		name:        fmt.Sprintf("%s Specialist → Senior Specialist → Team Lead", jobField),
		description: fmt.Sprintf("Build depth in %s, then take responsibility for guiding others.", jobField),
		keySkills:   []string{"Technical Knowledge", "Communication", "Problem Solving", "Leadership"},
		delta:       0, floor: 35, ceiling: 85,
		shortTime: "1-2 years", longTime: "2-3 years",
	}
}

func templatesFor(jobField string) []pathTemplate {
	for _, t := range fieldTemplates {
		for _, kw := range t.keywords {
			if strings.Contains(jobField, kw) {
				return t.paths
			}
		}
	}
	return []pathTemplate{genericPath(jobField)}
}

// CareerPath is one suggested progression with its compatibility estimate.
type CareerPath struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Compatibility   int      `json:"compatibility"`
	DevelopmentTime string   `json:"developmentTime"`
	KeySkills       []string `json:"keySkills"`
}

// compatibilityThreshold separates the shorter and longer development estimates.
const compatibilityThreshold = 60

func careerPaths(jobField string, realistic int) []CareerPath {
	templates := templatesFor(jobField)
	paths := make([]CareerPath, 0, len(templates))
	for _, t := range templates {
		devTime := t.longTime
		if realistic > compatibilityThreshold {
			devTime = t.shortTime
		}
		paths = append(paths, CareerPath{
			Name:            t.name,
			Description:     t.description,
			Compatibility:   clampInt(realistic+t.delta, t.floor, t.ceiling),
			DevelopmentTime: devTime,
			KeySkills:       append([]string(nil), t.keySkills...),
		})
	}
	return paths
}
