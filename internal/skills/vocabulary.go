package skills

// Default returns the built-in skill vocabulary. The lists are intentionally
// flat keyword collections: no stemming, no fuzzy matching, membership is
// substring presence only. Override per category via the `vocabulary` section
// of the configuration file.
func Default() Vocabulary {
	return Vocabulary{
		CategoryTechnical: {
			"python", "javascript", "java", "c++", "react", "node.js", "sql", "aws",
			"docker", "kubernetes", "git", "html", "css", "typescript", "express",
			"postgresql", "mongodb", "redis", "linux", "bash", "jenkins", "github",
			"vue", "angular", "flask", "django", "spring", "mysql", "oracle",
			"azure", "gcp", "terraform", "ansible", "jest", "cypress", "junit",
			"rest", "api", "graphql", "microservices", "devops", "ci/cd",
		},
		CategorySoft: {
			"leadership", "communication", "teamwork", "problem-solving", "analytical",
			"creative", "adaptable", "collaborative", "detail-oriented", "organized",
			"mentoring", "training", "presentation", "negotiation", "time management",
			"motivated", "passionate", "learning",
		},
		CategoryDomain: {
			"agile", "scrum", "kanban", "ci/cd", "devops", "testing", "debugging",
			"optimization", "architecture", "design patterns", "api", "microservices",
			"machine learning", "data analysis", "cloud computing", "security",
			"automation", "monitoring", "logging", "performance tuning", "full-stack",
			"web development", "responsive", "ui", "ux",
		},
	}
}
