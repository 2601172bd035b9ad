package roster

import "github.com/spigell/hr-screener/internal/screening"

// Seed returns the demo roster used when no roster source is configured.
func Seed() *screening.Roster {
	return screening.NewRoster(
		&screening.Candidate{
			Name:       "Alex Johnson",
			Role:       "Senior Developer",
			Experience: "5 years",
			Skills:     []string{"JavaScript", "React", "Node.js", "Python"},
			Avatar:     "👨‍💻",
		},
		&screening.Candidate{
			Name:       "Maria Garcia",
			Role:       "Full Stack Developer",
			Experience: "4 years",
			Skills:     []string{"JavaScript", "React", "MongoDB", "Express"},
			Avatar:     "👩‍💻",
		},
		&screening.Candidate{
			Name:       "David Kim",
			Role:       "Frontend Developer",
			Experience: "3 years",
			Skills:     []string{"JavaScript", "Vue.js", "CSS", "HTML"},
			Avatar:     "👨‍💻",
		},
		&screening.Candidate{
			Name:       "Sarah Williams",
			Role:       "Backend Developer",
			Experience: "6 years",
			Skills:     []string{"Node.js", "Python", "PostgreSQL", "Docker"},
			Avatar:     "👩‍💻",
		},
		&screening.Candidate{
			Name:       "James Chen",
			Role:       "DevOps Engineer",
			Experience: "4 years",
			Skills:     []string{"Docker", "Kubernetes", "AWS", "CI/CD"},
			Avatar:     "👨‍💻",
		},
	)
}
