package portfolio

import "sort"

// Profile is the combined cross-collection summary.
type Profile struct {
	Title            string         `json:"title,omitempty"`
	Summary          string         `json:"summary,omitempty"`
	Skills           []string       `json:"skills,omitempty"`
	ExperienceCount  int            `json:"experience_count"`
	ProjectCount     int            `json:"project_count"`
	CertificateCount int            `json:"certificate_count"`
	Issuers          map[string]int `json:"issuers,omitempty"`
	Languages        []string       `json:"languages,omitempty"`
	Badges           []string       `json:"badges,omitempty"`
	Repository       map[string]any `json:"repository,omitempty"`
}

// BuildProfile aggregates the loaded collections into a profile summary.
func BuildProfile(store *Store) *Profile {
	profile := &Profile{Issuers: map[string]int{}}

	skills := map[string]struct{}{}

	for _, collection := range store.Collections {
		if collection.Repository != nil {
			profile.Repository = collection.Repository
		}
		for _, record := range collection.Records {
			switch record.Kind {
			case "summary":
				profile.Title = record.Title
				profile.Summary = record.Description
				for _, skill := range record.Keywords {
					skills[skill] = struct{}{}
				}
			case "experience":
				profile.ExperienceCount++
			case "project":
				profile.ProjectCount++
			case "coursera", "other", "diploma":
				profile.CertificateCount++
				if record.Issuer != "" {
					profile.Issuers[record.Issuer]++
				}
			case "language":
				profile.Languages = append(profile.Languages, record.Title)
			case "badge":
				profile.Badges = append(profile.Badges, record.Title)
				if record.Issuer != "" {
					profile.Issuers[record.Issuer]++
				}
			}
		}
	}

	profile.Skills = make([]string, 0, len(skills))
	for skill := range skills {
		profile.Skills = append(profile.Skills, skill)
	}
	sort.Strings(profile.Skills)

	return profile
}
