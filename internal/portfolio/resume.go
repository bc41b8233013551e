package portfolio

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type resumeExperience struct {
	Title       string
	Company     string
	Duration    string
	Description string
}

type resumeProject struct {
	Name        string
	Tech        []string
	Description string
}

// LoadResume builds the resume collection: one summary record carrying the
// skill list, one record per experience entry and one per resume project.
func LoadResume(path string, logger *zap.Logger) (*Collection, error) {
	v, err := readSource(path)
	if err != nil {
		return nil, err
	}

	collection := &Collection{Name: CollectionResume}

	title := strings.TrimSpace(v.GetString("personal_info.title"))
	if title == "" {
		title = "Profile summary"
	}

	collection.Records = append(collection.Records, &Record{
		ID:          "summary",
		Collection:  CollectionResume,
		Kind:        "summary",
		Title:       title,
		Description: v.GetString("summary"),
		Keywords:    v.GetStringSlice("skills"),
	})

	for idx, entry := range decodeEntries[resumeExperience](v.Get("experience"), logger, CollectionResume, "experience") {
		if untitled(logger, CollectionResume, "experience", idx, entry.Title) {
			continue
		}

		collection.Records = append(collection.Records, &Record{
			ID:          fmt.Sprintf("experience-%d", idx+1),
			Collection:  CollectionResume,
			Kind:        "experience",
			Title:       entry.Title,
			Description: entry.Description,
			Issuer:      entry.Company,
			Date:        entry.Duration,
		})
	}

	for idx, entry := range decodeEntries[resumeProject](v.Get("projects"), logger, CollectionResume, "projects") {
		if untitled(logger, CollectionResume, "projects", idx, entry.Name) {
			continue
		}

		collection.Records = append(collection.Records, &Record{
			ID:          fmt.Sprintf("project-%d", idx+1),
			Collection:  CollectionResume,
			Kind:        "project",
			Title:       entry.Name,
			Description: entry.Description,
			Keywords:    entry.Tech,
		})
	}

	return collection, nil
}
