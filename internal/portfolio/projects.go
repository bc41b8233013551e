package portfolio

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

type projectEntry struct {
	ID           int
	Name         string
	Purpose      string
	Role         string
	Stack        []string
	Deliverables []string
	Stretch      []string
}

// LoadProjects builds the projects collection. Keywords come from the
// project stack and role, which is where the searchable vocabulary lives.
func LoadProjects(path string, logger *zap.Logger) (*Collection, error) {
	v, err := readSource(path)
	if err != nil {
		return nil, err
	}

	collection := &Collection{Name: CollectionProjects}

	for idx, entry := range decodeEntries[projectEntry](v.Get("projects"), logger, CollectionProjects, "projects") {
		if untitled(logger, CollectionProjects, "projects", idx, entry.Name) {
			continue
		}

		id := fmt.Sprintf("project-%d", idx+1)
		if entry.ID != 0 {
			id = strconv.Itoa(entry.ID)
		}

		keywords := append([]string{}, entry.Stack...)
		if entry.Role != "" {
			keywords = append(keywords, entry.Role)
		}

		collection.Records = append(collection.Records, &Record{
			ID:          id,
			Collection:  CollectionProjects,
			Kind:        "project",
			Title:       entry.Name,
			Description: entry.Purpose,
			Keywords:    keywords,
		})
	}

	return collection, nil
}
