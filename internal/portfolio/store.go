package portfolio

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Sources points at the record source files. Empty paths mean the collection
// is not configured; a configured path that cannot be read is fatal.
type Sources struct {
	Resume       string `mapstructure:"resume"`
	Certificates string `mapstructure:"certificates"`
	Projects     string `mapstructure:"projects"`
}

// Store holds every loaded collection in the fixed load order.
type Store struct {
	Collections []*Collection
}

// Load reads all configured collections. The order here is the merged
// ranking tie-break order, so it is always resume, certificates, projects.
func Load(sources Sources, logger *zap.Logger) (*Store, error) {
	loaders := []struct {
		name string
		path string
		load func(string, *zap.Logger) (*Collection, error)
	}{
		{CollectionResume, sources.Resume, LoadResume},
		{CollectionCertificates, sources.Certificates, LoadCertificates},
		{CollectionProjects, sources.Projects, LoadProjects},
	}

	store := &Store{}
	for _, l := range loaders {
		if strings.TrimSpace(l.path) == "" {
			continue
		}

		collection, err := l.load(l.path, logger)
		if err != nil {
			return nil, err
		}

		if logger != nil {
			logger.Debug("loaded collection",
				zap.String("collection", l.name),
				zap.Int("records", collection.Len()),
			)
		}

		store.Collections = append(store.Collections, collection)
	}

	if len(store.Collections) == 0 {
		return nil, errors.New("no record sources configured")
	}

	return store, nil
}

func (s *Store) Len() int {
	total := 0
	for _, collection := range s.Collections {
		total += collection.Len()
	}
	return total
}

func (s *Store) Collection(name string) *Collection {
	for _, collection := range s.Collections {
		if collection.Name == name {
			return collection
		}
	}
	return nil
}

// FindByRef resolves a "collection/id" reference as produced by Record.Ref.
func (s *Store) FindByRef(ref string) *Record {
	name, id, found := strings.Cut(ref, "/")
	if !found {
		return nil
	}

	collection := s.Collection(name)
	if collection == nil {
		return nil
	}

	return collection.FindByID(id)
}
