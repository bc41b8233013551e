package portfolio

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type certificateEntry struct {
	ID     string
	Title  string
	Issuer string
	Date   string
}

type languageEntry struct {
	Title    string
	Language string
	Date     string
}

// LoadCertificates builds the certificates collection from every section of
// the certificates file: course certificates, diplomas, language
// certificates and badges.
func LoadCertificates(path string, logger *zap.Logger) (*Collection, error) {
	v, err := readSource(path)
	if err != nil {
		return nil, err
	}

	collection := &Collection{Name: CollectionCertificates}

	appendCertificates := func(raw any, kind, section string) {
		for idx, entry := range decodeEntries[certificateEntry](raw, logger, CollectionCertificates, section) {
			if untitled(logger, CollectionCertificates, section, idx, entry.Title) {
				continue
			}

			id := strings.TrimSpace(entry.ID)
			if id == "" {
				id = fmt.Sprintf("%s-%d", kind, idx+1)
			}

			collection.Records = append(collection.Records, &Record{
				ID:         id,
				Collection: CollectionCertificates,
				Kind:       kind,
				Title:      entry.Title,
				Issuer:     entry.Issuer,
				Date:       entry.Date,
			})
		}
	}

	appendCertificates(v.Get("certificates.coursera"), "coursera", "certificates.coursera")
	appendCertificates(v.Get("certificates.other"), "other", "certificates.other")
	appendCertificates(v.Get("diplomas"), "diploma", "diplomas")

	for idx, entry := range decodeEntries[languageEntry](v.Get("languages"), logger, CollectionCertificates, "languages") {
		if untitled(logger, CollectionCertificates, "languages", idx, entry.Title) {
			continue
		}

		record := &Record{
			ID:         fmt.Sprintf("language-%d", idx+1),
			Collection: CollectionCertificates,
			Kind:       "language",
			Title:      entry.Title,
			Date:       entry.Date,
		}
		if entry.Language != "" {
			record.Keywords = []string{entry.Language}
		}

		collection.Records = append(collection.Records, record)
	}

	appendCertificates(v.Get("badges"), "badge", "badges")

	if repo := v.GetStringMap("repository_info"); len(repo) > 0 {
		collection.Repository = repo
	}

	return collection, nil
}
