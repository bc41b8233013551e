package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordRef(t *testing.T) {
	t.Parallel()

	record := &Record{ID: "cert-ml-001", Collection: CollectionCertificates}
	assert.Equal(t, "certificates/cert-ml-001", record.Ref())
}

func TestRecordSearchText(t *testing.T) {
	t.Parallel()

	record := &Record{
		Title:       "Machine Learning Specialization",
		Description: "Supervised and unsupervised learning",
		Keywords:    []string{"python", "ml"},
		Issuer:      "DeepLearning.AI",
		Kind:        "coursera",
	}

	text := record.SearchText()

	for _, want := range []string{
		"Machine Learning Specialization",
		"Supervised and unsupervised learning",
		"python",
		"ml",
		"DeepLearning.AI",
		"coursera",
	} {
		assert.Contains(t, text, want)
	}
}

func TestRecordGetStringField(t *testing.T) {
	t.Parallel()

	record := &Record{ID: "1", Collection: CollectionResume, Issuer: "Acme"}

	assert.Equal(t, "1", record.GetStringField(RecordIDField))
	assert.Equal(t, CollectionResume, record.GetStringField(RecordCollectionField))
	assert.Equal(t, "Acme", record.GetStringField(RecordIssuerField))
	assert.Empty(t, record.GetStringField("Unknown"))
}

func TestCollectionFindByID(t *testing.T) {
	t.Parallel()

	collection := &Collection{
		Name: CollectionResume,
		Records: []*Record{
			{ID: "summary"},
			{ID: "experience-1"},
		},
	}

	assert.Equal(t, 2, collection.Len())
	assert.NotNil(t, collection.FindByID("experience-1"))
	assert.Nil(t, collection.FindByID("experience-9"))
}
