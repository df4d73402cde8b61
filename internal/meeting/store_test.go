package meeting

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepositoryMissingFile(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "meetings.json"))
	require.NoError(t, err)

	records, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "meetings.json"))
	require.NoError(t, err)

	in := []Record{
		{Ref: Ref{
			ID:           "m1",
			Date:         "2026-03-01",
			Topic:        "Sınav takvimi",
			DecisionText: "Ara sınav 15 Mart tarihine kadar hazırlanacak.",
			Tags:         []string{"sınav", "takvim"},
		}},
	}
	require.NoError(t, repo.Replace(in))

	out, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].Ref, out[0].Ref)
	assert.False(t, out[0].Analyzed)
}

func TestFileRepositoryMarkAnalyzed(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "meetings.json"))
	require.NoError(t, err)

	require.NoError(t, repo.Replace([]Record{
		{Ref: Ref{ID: "m1"}},
		{Ref: Ref{ID: "m2"}},
	}))

	at := time.Now()
	require.NoError(t, repo.MarkAnalyzed(context.Background(), []string{"m1", "missing"}, at))

	records, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.True(t, records[0].Analyzed)
	require.NotNil(t, records[0].AnalyzedAt)
	assert.False(t, records[1].Analyzed)
	assert.Nil(t, records[1].AnalyzedAt)
}
