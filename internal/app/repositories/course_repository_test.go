package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magallanes/coursecatalog/internal/app/models"
	"github.com/magallanes/coursecatalog/internal/pkg/apperrors"
)

const twoYearDoc = `[
  {
    "2nd Year": [{"description": "B2", "tags": ["B2", "Track", "BSIT"]}],
    "1st Year": [
      {"description": "A1", "tags": ["A1", "Track", "BSIS"]},
      {"description": "A2", "tags": ["A2", "Track", "BSIT"]}
    ],
    "3rd Year": [],
    "4th Year": [{"description": "D1", "tags": ["D1", "Track"]}]
  },
  {
    "1st Year": [{"description": "E1", "tags": ["E1", "Track"]}],
    "Summer": [{"description": "S1", "tags": ["S1", "Track"]}]
  }
]`

type countingSource struct {
	data  []byte
	calls int
}

func (s *countingSource) Read(context.Context) ([]byte, error) {
	s.calls++
	return s.data, nil
}

func TestCourseRepository_LoadAndFlattenOrder(t *testing.T) {
	repo := NewCourseRepository(BytesSource(twoYearDoc), zerolog.Nop())
	require.NoError(t, repo.Load(context.Background()))

	entries, err := repo.Entries()
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.Year+"/"+e.Course.Description)
	}
	assert.Equal(t, []string{
		"1st Year/A1", "1st Year/A2", "2nd Year/B2", "4th Year/D1",
		"1st Year/E1",
	}, got, "non-canonical labels are not flattened")

	years, err := repo.Years()
	require.NoError(t, err)
	require.Len(t, years, 2)
	assert.Contains(t, years[1], "Summer", "raw document keeps every label")
}

func TestCourseRepository_LoadsOnce(t *testing.T) {
	src := &countingSource{data: []byte(twoYearDoc)}
	repo := NewCourseRepository(src, zerolog.Nop())

	require.NoError(t, repo.Load(context.Background()))
	require.NoError(t, repo.Load(context.Background()))

	assert.Equal(t, 1, src.calls)
}

func TestCourseRepository_FlattenDoesNotAlias(t *testing.T) {
	repo := NewCourseRepository(BytesSource(twoYearDoc), zerolog.Nop())
	require.NoError(t, repo.Load(context.Background()))

	first, err := repo.Flatten()
	require.NoError(t, err)
	first[0].Tags[0] = "mutated"

	second, err := repo.Flatten()
	require.NoError(t, err)
	assert.Equal(t, "A1", second[0].Tags[0])
}

func TestCourseRepository_YearsDoesNotAlias(t *testing.T) {
	repo := NewCourseRepository(BytesSource(twoYearDoc), zerolog.Nop())
	require.NoError(t, repo.Load(context.Background()))

	years, err := repo.Years()
	require.NoError(t, err)
	years[0]["1st Year"][0].Tags[0] = "mutated"
	years[0]["2nd Year"] = nil
	delete(years[1], "Summer")
	years[1] = nil

	again, err := repo.Years()
	require.NoError(t, err)
	assert.Equal(t, "A1", again[0]["1st Year"][0].Tags[0])
	assert.Len(t, again[0]["2nd Year"], 1)
	assert.Contains(t, again[1], "Summer")

	courses, err := repo.Flatten()
	require.NoError(t, err)
	assert.Len(t, courses, 5)
}

func TestCourseRepository_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(twoYearDoc), 0o600))

	repo := NewCourseRepository(FileSource{Path: path}, zerolog.Nop())
	require.NoError(t, repo.Load(context.Background()))
	assert.True(t, repo.Loaded())
}

func TestCourseRepository_LoadErrors(t *testing.T) {
	cases := map[string]Source{
		"missing file":   FileSource{Path: filepath.Join(t.TempDir(), "nope.json")},
		"invalid json":   BytesSource(`[{"1st Year": [`),
		"not an array":   BytesSource(`{"1st Year": []}`),
		"null document":  BytesSource(`null`),
		"too few tags":   BytesSource(`[{"1st Year": [{"description": "X", "tags": ["X1"]}]}]`),
		"missing source": nil,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			repo := NewCourseRepository(src, zerolog.Nop())

			err := repo.Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrLoad))
			assert.False(t, repo.Loaded())

			_, err = repo.Years()
			assert.True(t, errors.Is(err, apperrors.ErrQuery))
			_, err = repo.Flatten()
			assert.True(t, errors.Is(err, apperrors.ErrQuery))
		})
	}
}

func TestCourseRepository_NotLoaded(t *testing.T) {
	repo := NewCourseRepository(BytesSource(twoYearDoc), zerolog.Nop())

	_, err := repo.Years()
	assert.True(t, errors.Is(err, apperrors.ErrQuery))
}

func TestNewCourseRepositoryFromYears(t *testing.T) {
	repo := NewCourseRepositoryFromYears([]models.Year{
		{"3rd Year": {{Description: "C", Tags: []string{"C1", "Track"}}}},
	})

	courses, err := repo.Flatten()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "C1", courses[0].Name())
}
