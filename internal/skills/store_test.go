package skills

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource counts how many times the backing resource was read.
type countingSource struct {
	calls  atomic.Int32
	skills []Skill
	err    error
}

func (c *countingSource) List(_ context.Context) ([]Skill, error) {
	c.calls.Add(1)
	return c.skills, c.err
}

func TestStore_LoadCachesFirstResult(t *testing.T) {
	source := &countingSource{skills: []Skill{{Name: "Barani"}}}
	store := NewStore(source)

	first, err := store.Load(context.Background())
	require.NoError(t, err)
	second, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), source.calls.Load())
}

func TestStore_ConcurrentFirstLoadsCollapse(t *testing.T) {
	source := &countingSource{skills: []Skill{{Name: "Barani"}}}
	store := NewStore(source)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := store.Load(context.Background())
			assert.NoError(t, err)
			assert.Len(t, list, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.calls.Load())
}

func TestStore_FailedLoadIsNotCached(t *testing.T) {
	source := &countingSource{err: errors.New("disk on fire")}
	store := NewStore(source)

	_, err := store.Load(context.Background())
	require.Error(t, err)

	source.err = nil
	source.skills = []Skill{{Name: "Barani"}}

	list, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int32(2), source.calls.Load())
}

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skills.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFileSource_ParsesRows(t *testing.T) {
	path := writeDataset(t, `skill,notation,difficulty,description
Barani,f F,0.6,Front somersault with a half twist
Triffis / Triff (Triff Pike),3 4 / <,1.7,Triple front somersault with a half twist
`)

	list, err := FileSource{Path: path}.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Barani", list[0].Name)
	assert.Equal(t, "f F", list[0].Notation)
	assert.Equal(t, 0.6, list[0].Difficulty)
	assert.Equal(t, "Front somersault with a half twist", list[0].Description)

	assert.Equal(t, "Triffis / Triff (Triff Pike)", list[1].Name)
	assert.Equal(t, 1.7, list[1].Difficulty)
}

func TestFileSource_QuotedFieldWithComma(t *testing.T) {
	path := writeDataset(t, `skill,notation,difficulty,description
Rudolph (Rudy),f 1.5,1.0,"Front somersault, one and a half twists"
`)

	list, err := FileSource{Path: path}.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Front somersault, one and a half twists", list[0].Description)
}

func TestFileSource_SkipsEmptyNameRows(t *testing.T) {
	path := writeDataset(t, `skill,notation,difficulty,description
,x,0.5,row without a name
Barani,f F,0.6,fine
  ,y,0.7,whitespace-only name
`)

	list, err := FileSource{Path: path}.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Barani", list[0].Name)
}

func TestFileSource_BadDifficultyDefaultsToZero(t *testing.T) {
	path := writeDataset(t, `skill,notation,difficulty,description
Barani,f F,not-a-number,desc
Crash Dive,,-1,desc
Short Row,x
`)

	list, err := FileSource{Path: path}.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 0.0, list[0].Difficulty)
	assert.Equal(t, 0.0, list[1].Difficulty)
	assert.Equal(t, 0.0, list[2].Difficulty)
	assert.Equal(t, "", list[2].Description)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open skill dataset")
}
