package cardvision

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceDBSaveLoadRoundTrip(t *testing.T) {
	entries := []ReferenceEntry{
		{Name: "Lightning Bolt", Hash: newHash(64)},
		{Name: "Black Lotus", Hash: newHash(64)},
	}
	entries[0].Hash.setBit(3)
	entries[1].Hash.setBit(40)

	path := filepath.Join(t.TempDir(), "ref.gob")
	assert.NoError(t, SaveReferenceDB(path, entries))

	loaded, err := LoadReferenceDB(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(loaded))
	assert.Equal(t, "Lightning Bolt", loaded[0].Name)
	assert.Equal(t, "Black Lotus", loaded[1].Name)
	assert.Equal(t, 0, entries[0].Hash.Distance(loaded[0].Hash))
	assert.Equal(t, 0, entries[1].Hash.Distance(loaded[1].Hash))
}

func TestLoadReferenceDBMissingFile(t *testing.T) {
	_, err := LoadReferenceDB(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}
