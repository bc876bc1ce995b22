package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/search-server/model"
)

func TestDocumentStore(t *testing.T) {
	ds := NewDocumentStore()
	ds.Add(5, DocumentData{Rating: 2, Status: model.StatusActual})
	ds.Add(1, DocumentData{Rating: -1, Status: model.StatusBanned})

	assert.Equal(t, 2, ds.Count())
	assert.True(t, ds.Has(5))
	assert.False(t, ds.Has(2))

	data, ok := ds.Get(1)
	assert.True(t, ok)
	assert.Equal(t, model.StatusBanned, data.Status)
	assert.Equal(t, -1, data.Rating)

	id, ok := ds.IDAt(0)
	assert.True(t, ok)
	assert.Equal(t, 5, id)
	id, ok = ds.IDAt(1)
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = ds.IDAt(2)
	assert.False(t, ok)
	_, ok = ds.IDAt(-1)
	assert.False(t, ok)

	ids := ds.IDs()
	ids[0] = 99
	assert.Equal(t, []int{5, 1}, ds.IDs(), "IDs must return a copy")
}
