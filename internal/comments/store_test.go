package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductNotesLastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetProduct("A1", "sin cadena")
	s.SetProduct("A1", "con cadena larga")

	text, ok := s.Product("A1")
	require.True(t, ok)
	assert.Equal(t, "con cadena larga", text)
}

func TestEmptyStringIsKept(t *testing.T) {
	s := NewStore()
	s.SetProduct("A1", "algo")
	s.SetProduct("A1", "")

	text, ok := s.Product("A1")
	require.True(t, ok)
	assert.Equal(t, "", text)
	assert.False(t, s.IsEmpty())
}

func TestRemoveProduct(t *testing.T) {
	s := NewStore()
	s.SetProduct("A1", "algo")
	s.RemoveProduct("A1")

	_, ok := s.Product("A1")
	assert.False(t, ok)
	assert.True(t, s.IsEmpty())
}

func TestOrderNote(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "", s.OrderNote())

	s.SetOrderNote("entregar antes del viernes")
	assert.Equal(t, "entregar antes del viernes", s.OrderNote())
	assert.False(t, s.IsEmpty())
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.SetProduct("A1", "algo")
	s.SetOrderNote("nota")
	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, "", s.OrderNote())
}

func TestSnapshotRestore(t *testing.T) {
	s := NewStore()
	s.SetProduct("A1", "sin cadena")
	s.SetProduct("B2", "")
	s.SetOrderNote("nota final")

	restored := Restore(s.Snapshot(), s.OrderNote())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assert.Equal(t, "nota final", restored.OrderNote())
}
