package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRegistry() *Categories {
	c := NewCategories()
	c.AddCategory("PARK", "10 and Under")
	c.AddCategory("PARK", "Open Men")
	c.AddCategory("STREET", "Junior Street")
	c.AddCategory("STREET", "Open Street")
	return c
}

// TestCategories_AddRemove covers the no-op semantics of every mutator:
// duplicate adds are ignored and removals of unknown entries do nothing.
func TestCategories_AddRemove(t *testing.T) {
	t.Run("duplicate discipline is a no-op", func(t *testing.T) {
		c := seedRegistry()
		c.AddDiscipline("PARK")
		assert.Equal(t, []string{"PARK", "STREET"}, c.Disciplines())
	})

	t.Run("duplicate category is a no-op", func(t *testing.T) {
		c := seedRegistry()
		c.AddCategory("PARK", "Open Men")
		assert.Equal(t, []string{"10 and Under", "Open Men"}, c.For("PARK"))
	})

	t.Run("add category creates missing discipline", func(t *testing.T) {
		c := seedRegistry()
		c.AddCategory("FLAT", "Open Flat")
		assert.Equal(t, []string{"PARK", "STREET", "FLAT"}, c.Disciplines())
		assert.Equal(t, []string{"Open Flat"}, c.For("FLAT"))
	})

	t.Run("remove discipline drops its categories", func(t *testing.T) {
		c := seedRegistry()
		c.RemoveDiscipline("PARK")
		assert.Equal(t, []string{"STREET"}, c.Disciplines())
		assert.Empty(t, c.For("PARK"))
	})

	t.Run("remove unknown discipline is a no-op", func(t *testing.T) {
		c := seedRegistry()
		c.RemoveDiscipline("VERT")
		assert.Equal(t, 2, c.Len())
	})

	t.Run("remove category", func(t *testing.T) {
		c := seedRegistry()
		c.RemoveCategory("STREET", "Junior Street")
		assert.Equal(t, []string{"Open Street"}, c.For("STREET"))
	})

	t.Run("remove unknown category is a no-op", func(t *testing.T) {
		c := seedRegistry()
		c.RemoveCategory("STREET", "Pro Street")
		c.RemoveCategory("VERT", "Open Vert")
		assert.Equal(t, []string{"Junior Street", "Open Street"}, c.For("STREET"))
	})
}

// TestCategories_Flattened verifies the deterministic discipline-major,
// insertion-order flattening in both plain and prefixed forms.
func TestCategories_Flattened(t *testing.T) {
	c := seedRegistry()

	assert.Equal(t,
		[]string{"10 and Under", "Open Men", "Junior Street", "Open Street"},
		c.All())

	assert.Equal(t,
		[]string{
			"PARK - 10 and Under",
			"PARK - Open Men",
			"STREET - Junior Street",
			"STREET - Open Street",
		},
		c.AllPrefixed())
}

func TestCategories_ForUnknownDiscipline(t *testing.T) {
	c := seedRegistry()
	assert.Empty(t, c.For("VERT"), "unknown discipline yields empty, not error")
}

// TestCategories_JSONOrderPreserved verifies that the custom JSON codec
// keeps discipline order across a round trip, which plain map decoding
// would randomize.
func TestCategories_JSONOrderPreserved(t *testing.T) {
	c := NewCategories()
	// Insertion order deliberately not alphabetical.
	c.AddCategory("STREET", "Open Street")
	c.AddCategory("PARK", "Open Men")
	c.AddCategory("FLAT", "Open Flat")

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"STREET":["Open Street"],"PARK":["Open Men"],"FLAT":["Open Flat"]}`,
		string(data))

	decoded := NewCategories()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, []string{"STREET", "PARK", "FLAT"}, decoded.Disciplines())
	assert.Equal(t, c.AllPrefixed(), decoded.AllPrefixed())
}

func TestCategories_UnmarshalRejectsNonObject(t *testing.T) {
	c := NewCategories()
	err := json.Unmarshal([]byte(`["PARK"]`), c)
	require.Error(t, err)
}

func TestCategories_Clone(t *testing.T) {
	c := seedRegistry()
	clone := c.Clone()

	clone.AddCategory("PARK", "Pro Men")
	clone.RemoveDiscipline("STREET")

	assert.Equal(t, []string{"10 and Under", "Open Men"}, c.For("PARK"),
		"mutating the clone must not affect the original")
	assert.Equal(t, 2, c.Len())
}
