package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droxline/stockmap/pkg/supply"
)

func TestAggregate(t *testing.T) {
	datasets := []*supply.Dataset{
		{
			Entity: "FOURNISSEUR_H",
			Records: []supply.Record{
				{ProductID: "A1", Quantity: 3},
				{ProductID: "B2", Quantity: 1},
			},
		},
		{
			Entity: "FOURNISSEUR_D",
			Records: []supply.Record{
				{ProductID: "A1", Quantity: 4},
				{ProductID: "C3", Quantity: 2},
			},
		},
	}

	c := supply.Aggregate(datasets)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"A1", "B2", "C3"}, c.ProductIDs())

	total, ok := c.Total("A1")
	require.True(t, ok)
	assert.Equal(t, 7, total)

	_, ok = c.Total("ZZ")
	assert.False(t, ok)

	assert.Equal(t, map[string]int{
		"FOURNISSEUR_H": 3,
		"FOURNISSEUR_D": 4,
	}, c.Contributions("A1"))
	assert.Nil(t, c.Contributions("ZZ"))
}

// Sums are commutative: supplier order must not change the result.
func TestAggregateOrderIndependent(t *testing.T) {
	a := &supply.Dataset{Entity: "A", Records: []supply.Record{{ProductID: "X", Quantity: 2}}}
	b := &supply.Dataset{Entity: "B", Records: []supply.Record{{ProductID: "X", Quantity: 5}}}

	first := supply.Aggregate([]*supply.Dataset{a, b})
	second := supply.Aggregate([]*supply.Dataset{b, a})

	assert.Equal(t, first.ProductIDs(), second.ProductIDs())
	for _, id := range first.ProductIDs() {
		t1, _ := first.Total(id)
		t2, _ := second.Total(id)
		assert.Equal(t, t1, t2)
	}
}

// Duplicate ids inside one supplier sum as well.
func TestAggregateSumsInSupplierDuplicates(t *testing.T) {
	ds := &supply.Dataset{Entity: "A", Records: []supply.Record{
		{ProductID: "X", Quantity: 2},
		{ProductID: "X", Quantity: 3},
	}}

	c := supply.Aggregate([]*supply.Dataset{ds})
	total, ok := c.Total("X")
	require.True(t, ok)
	assert.Equal(t, 5, total)
	assert.Equal(t, map[string]int{"A": 5}, c.Contributions("X"))
}

func TestAggregateEmpty(t *testing.T) {
	c := supply.Aggregate(nil)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.ProductIDs())
}
