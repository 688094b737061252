package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProductFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, productFilter(ProductFilters{}))

	assert.Equal(t,
		bson.M{"category": "shoes"},
		productFilter(ProductFilters{Category: "shoes"}))

	assert.Equal(t,
		bson.M{"price": bson.M{"$gte": int64(250000)}},
		productFilter(ProductFilters{MinPrice: 250000}))

	assert.Equal(t,
		bson.M{"category": "shoes", "price": bson.M{"$gte": int64(100)}},
		productFilter(ProductFilters{Category: "shoes", MinPrice: 100}))
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageLimit, limit)

	page, limit = NormalizePage(-3, 1000)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageLimit, limit)

	page, limit = NormalizePage(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}
