package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emekaobi/storefront-backend/models"
)

func product(id string, price int64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price}
}

func TestStore_Add_NewAndExisting(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add(product("A", 1000)))
	require.NoError(t, s.Add(product("A", 1000)))
	require.NoError(t, s.Add(product("A", 1000)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestStore_Add_MissingID(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 1000)))

	err := s.Add(models.Product{Name: "no id", Price: 500})
	assert.ErrorIs(t, err, ErrMissingProductID)

	// cart unchanged
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ProductID)
}

func TestStore_Decrease_FloorsAtOne(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 1000)))

	s.Decrease("A")
	s.Decrease("A")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_IncreaseDecrease_UnknownID_NoOp(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 1000)))

	s.Increase("missing")
	s.Decrease("missing")
	s.Remove("missing")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 1000)))
	require.NoError(t, s.Add(product("B", 500)))

	s.Remove("A")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].ProductID)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 1000)))
	require.NoError(t, s.Add(product("B", 500)))

	s.Clear()

	assert.Empty(t, s.Items())
	assert.Equal(t, int64(0), s.Total())
}

// Cart [{A, 1000, qty 2}], add B(500) -> 2500; decrease A -> 2000;
// decrease A again -> still 2000.
func TestStore_TotalScenario(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 1000)))
	require.NoError(t, s.Add(product("A", 1000)))
	require.NoError(t, s.Add(product("B", 500)))

	assert.Equal(t, int64(2500), s.Total())

	s.Decrease("A")
	assert.Equal(t, int64(2000), s.Total())

	s.Decrease("A")
	items := s.Items()
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(2000), s.Total())
}

func TestStore_Total_NoCrossItemInterference(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 300)))
	require.NoError(t, s.Add(product("B", 700)))

	s.Increase("B")
	s.Increase("B")
	s.Decrease("A")

	// A stays at 1, B at 3
	assert.Equal(t, int64(300+3*700), s.Total())
}

func TestStore_Replace_SanitizesLoadedItems(t *testing.T) {
	s := NewStore()

	s.Replace([]models.CartItem{
		{ProductID: "A", Price: 100, Quantity: 0},
		{ProductID: "", Price: 999, Quantity: 5},
		{ProductID: "A", Price: 100, Quantity: 2},
		{ProductID: "B", Price: 50, Quantity: -3},
	})

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity) // 0 floored to 1, merged with 2
	assert.Equal(t, "B", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestStore_ObserverNotifiedAfterEachMutation(t *testing.T) {
	s := NewStore()

	var notifications [][]models.CartItem
	s.Subscribe(func(items []models.CartItem) {
		notifications = append(notifications, items)
	})

	require.NoError(t, s.Add(product("A", 1000)))
	s.Increase("A")
	s.Clear()

	require.Len(t, notifications, 3)
	assert.Equal(t, 2, notifications[1][0].Quantity)
	assert.Empty(t, notifications[2])
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product("A", 1000)))

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestStore_Visibility(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Visible())
	s.SetVisible(true)
	assert.True(t, s.Visible())
}
