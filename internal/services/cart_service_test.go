package services_test

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"petstore/internal/models"
	"petstore/internal/repositories"
	"petstore/internal/services"
	"petstore/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newStore() (*storage.Adapter, *repositories.MockKeyValueRepository) {
	repo := repositories.NewMockKeyValueRepository()
	return storage.NewAdapter(repo, 0, zap.NewNop()), repo
}

func product(id, name string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Price: price, Category: "Food", Brand: "Acme", PetType: "Dog"}
}

func TestCart_AddToCartMergesLines(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)

	p := product("p1", "Kibble", 19.99)
	cart.AddToCart(p, 1)
	cart.AddToCart(p, 1)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, cart.TotalItems())
	assert.Equal(t, "39.98", cart.TotalPrice().StringFixed(2))
}

func TestCart_AddToCartClampsQuantity(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)

	cart.AddToCart(product("p1", "Kibble", 5), 0)
	cart.AddToCart(product("p2", "Leash", 5), -3)

	for _, item := range cart.Items() {
		assert.Equal(t, 1, item.Quantity)
	}
}

func TestCart_KeepsInsertionOrder(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)

	cart.AddToCart(product("b", "B", 1), 1)
	cart.AddToCart(product("a", "A", 1), 1)
	cart.AddToCart(product("b", "B", 1), 1)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestCart_UpdateQuantity(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)
	cart.AddToCart(product("p1", "Kibble", 10), 1)
	cart.AddToCart(product("p2", "Leash", 4.5), 1)

	cart.UpdateQuantity("p1", 5)
	line, ok := cart.Line("p1")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)

	cart.UpdateQuantity("missing", 3)
	assert.Len(t, cart.Items(), 2)

	cart.UpdateQuantity("p2", 0)
	_, ok = cart.Line("p2")
	assert.False(t, ok)
	assert.Equal(t, 5, cart.TotalItems())
	assert.Equal(t, "50", cart.TotalPrice().String())
}

func TestCart_RemoveAndClear(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)
	cart.AddToCart(product("p1", "Kibble", 10), 1)
	cart.AddToCart(product("p2", "Leash", 5), 2)

	cart.RemoveFromCart("p1")
	cart.RemoveFromCart("p1")
	assert.Len(t, cart.Items(), 1)

	cart.ClearCart()
	assert.Empty(t, cart.Items())
	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCart_PersistsAndHydrates(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)
	cart.AddToCart(product("p1", "Kibble", 19.99), 2)
	cart.AddToCart(product("p2", "Leash", 7.5), 1)

	reloaded := services.NewCart(store, nil)
	assert.Equal(t, cart.Items(), reloaded.Items())
	assert.True(t, cart.TotalPrice().Equal(reloaded.TotalPrice()))
}

func TestCart_QuantityIsCapped(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)
	kibble := product("p1", "Kibble", 2.5)

	cart.AddToCart(kibble, math.MaxInt)
	cart.AddToCart(kibble, 1)

	line, ok := cart.Line("p1")
	require.True(t, ok)
	assert.Equal(t, models.MaxLineQuantity, line.Quantity)
	assert.Equal(t, models.MaxLineQuantity, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsPositive())

	cart.UpdateQuantity("p1", math.MaxInt)
	line, _ = cart.Line("p1")
	assert.Equal(t, models.MaxLineQuantity, line.Quantity)

	reloaded := services.NewCart(store, nil)
	line, _ = reloaded.Line("p1")
	assert.Equal(t, models.MaxLineQuantity, line.Quantity)
}

func TestCart_HydrationCapsStoredQuantities(t *testing.T) {
	store, repo := newStore()
	stored := []models.CartLineItem{
		{Product: product("p1", "Kibble", 10), Quantity: math.MaxInt},
		{Product: product("p1", "Kibble", 10), Quantity: math.MaxInt},
	}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, repo.Put(storage.DefaultNamespace, storage.CartKey, raw))

	cart := services.NewCart(store, nil)
	assert.Equal(t, models.MaxLineQuantity, cart.TotalItems())
}

func TestCart_RemoveLines(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)
	cart.AddToCart(product("p1", "Kibble", 10), 2)
	cart.AddToCart(product("p2", "Leash", 5), 1)
	ordered := cart.Items()

	cart.AddToCart(product("p1", "Kibble", 10), 3)
	cart.AddToCart(product("p3", "Bowl", 4), 1)
	cart.RemoveFromCart("p2")

	cart.RemoveLines(ordered)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "p3", items[1].ID)
}

func TestCart_HydrationDropsInvalidLines(t *testing.T) {
	store, repo := newStore()
	stored := []models.CartLineItem{
		{Product: product("p1", "Kibble", 10), Quantity: 1},
		{Product: product("", "Nameless", 10), Quantity: 1},
		{Product: product("p2", "Leash", 5), Quantity: 0},
		{Product: product("p1", "Kibble", 10), Quantity: 2},
	}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, repo.Put(storage.DefaultNamespace, storage.CartKey, raw))

	cart := services.NewCart(store, nil)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCart_CorruptStorageStartsEmpty(t *testing.T) {
	repo := repositories.NewMockKeyValueRepository()
	require.NoError(t, repo.Put(storage.DefaultNamespace, storage.CartKey, []byte("{not json")))
	core, logs := observer.New(zapcore.WarnLevel)
	store := storage.NewAdapter(repo, 0, zap.New(core))

	cart := services.NewCart(store, nil)

	assert.Empty(t, cart.Items())
	assert.Equal(t, 1, logs.FilterMessage("stored value is corrupt, using default").Len())
}

func TestCart_VisibilityIsNotPersisted(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)

	assert.False(t, cart.IsOpen())
	assert.True(t, cart.ToggleVisibility())
	assert.True(t, cart.IsOpen())
	cart.SetOpen(false)
	assert.False(t, cart.IsOpen())

	cart.SetOpen(true)
	assert.False(t, services.NewCart(store, nil).IsOpen())
}

func TestCart_Observers(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)

	var calls []string
	unsubscribeFirst := cart.Subscribe(func(items []models.CartLineItem) {
		calls = append(calls, "first")
	})
	cart.Subscribe(func(items []models.CartLineItem) {
		calls = append(calls, "second")
		assert.NotEmpty(t, items)
	})

	cart.AddToCart(product("p1", "Kibble", 1), 1)
	assert.Equal(t, []string{"first", "second"}, calls)

	// No-op mutations are silent.
	cart.RemoveFromCart("missing")
	cart.UpdateQuantity("p1", 1)
	assert.Len(t, calls, 2)

	unsubscribeFirst()
	unsubscribeFirst()
	cart.AddToCart(product("p1", "Kibble", 1), 1)
	assert.Equal(t, []string{"first", "second", "second"}, calls)
}

func TestCart_ObserversSeeMutationsInOrder(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)

	var seen []int
	cart.Subscribe(func(items []models.CartLineItem) {
		seen = append(seen, items[0].Quantity)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart.AddToCart(product("p1", "Kibble", 1), 1)
		}()
	}
	wg.Wait()

	require.Len(t, seen, 50)
	for i, quantity := range seen {
		assert.Equal(t, i+1, quantity)
	}
	assert.Equal(t, cart.TotalItems(), seen[len(seen)-1])
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)
	cart.AddToCart(product("p1", "Kibble", 1), 1)

	items := cart.Items()
	items[0].Quantity = 99

	line, _ := cart.Line("p1")
	assert.Equal(t, 1, line.Quantity)
}

// Totals always agree with the lines, whatever sequence of operations ran.
func TestCart_TotalsMatchLines(t *testing.T) {
	store, _ := newStore()
	cart := services.NewCart(store, nil)
	products := []models.Product{
		product("a", "A", 0.1),
		product("b", "B", 0.2),
		product("c", "C", 19.99),
	}

	for step := 0; step < 60; step++ {
		p := products[step%len(products)]
		switch step % 5 {
		case 0, 1:
			cart.AddToCart(p, step%4)
		case 2:
			cart.UpdateQuantity(p.ID, step%3)
		case 3:
			cart.RemoveFromCart(products[(step+1)%len(products)].ID)
		case 4:
			if step%20 == 4 {
				cart.ClearCart()
			}
		}

		seen := map[string]bool{}
		count := 0
		for _, item := range cart.Items() {
			assert.False(t, seen[item.ID], "duplicate line %s", item.ID)
			seen[item.ID] = true
			assert.GreaterOrEqual(t, item.Quantity, 1)
			count += item.Quantity
		}
		assert.Equal(t, count, cart.TotalItems())
	}
}
