package services_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"petstore/internal/models"
	"petstore/internal/services"
	"petstore/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_AddIsIdempotent(t *testing.T) {
	store, _ := newStore()
	wishlist := services.NewWishlist(store, nil)

	p := product("p1", "Kibble", 10)
	wishlist.AddToWishlist(p)
	wishlist.AddToWishlist(p)

	assert.Equal(t, 1, wishlist.Count())
	assert.True(t, wishlist.IsInWishlist("p1"))
	assert.False(t, wishlist.IsInWishlist("p2"))
}

func TestWishlist_RemoveAndClear(t *testing.T) {
	store, _ := newStore()
	wishlist := services.NewWishlist(store, nil)
	wishlist.AddToWishlist(product("p1", "Kibble", 10))
	wishlist.AddToWishlist(product("p2", "Leash", 5))

	wishlist.RemoveFromWishlist("p1")
	wishlist.RemoveFromWishlist("missing")
	require.Len(t, wishlist.Items(), 1)
	assert.Equal(t, "p2", wishlist.Items()[0].ID)

	wishlist.ClearWishlist()
	assert.Zero(t, wishlist.Count())
}

func TestWishlist_PersistsAndHydrates(t *testing.T) {
	store, _ := newStore()
	wishlist := services.NewWishlist(store, nil)
	wishlist.AddToWishlist(product("p2", "Leash", 5))
	wishlist.AddToWishlist(product("p1", "Kibble", 10))

	reloaded := services.NewWishlist(store, nil)
	assert.Equal(t, wishlist.Items(), reloaded.Items())
}

func TestWishlist_HydrationDropsDuplicates(t *testing.T) {
	store, repo := newStore()
	raw, err := json.Marshal([]models.WishlistEntry{
		product("p1", "Kibble", 10),
		product("p1", "Kibble", 10),
		product("", "Nameless", 1),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Put(storage.DefaultNamespace, storage.WishlistKey, raw))

	wishlist := services.NewWishlist(store, nil)
	assert.Equal(t, 1, wishlist.Count())
}

func TestWishlist_ObserversSkipNoOps(t *testing.T) {
	store, _ := newStore()
	wishlist := services.NewWishlist(store, nil)

	var counts []int
	wishlist.Subscribe(func(items []models.WishlistEntry) {
		counts = append(counts, len(items))
	})

	wishlist.AddToWishlist(product("p1", "Kibble", 10))
	wishlist.AddToWishlist(product("p1", "Kibble", 10))
	wishlist.AddToWishlist(product("p2", "Leash", 5))
	wishlist.RemoveFromWishlist("missing")
	wishlist.ClearWishlist()
	wishlist.ClearWishlist()

	assert.Equal(t, []int{1, 2, 0}, counts)
}

func TestWishlist_ObserversSeeMutationsInOrder(t *testing.T) {
	store, _ := newStore()
	wishlist := services.NewWishlist(store, nil)

	var counts []int
	wishlist.Subscribe(func(items []models.WishlistEntry) {
		counts = append(counts, len(items))
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			wishlist.AddToWishlist(product(fmt.Sprintf("p%d", i), "Toy", 3))
		}()
	}
	wg.Wait()

	require.Len(t, counts, 20)
	for i, n := range counts {
		assert.Equal(t, i+1, n)
	}
}
