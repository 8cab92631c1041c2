package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveProductAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.SaveProduct(Product{Name: "Netflix", Price: 50000})
	require.NoError(t, err)
	assert.Equal(t, 1, id1)

	id2, err := s.SaveProduct(Product{Name: "Spotify", Price: 30000})
	require.NoError(t, err)
	assert.Equal(t, 2, id2)

	// после удаления ID не переиспользуются
	require.NoError(t, s.DeleteProduct(1))
	id3, err := s.SaveProduct(Product{Name: "YouTube", Price: 20000})
	require.NoError(t, err)
	assert.Equal(t, 3, id3)
}

func TestSaveProductUpdateInheritsFields(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SaveProduct(Product{Name: "Netflix", Price: 50000, Description: "4K plan"})
	require.NoError(t, err)

	// пустые имя и описание наследуются от старой записи
	_, err = s.SaveProduct(Product{ID: id, Price: 60000})
	require.NoError(t, err)

	p, err := s.GetProduct(id)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", p.Name)
	assert.Equal(t, "4K plan", p.Description)
	assert.Equal(t, 60000.0, p.Price)

	products, err := s.AllProducts()
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestIsFreeRecomputedFromPrice(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SaveProduct(Product{Name: "Trial", Price: 0})
	require.NoError(t, err)

	p, err := s.GetProduct(id)
	require.NoError(t, err)
	assert.True(t, p.IsFree)

	_, err = s.SaveProduct(Product{ID: id, Price: 10000})
	require.NoError(t, err)
	p, err = s.GetProduct(id)
	require.NoError(t, err)
	assert.False(t, p.IsFree)
}

func TestDefaultDescription(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SaveProduct(Product{Name: "Netflix", Price: 50000})
	require.NoError(t, err)

	p, err := s.GetProduct(id)
	require.NoError(t, err)
	assert.Equal(t, "Sản phẩm: Netflix", p.Description)
}

func TestDeleteProductCascadesInventory(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SaveProduct(Product{Name: "Netflix", Price: 50000})
	require.NoError(t, err)
	other, err := s.SaveProduct(Product{Name: "Spotify", Price: 30000})
	require.NoError(t, err)

	_, err = s.AddAccounts(id, []string{"a:1", "a:2"})
	require.NoError(t, err)
	_, err = s.AddAccounts(other, []string{"b:1"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(id))

	_, err = s.GetProduct(id)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := s.CountAvailable(id)
	require.NoError(t, err)
	assert.Zero(t, count)

	// склад другого продукта не затронут
	count, err = s.CountAvailable(other)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteProductNotFound(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteProduct(99), ErrNotFound)
}
