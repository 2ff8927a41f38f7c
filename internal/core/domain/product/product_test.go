package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
)

func TestDecodeID_RoundTrip(t *testing.T) {
	id := product.NewID()
	s := product.EncodeID(id)
	require.Len(t, s, 24)

	back, err := product.DecodeID(s)
	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestDecodeID_Invalid(t *testing.T) {
	for _, s := range []string{"", "not-a-valid-id", "507f1f77bcf86cd79943901", "507f1f77bcf86cd79943901z"} {
		_, err := product.DecodeID(s)
		require.ErrorIs(t, err, product.ErrInvalidIdentifier, s)
	}
}

func TestFromFields_RoundTrip(t *testing.T) {
	p := &product.Product{ID: "507f1f77bcf86cd799439011", Name: "Widget", Country: "US", Price: 10, Stock: 3}
	got, err := product.FromFields(p.Fields())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestFromFields_MissingRequired(t *testing.T) {
	_, err := product.FromFields(map[string]any{"name": "Widget", "country": "US"})
	require.ErrorIs(t, err, product.ErrCacheDecode)
}

func TestFromFields_WrongType(t *testing.T) {
	_, err := product.FromFields(map[string]any{"name": "Widget", "country": "US", "price": "10"})
	require.ErrorIs(t, err, product.ErrCacheDecode)
}

func TestCoerce(t *testing.T) {
	v, err := product.Coerce("price", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = product.Coerce("stock", "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	v, err = product.Coerce("name", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	v, err = product.Coerce("colour", "red")
	require.NoError(t, err)
	assert.Equal(t, "red", v)

	_, err = product.Coerce("price", "ten")
	require.ErrorIs(t, err, product.ErrCacheDecode)
}

func TestFilter_Validate(t *testing.T) {
	require.NoError(t, product.NaturalKey("Widget", "US").Validate())
	require.Error(t, product.Filter{"colour": "red"}.Validate())
	assert.Equal(t, []string{"country", "name"}, product.NaturalKey("Widget", "US").Keys())
}
