package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorline/storefront/pkg/db/dbtest"
	"github.com/tailorline/storefront/pkg/enums"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

func seededService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	n, err := SeedFromFile(context.Background(), repo, "testdata/catalog.yaml")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestListFiltersByCategory(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	womens, err := svc.List(ctx, "WOMENS")
	require.NoError(t, err)
	require.Len(t, womens, 1)
	assert.Equal(t, enums.ProductCategoryWomens, womens[0].Category)
	assert.Equal(t, int64(18000), womens[0].Price)
	assert.Equal(t, []string{"XS", "S", "M", "L"}, womens[0].Sizes)

	_, err = svc.List(ctx, "kids")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListNeverReturnsNilSlices(t *testing.T) {
	svc, _ := seededService(t)
	mens, err := svc.List(context.Background(), "mens")
	require.NoError(t, err)
	for _, p := range mens {
		if p.Name == "Charcoal Three Piece" {
			assert.NotNil(t, p.ImageURLs)
			assert.Empty(t, p.ImageURLs)
		}
	}
}

func TestGetMissingProduct(t *testing.T) {
	svc, _ := seededService(t)
	_, err := svc.Get(context.Background(), 999)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, repo := seededService(t)
	_, err := SeedFromFile(context.Background(), repo, "testdata/catalog.yaml")
	require.NoError(t, err)
	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestParseSeedRejectsBadEntries(t *testing.T) {
	tests := map[string]string{
		"unknown category": "products:\n  - name: A\n    category: kids\n    price: \"1\"\n",
		"bad price":        "products:\n  - name: A\n    category: mens\n    price: abc\n",
		"negative price":   "products:\n  - name: A\n    category: mens\n    price: \"-5\"\n",
		"duplicate":        "products:\n  - name: A\n    category: mens\n    price: \"1\"\n  - name: A\n    category: mens\n    price: \"2\"\n",
		"unknown field":    "products:\n  - name: A\n    category: mens\n    price: \"1\"\n    colour: red\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}
