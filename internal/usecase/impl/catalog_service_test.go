package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionService_CreateAndUpdate(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()

	_, err := f.collections.Create(ctx, &usecase.CollectionInput{})
	var ve *domainerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{domainerrors.MsgRequired}, ve.Fields()["title"])

	collection := f.createCollection(t, "Grocery")

	updated, err := f.collections.Update(ctx, collection.ID, &usecase.CollectionInput{Title: ptr("Pantry")}, false)
	require.NoError(t, err)
	assert.Equal(t, "Pantry", updated.Title)

	unchanged, err := f.collections.Update(ctx, collection.ID, &usecase.CollectionInput{}, true)
	require.NoError(t, err)
	assert.Equal(t, "Pantry", unchanged.Title)

	_, err = f.collections.Update(ctx, collection.ID, &usecase.CollectionInput{}, false)
	require.ErrorAs(t, err, &ve)

	_, err = f.collections.Update(ctx, 999, &usecase.CollectionInput{Title: ptr("x")}, false)
	assert.ErrorIs(t, err, domainerrors.ErrCollectionNotFound)
}

func TestCollectionService_Delete(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()
	full := f.createCollection(t, "Full")
	empty := f.createCollection(t, "Empty")
	f.createProduct(t, full.ID, "bread", "2.00", 5)

	assert.ErrorIs(t, f.collections.Delete(ctx, full.ID), domainerrors.ErrCollectionHasProducts)
	require.NoError(t, f.collections.Delete(ctx, empty.ID))
	assert.ErrorIs(t, f.collections.Delete(ctx, empty.ID), domainerrors.ErrCollectionNotFound)
}

func TestCollectionService_SetFeaturedProduct(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()
	bakery := f.createCollection(t, "Bakery")
	dairy := f.createCollection(t, "Dairy")
	bread := f.createProduct(t, bakery.ID, "bread", "2.00", 5)
	milk := f.createProduct(t, dairy.ID, "milk", "1.20", 5)

	collection, err := f.collections.SetFeaturedProduct(ctx, bakery.ID, &bread.ID)
	require.NoError(t, err)
	assert.Equal(t, bread.ID, *collection.FeaturedProductID)

	tests := []struct {
		name      string
		productID uint
		message   string
	}{
		{name: "product of another collection", productID: milk.ID, message: "Product does not belong to this collection."},
		{name: "unknown product", productID: 999, message: `Invalid pk "999" - object does not exist.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.collections.SetFeaturedProduct(ctx, bakery.ID, &tt.productID)

			var ve *domainerrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, []string{tt.message}, ve.Fields()["product_id"])
		})
	}

	cleared, err := f.collections.SetFeaturedProduct(ctx, bakery.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.FeaturedProductID)
}

func TestProductService_MovingCollectionClearsFeatured(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()
	bakery := f.createCollection(t, "Bakery")
	dairy := f.createCollection(t, "Dairy")
	bread := f.createProduct(t, bakery.ID, "bread", "2.00", 5)

	_, err := f.collections.SetFeaturedProduct(ctx, bakery.ID, &bread.ID)
	require.NoError(t, err)

	moved, err := f.products.Update(ctx, bread.ID, &usecase.ProductInput{CollectionID: &dairy.ID}, true)
	require.NoError(t, err)
	assert.Equal(t, dairy.ID, moved.CollectionID)

	collection, err := f.collections.Get(ctx, bakery.ID)
	require.NoError(t, err)
	assert.Nil(t, collection.FeaturedProductID)
	assert.Zero(t, collection.ProductsCount)
}

func TestProductService_CreateValidation(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()
	collection := f.createCollection(t, "Bakery")
	f.createProduct(t, collection.ID, "bread", "2.00", 5)

	_, err := f.products.Create(ctx, &usecase.ProductInput{Title: ptr("Nameless")})
	var ve *domainerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"slug", "unit_price", "inventory", "collection"} {
		assert.Contains(t, ve.Fields(), field)
	}

	_, err = f.products.Create(ctx, &usecase.ProductInput{
		Title:        ptr("Bread again"),
		Slug:         ptr("bread"),
		UnitPrice:    ptr(decimal.RequireFromString("3.00")),
		Inventory:    ptr(1),
		CollectionID: ptr(uint(999)),
		PromotionIDs: &[]uint{42},
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"product with this slug already exists."}, ve.Fields()["slug"])
	assert.Equal(t, []string{`Invalid pk "999" - object does not exist.`}, ve.Fields()["collection"])
	assert.Equal(t, []string{`Invalid pk "42" - object does not exist.`}, ve.Fields()["promotions"])

	_, err = f.products.Create(ctx, &usecase.ProductInput{
		Title:        ptr("Cake"),
		Slug:         ptr("cake"),
		UnitPrice:    ptr(decimal.Zero),
		Inventory:    ptr(-1),
		CollectionID: &collection.ID,
	})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "unit_price")
	assert.Contains(t, ve.Fields(), "inventory")
}

func TestProductService_Promotions(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()
	collection := f.createCollection(t, "Bakery")

	promotion, err := f.promotions.Create(ctx, &usecase.PromotionInput{Description: "Spring sale", Discount: 10})
	require.NoError(t, err)

	product, err := f.products.Create(ctx, &usecase.ProductInput{
		Title:        ptr("Bread"),
		Slug:         ptr("bread"),
		UnitPrice:    ptr(decimal.RequireFromString("2.00")),
		Inventory:    ptr(3),
		CollectionID: &collection.ID,
		PromotionIDs: &[]uint{promotion.ID},
	})
	require.NoError(t, err)
	require.Len(t, product.Promotions, 1)
	assert.Equal(t, "Spring sale", product.Promotions[0].Description)

	cleared, err := f.products.Update(ctx, product.ID, &usecase.ProductInput{PromotionIDs: &[]uint{}}, true)
	require.NoError(t, err)
	assert.Empty(t, cleared.Promotions)
}

func TestProductService_List(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()
	collection := f.createCollection(t, "Bakery")
	f.createProduct(t, collection.ID, "bagel", "3.00", 1)
	f.createProduct(t, collection.ID, "bread", "1.00", 1)
	f.createProduct(t, collection.ID, "croissant", "2.00", 1)

	page, err := f.products.List(ctx, &usecase.ProductQuery{Ordering: "unit_price"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Count)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "bread", page.Results[0].Slug)
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrevious())

	last, err := f.products.List(ctx, &usecase.ProductQuery{Ordering: "unit_price", Page: 2})
	require.NoError(t, err)
	require.Len(t, last.Results, 1)
	assert.Equal(t, "bagel", last.Results[0].Slug)
	assert.False(t, last.HasNext())

	clamped, err := f.products.List(ctx, &usecase.ProductQuery{PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, clamped.PageSize)

	_, err = f.products.List(ctx, &usecase.ProductQuery{Page: 3})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = f.products.List(ctx, &usecase.ProductQuery{Ordering: "inventory"})
	var ve *domainerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "ordering")

	assert.InDelta(t, 0.1, f.products.TaxRate(), 1e-9)
}

func TestReviewService(t *testing.T) {
	f := createTestServices(t)
	ctx := context.Background()
	collection := f.createCollection(t, "Bakery")
	bread := f.createProduct(t, collection.ID, "bread", "2.00", 1)
	bagel := f.createProduct(t, collection.ID, "bagel", "2.00", 1)

	review, err := f.reviews.Create(ctx, bread.ID, &usecase.ReviewInput{Name: "Alice", Description: "Crusty."})
	require.NoError(t, err)
	assert.Equal(t, review.Date, review.Date.Truncate(24*time.Hour))

	_, err = f.reviews.Create(ctx, 999, &usecase.ReviewInput{Name: "Alice", Description: "?"})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	_, err = f.reviews.Create(ctx, bread.ID, &usecase.ReviewInput{Description: "Anonymous"})
	var ve *domainerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "name")

	_, err = f.reviews.Get(ctx, bagel.ID, review.ID)
	assert.ErrorIs(t, err, domainerrors.ErrReviewNotFound)

	reviews, err := f.reviews.List(ctx, bread.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	require.NoError(t, f.reviews.Delete(ctx, bread.ID, review.ID))
	assert.ErrorIs(t, f.reviews.Delete(ctx, bread.ID, review.ID), domainerrors.ErrReviewNotFound)
}
