package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
)

type cartRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.CartRepository
	catalog   port.CatalogRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	// Verifies no leaks after all tests in the suite run.
	defer goleak.VerifyNone(t)

	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCart(suite.pool)
	suite.catalog = repository.NewCatalog(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *cartRepositorySuite) TearDownTest() {
	suite.NoError(truncateAll(suite.T().Context(), suite.pool))
}

// fakeCartItem stores a product so the cart line passes its foreign keys.
func (suite *cartRepositorySuite) fakeCartItem() domain.CartItem {
	t := suite.T()

	product, err := suite.catalog.CreateProduct(t.Context(), fakeProduct(100))
	require.NoError(t, err)

	return domain.CartItem{
		ProductID: product.ID,
		VariantID: product.Variants[0].ID,
		Quantity:  gofakeit.Number(1, 5),
	}
}

func (suite *cartRepositorySuite) TestAddItem() {
	item1 := suite.fakeCartItem()
	item2 := suite.fakeCartItem()

	tests := []struct {
		name      string
		userID    string
		item      domain.CartItem
		wantError error
	}{
		{
			name:   "add single item: ok",
			userID: gofakeit.UUID(),
			item:   item1,
		},
		{
			name:   "add another item: ok",
			userID: gofakeit.UUID(),
			item:   item2,
		},
		{
			name:   "zero quantity: invalid",
			userID: gofakeit.UUID(),
			item: func() domain.CartItem {
				item := item1
				item.Quantity = 0
				return item
			}(),
			wantError: domain.ErrInvalidInput,
		},
		{
			name:      "no user: invalid",
			item:      item1,
			wantError: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			itemID, err := suite.repo.AddItem(ctx, tt.userID, tt.item)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actualCart, err := suite.repo.GetCart(ctx, tt.userID)
			require.NoError(t, err)

			expected := tt.item
			expected.ID = itemID

			assertCart(t, domain.Cart{UserID: tt.userID, Items: []domain.CartItem{expected}}, actualCart)
		})
	}
}

func (suite *cartRepositorySuite) TestAddItem_SameSpecIncrementsQuantity() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()
	item := suite.fakeCartItem()
	item.Quantity = 2

	firstID, err := suite.repo.AddItem(ctx, userID, item)
	require.NoError(t, err)

	item.Quantity = 3
	secondID, err := suite.repo.AddItem(ctx, userID, item)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	cart, err := suite.repo.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func (suite *cartRepositorySuite) TestUpdateQuantity() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()

	itemID, err := suite.repo.AddItem(ctx, userID, suite.fakeCartItem())
	require.NoError(t, err)

	tests := []struct {
		name      string
		userID    string
		itemID    uuid.UUID
		quantity  int
		wantError error
	}{
		{
			name:     "owner updates: ok",
			userID:   userID,
			itemID:   itemID,
			quantity: 9,
		},
		{
			name:      "other user: not found",
			userID:    gofakeit.UUID(),
			itemID:    itemID,
			quantity:  1,
			wantError: domain.ErrCartItemNotFound,
		},
		{
			name:      "unknown item: not found",
			userID:    userID,
			itemID:    uuid.New(),
			quantity:  1,
			wantError: domain.ErrCartItemNotFound,
		},
		{
			name:      "zero quantity: invalid",
			userID:    userID,
			itemID:    itemID,
			wantError: domain.ErrInvalidInput,
		},
		{
			name:      "quantity above line limit: invalid",
			userID:    userID,
			itemID:    itemID,
			quantity:  4294967297,
			wantError: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.repo.UpdateQuantity(ctx, tt.userID, tt.itemID, tt.quantity)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			cart, err := suite.repo.GetCart(ctx, tt.userID)
			require.NoError(t, err)
			require.Len(t, cart.Items, 1)
			assert.Equal(t, tt.quantity, cart.Items[0].Quantity)
		})
	}
}

func (suite *cartRepositorySuite) TestDeleteItems() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()

	keepID, err := suite.repo.AddItem(ctx, userID, suite.fakeCartItem())
	require.NoError(t, err)
	dropID, err := suite.repo.AddItem(ctx, userID, suite.fakeCartItem())
	require.NoError(t, err)

	deleted, err := suite.repo.DeleteItems(ctx, gofakeit.UUID(), []uuid.UUID{dropID})
	require.NoError(t, err)
	assert.Zero(t, deleted, "other users cannot delete the line")

	deleted, err = suite.repo.DeleteItems(ctx, userID, []uuid.UUID{dropID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	cart, err := suite.repo.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, keepID, cart.Items[0].ID)

	deleted, err = suite.repo.DeleteItems(ctx, userID, nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func (suite *cartRepositorySuite) TestClear() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()
	otherID := gofakeit.UUID()

	for range 3 {
		_, err := suite.repo.AddItem(ctx, userID, suite.fakeCartItem())
		require.NoError(t, err)
	}
	_, err := suite.repo.AddItem(ctx, otherID, suite.fakeCartItem())
	require.NoError(t, err)

	cleared, err := suite.repo.Clear(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cleared)

	cart, err := suite.repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	other, err := suite.repo.GetCart(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, other.Items, 1)
}

func assertCart(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartItem{}, "CreatedAt"),
		cmpopts.EquateEmpty(),
	}

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("cart mismatch (-expected +actual):\n%s", diff)
	}
}
