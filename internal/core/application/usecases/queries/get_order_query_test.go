package queries_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		id := kernel.NewOrderID()

		query, err := queries.NewGetOrderQuery(id)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(id))
	})

	t.Run("zero id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.OrderID{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value query", func(t *testing.T) {
		var query queries.GetOrderQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the aggregate to a view", func(t *testing.T) {
		repo := new(MockOrderRepository)
		o := testOrder(t, kernel.NewCustomerID())
		repo.On("FindByID", ctx, o.ID()).Return(o, nil).Once()

		query, err := queries.NewGetOrderQuery(o.ID())
		require.NoError(t, err)

		view, err := queries.NewGetOrderQueryHandler(repo).Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, view.ID.IsEqual(o.ID()))
		assert.True(t, view.CustomerID.IsEqual(o.CustomerID()))
		assert.Equal(t, order.Pending, view.Status)
		assert.Equal(t, "59.97 GBP", view.Total.String())
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Lamp", view.Items[0].ProductName)
		assert.Equal(t, uint(3), view.Items[0].Quantity)
		assert.Equal(t, "59.97 GBP", view.Items[0].Subtotal.String())
		repo.AssertExpectations(t)
	})

	t.Run("view serializes ids and money as strings", func(t *testing.T) {
		repo := new(MockOrderRepository)
		o := testOrder(t, kernel.NewCustomerID())
		repo.On("FindByID", ctx, o.ID()).Return(o, nil).Once()

		query, err := queries.NewGetOrderQuery(o.ID())
		require.NoError(t, err)
		view, err := queries.NewGetOrderQueryHandler(repo).Handle(ctx, query)
		require.NoError(t, err)

		raw, err := json.Marshal(view)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, o.ID().String(), decoded["id"])
		assert.Equal(t, "PENDING", decoded["status"])
		assert.Equal(t, map[string]any{"amount": "59.97", "currency": "GBP"}, decoded["total"])
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockOrderRepository)
		id := kernel.NewOrderID()
		repo.On("FindByID", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		query, err := queries.NewGetOrderQuery(id)
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(repo).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejects an unconstructed query without touching storage", func(t *testing.T) {
		repo := new(MockOrderRepository)

		_, err := queries.NewGetOrderQueryHandler(repo).Handle(ctx, queries.GetOrderQuery{})

		assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestGetCustomerOrdersQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	customer := kernel.NewCustomerID()

	t.Run("returns one view per order in repository order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		first := testOrder(t, customer)
		second := testOrder(t, customer)
		repo.On("FindByCustomer", ctx, customer).Return([]*order.Order{first, second}, nil).Once()

		query, err := queries.NewGetCustomerOrdersQuery(customer)
		require.NoError(t, err)

		views, err := queries.NewGetCustomerOrdersQueryHandler(repo).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.True(t, views[0].ID.IsEqual(first.ID()))
		assert.True(t, views[1].ID.IsEqual(second.ID()))
	})

	t.Run("no orders yields an empty non-nil slice", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("FindByCustomer", ctx, customer).Return([]*order.Order{}, nil).Once()

		query, err := queries.NewGetCustomerOrdersQuery(customer)
		require.NoError(t, err)

		views, err := queries.NewGetCustomerOrdersQueryHandler(repo).Handle(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockOrderRepository)
		dbErr := errs.NewDatabaseError("find customer orders", errors.New("connection reset"))
		repo.On("FindByCustomer", ctx, customer).Return(nil, dbErr).Once()

		query, err := queries.NewGetCustomerOrdersQuery(customer)
		require.NoError(t, err)

		_, err = queries.NewGetCustomerOrdersQueryHandler(repo).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrDatabase)
	})

	t.Run("zero customer id", func(t *testing.T) {
		_, err := queries.NewGetCustomerOrdersQuery(kernel.CustomerID{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
