package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(orderrepo.AutoMigrate(db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_NewOrder_PersistsOrderAndItems() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewCustomerID())

	suite.Require().NoError(suite.repository.Save(ctx, o))

	suite.Equal(1, o.Version())
	suite.assertRowCount("orders", 1)
	suite.assertRowCount("order_items", 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByID_ExistingOrder_RestoresAggregate() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewCustomerID())
	suite.Require().NoError(suite.repository.Save(ctx, o))

	found, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(found.ID().IsEqual(o.ID()))
	suite.True(found.CustomerID().IsEqual(o.CustomerID()))
	suite.Equal(order.Pending, found.Status())
	suite.True(found.Total().IsEqual(o.Total()), "total %s != %s", found.Total(), o.Total())
	suite.Equal(o.Version(), found.Version())
	suite.True(found.CreatedAt().Equal(o.CreatedAt()))
	suite.Empty(found.Events())

	suite.Require().Len(found.Items(), 2)
	for i, item := range found.Items() {
		expected := o.Items()[i]
		suite.True(item.ID().IsEqual(expected.ID()))
		suite.True(item.ProductID().IsEqual(expected.ProductID()))
		suite.Equal(expected.ProductName(), item.ProductName())
		suite.Equal(expected.Quantity(), item.Quantity())
		suite.True(item.UnitPrice().IsEqual(expected.UnitPrice()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSaveAndFind_ExactAmountsAndLargeQuantity_RoundTrip() {
	ctx := context.Background()
	o, err := order.NewOrder(kernel.NewCustomerID(), []order.OrderItem{
		suite.item("Screw", order.MaxQuantity, "0.0001"),
		suite.item("Rail", 3, "123456789012345678.3333"),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, o))

	found, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(found.Total().IsEqual(o.Total()), "total %s != %s", found.Total(), o.Total())
	suite.Equal(uint(order.MaxQuantity), found.Items()[0].Quantity())
	suite.True(found.Items()[1].UnitPrice().IsEqual(o.Items()[1].UnitPrice()))

	var stored decimal.Decimal
	suite.Require().NoError(suite.db.Raw("SELECT total FROM orders WHERE id = ?", o.ID().String()).Scan(&stored).Error)
	suite.True(stored.Equal(o.Total().Amount()), "stored %s != %s", stored, o.Total().Amount())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByID_NonExistentOrder_ReturnsNotFound() {
	_, err := suite.repository.FindByID(context.Background(), kernel.NewOrderID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_ExistingOrder_UpdatesStatusAndItems() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewCustomerID())
	suite.Require().NoError(suite.repository.Save(ctx, o))

	loaded, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.RemoveItem(loaded.Items()[0].ID()))
	suite.Require().NoError(loaded.Confirm())
	suite.Require().NoError(suite.repository.Save(ctx, loaded))
	suite.Equal(2, loaded.Version())

	reloaded, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, reloaded.Status())
	suite.Len(reloaded.Items(), 1)
	suite.True(reloaded.Total().IsEqual(loaded.Total()))
	suite.Equal(2, reloaded.Version())
	suite.assertRowCount("order_items", 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_StaleVersion_ReturnsConcurrentModification() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewCustomerID())
	suite.Require().NoError(suite.repository.Save(ctx, o))

	first, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Confirm())
	suite.Require().NoError(suite.repository.Save(ctx, first))

	suite.Require().NoError(second.Cancel("customer changed their mind"))
	err = suite.repository.Save(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	suite.Equal(1, second.Version())

	stored, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_SameNewOrderTwice_ReturnsConcurrentModification() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewCustomerID())
	suite.Require().NoError(suite.repository.Save(ctx, o))

	restored, err := order.RestoreOrder(
		o.ID(), o.CustomerID(), o.Items(), o.Status(), o.CreatedAt(), o.UpdatedAt(), 0,
	)
	suite.Require().NoError(err)

	suite.ErrorIs(suite.repository.Save(ctx, restored), errs.ErrConcurrentModification)
	suite.assertRowCount("orders", 1)
	suite.assertRowCount("order_items", 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_ConcurrentWriters_OnlyOneWins() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewCustomerID())
	suite.Require().NoError(suite.repository.Save(ctx, o))

	const writers = 5
	copies := make([]*order.Order, writers)
	for i := range copies {
		loaded, err := suite.repository.FindByID(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(loaded.Confirm())
		copies[i] = loaded
	}

	var wg sync.WaitGroup
	results := make([]error, writers)
	for i := range copies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = suite.repository.Save(ctx, copies[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, errs.ErrConcurrentModification)
	}
	suite.Equal(1, succeeded)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByCustomer_ReturnsOnlyCustomerOrdersOldestFirst() {
	ctx := context.Background()
	customer := kernel.NewCustomerID()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	older := suite.newOrderAt(customer, base)
	newer := suite.newOrderAt(customer, base.Add(time.Hour))
	other := suite.newOrderAt(kernel.NewCustomerID(), base)

	for _, o := range []*order.Order{newer, other, older} {
		suite.Require().NoError(suite.repository.Save(ctx, o))
	}

	found, err := suite.repository.FindByCustomer(ctx, customer)
	suite.Require().NoError(err)

	suite.Require().Len(found, 2)
	suite.True(found[0].ID().IsEqual(older.ID()))
	suite.True(found[1].ID().IsEqual(newer.ID()))
	suite.Len(found[0].Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByCustomer_UnknownCustomer_ReturnsEmptySlice() {
	found, err := suite.repository.FindByCustomer(context.Background(), kernel.NewCustomerID())

	suite.Require().NoError(err)
	suite.NotNil(found)
	suite.Empty(found)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_ExistingOrder_RemovesOrderAndItems() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewCustomerID())
	suite.Require().NoError(suite.repository.Save(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))

	suite.assertRowCount("orders", 0)
	suite.assertRowCount("order_items", 0)
	_, err := suite.repository.FindByID(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_NonExistentOrder_ReturnsNotFound() {
	err := suite.repository.Delete(context.Background(), kernel.NewOrderID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestZeroIDs_AreRejectedBeforeQuerying() {
	ctx := context.Background()

	_, err := suite.repository.FindByID(ctx, kernel.OrderID{})
	suite.ErrorIs(err, errs.ErrValueIsRequired)

	_, err = suite.repository.FindByCustomer(ctx, kernel.CustomerID{})
	suite.ErrorIs(err, errs.ErrValueIsRequired)

	suite.ErrorIs(suite.repository.Delete(ctx, kernel.OrderID{}), errs.ErrValueIsRequired)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(customer kernel.CustomerID) *order.Order {
	return suite.newOrderAt(customer, time.Now().UTC().Truncate(time.Microsecond))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderAt(customer kernel.CustomerID, at time.Time) *order.Order {
	o, err := order.NewOrder(customer, []order.OrderItem{
		suite.item("Keyboard", 1, "49.90"),
		suite.item("Mouse pad", 2, "15.00"),
	}, order.WithClock(func() time.Time { return at }))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) item(name string, qty uint, price string) order.OrderItem {
	money, err := kernel.NewMoney(decimal.RequireFromString(price), kernel.EUR)
	suite.Require().NoError(err)
	item, err := order.NewOrderItem(kernel.NewProductID(), name, qty, money)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) assertRowCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
