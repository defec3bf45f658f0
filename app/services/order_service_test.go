package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/app/services"
)

func newOrderService(t *testing.T) (*services.OrderService, *testDeps) {
	db := setupDB(t)
	svc := services.NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewProductRepository(db),
	)
	return svc, &testDeps{db: db}
}

func TestOrderService_PlaceComputesTotalAndDecrementsStock(t *testing.T) {
	svc, deps := newOrderService(t)
	product := seedProduct(t, deps.db, 10)

	order, err := svc.Place(1, services.PlaceOrderInput{
		Items:           []services.OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		ShippingAddress: "7 Mall Road, Lahore",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 3*850.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 850.0, order.Items[0].UnitPrice)

	var stored models.Product
	require.NoError(t, deps.db.First(&stored, product.ID).Error)
	assert.Equal(t, 7, stored.Stock)
}

func TestOrderService_PlaceInsufficientStockAbortsWholeOrder(t *testing.T) {
	svc, deps := newOrderService(t)
	plenty := seedProduct(t, deps.db, 10)

	scarce := models.Product{Name: "Glass Tumbler Set", SKU: "GT-004", Type: "homeware", Price: 1600, Stock: 1}
	require.NoError(t, deps.db.Create(&scarce).Error)

	_, err := svc.Place(1, services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{ProductID: plenty.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 5},
		},
		ShippingAddress: "7 Mall Road, Lahore",
	})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	// The first line's decrement must have been rolled back.
	var stored models.Product
	require.NoError(t, deps.db.First(&stored, plenty.ID).Error)
	assert.Equal(t, 10, stored.Stock)

	var count int64
	require.NoError(t, deps.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderService_PlaceUnknownProduct(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.Place(1, services.PlaceOrderInput{
		Items:           []services.OrderItemInput{{ProductID: 9999, Quantity: 1}},
		ShippingAddress: "7 Mall Road, Lahore",
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_UnitPriceSurvivesCatalogueEdits(t *testing.T) {
	svc, deps := newOrderService(t)
	product := seedProduct(t, deps.db, 10)

	order, err := svc.Place(1, services.PlaceOrderInput{
		Items:           []services.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "7 Mall Road, Lahore",
	})
	require.NoError(t, err)

	require.NoError(t, deps.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", 999.0).Error)

	got, err := svc.Get(order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 850.0, got.Items[0].UnitPrice)
	assert.Equal(t, 850.0, got.Total)
}

func TestOrderService_StatusMovesStrictlyForward(t *testing.T) {
	svc, deps := newOrderService(t)
	product := seedProduct(t, deps.db, 10)

	order, err := svc.Place(1, services.PlaceOrderInput{
		Items:           []services.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "7 Mall Road, Lahore",
	})
	require.NoError(t, err)

	// Skipping Shipped is rejected.
	_, err = svc.UpdateStatus(order.ID, models.OrderDelivered)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	shipped, err := svc.UpdateStatus(order.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, shipped.Status)

	// Backward moves are rejected.
	_, err = svc.UpdateStatus(order.ID, models.OrderPending)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	delivered, err := svc.UpdateStatus(order.ID, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, delivered.Status)

	// Delivered is terminal.
	_, err = svc.UpdateStatus(order.ID, models.OrderShipped)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}
