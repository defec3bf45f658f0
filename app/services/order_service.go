package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/pkg/collection"
	"github.com/ecotrackhq/ecotrack/pkg/event"
	"github.com/ecotrackhq/ecotrack/pkg/metrics"
)

// OrderService implements checkout and order fulfilment.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewOrderService(orders *repositories.OrderRepository, products *repositories.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// OrderItemInput is one cart line at checkout.
type OrderItemInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// PlaceOrderInput is the checkout payload.
type PlaceOrderInput struct {
	Items           []OrderItemInput `json:"items" validate:"required"`
	ShippingAddress string           `json:"shippingAddress" validate:"required,min=5,max=512"`
}

// UpdateOrderStatusInput moves an order along the fulfilment pipeline.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,in=Pending,Shipped,Delivered"`
}

// Place creates an order from the cart in one transaction: stock is
// decremented per line and the total computed from current prices. Any
// unavailable line aborts the whole order.
func (s *OrderService) Place(userID uint, in PlaceOrderInput) (models.Order, error) {
	var order models.Order

	err := s.orders.DB().Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID: userID,
			Status: models.OrderPending,

			ShippingAddress: in.ShippingAddress,
		}

		for _, line := range in.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			if err := s.products.DecrementStock(tx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInsufficientStock
				}
				return err
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		order.Total = collection.Sum(order.Items, func(item models.OrderItem) float64 {
			return item.UnitPrice * float64(item.Quantity)
		})

		return tx.Create(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	event.FireAsync(event.OrderPlaced, order)
	return order, nil
}

// List returns orders for the dashboard, optionally filtered by status.
func (s *OrderService) List(status string) ([]models.Order, error) {
	return s.orders.All(status)
}

// ForUser returns a customer's own orders.
func (s *OrderService) ForUser(userID uint) ([]models.Order, error) {
	return s.orders.ForUser(userID)
}

func (s *OrderService) Get(id uint) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

// UpdateStatus advances an order one step along Pending → Shipped →
// Delivered. Backward and skipping moves are rejected.
func (s *OrderService) UpdateStatus(id uint, to string) (models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return models.Order{}, err
	}

	if !models.CanTransitionOrder(order.Status, to) {
		return models.Order{}, ErrInvalidTransition
	}

	order.Status = to
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, err
	}

	event.FireAsync(event.OrderUpdated, order)
	return order, nil
}
