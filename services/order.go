package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"smartserve-api/models"
	"smartserve-api/statemachine"
)

// OrderService owns order placement, retrieval and the status lifecycle.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderLine is a single requested (food, quantity) pair.
type OrderLine struct {
	FoodID   string
	Quantity int
}

// Place validates every requested line against the catalogue, computes the
// authoritative total server-side, and persists the order with its line
// items in a single transaction. Validation is exhaustive: nothing is
// written unless every line resolves to an available food item.
func (s *OrderService) Place(userID string, lines []OrderLine) (*models.Order, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.FoodID] {
			seen[line.FoodID] = true
			ids = append(ids, line.FoodID)
		}
	}

	var foods []models.FoodItem
	if err := s.db.Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	foodsByID := make(map[string]models.FoodItem, len(foods))
	for _, f := range foods {
		foodsByID[f.ID] = f
	}

	for _, line := range lines {
		food, ok := foodsByID[line.FoodID]
		if !ok {
			return nil, &NotFoundError{Message: "Food item " + line.FoodID + " not found"}
		}
		if !food.IsAvailable {
			return nil, &UnavailableError{Name: food.Name}
		}
	}

	items := make([]models.OrderItem, 0, len(lines))
	var total float64
	for _, line := range lines {
		food := foodsByID[line.FoodID]
		linePrice := food.Price * float64(line.Quantity)
		total += linePrice
		items = append(items, models.OrderItem{
			FoodID:   food.ID,
			Quantity: line.Quantity,
			Price:    linePrice,
		})
	}

	order := models.Order{
		UserID:     userID,
		Status:     models.StatusPending,
		TotalPrice: roundCents(total),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	// Echo back the lines just computed rather than re-reading them.
	order.Items = items
	return &order, nil
}

// UserOrders returns the caller's orders with line items, newest first.
func (s *OrderService) UserOrders(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// AllOrders returns every order with line items and the owning user's
// contact details, optionally filtered to a single status, newest first.
func (s *OrderService) AllOrders(status string) ([]models.Order, error) {
	query := s.db.Preload("Items").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone")
		})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// UpdateStatus advances an order through the status state machine.
func (s *OrderService) UpdateStatus(orderID string, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Order not found"}
		}
		return nil, err
	}

	if err := statemachine.Validate(order.Status, next); err != nil {
		return nil, err
	}

	if err := s.db.Model(&order).Update("status", next).Error; err != nil {
		return nil, err
	}
	order.Status = next
	return &order, nil
}

// roundCents rounds half up to 2 decimal places, applied once at the total.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
