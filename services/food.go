package services

import (
	"errors"

	"gorm.io/gorm"

	"smartserve-api/models"
)

// FoodService is plain CRUD over the food catalogue.
type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// List returns food items ordered by name, optionally restricted to a
// category and/or to items currently available.
func (s *FoodService) List(category string, availableOnly bool) ([]models.FoodItem, error) {
	query := s.db.Model(&models.FoodItem{})
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var foods []models.FoodItem
	err := query.Order("name asc").Find(&foods).Error
	return foods, err
}

// Create inserts a new food item.
func (s *FoodService) Create(food *models.FoodItem) error {
	return s.db.Create(food).Error
}

// Update applies a partial field update, failing if the item does not exist.
func (s *FoodService) Update(id string, fields map[string]interface{}) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Food item not found"}
		}
		return nil, err
	}

	if err := s.db.Model(&food).Updates(fields).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&food, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// Delete removes a food item, failing if it does not exist.
func (s *FoodService) Delete(id string) error {
	var food models.FoodItem
	if err := s.db.First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Message: "Food item not found"}
		}
		return err
	}
	return s.db.Delete(&food).Error
}
