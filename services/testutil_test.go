package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartserve-api/models"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache URI
// keeps every pooled connection pointed at the same schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{
		Name:  "Test User",
		Email: email,
		Phone: "9876543210",
		Role:  role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedFood(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.FoodItem {
	t.Helper()
	food := models.FoodItem{
		Name:        name,
		Price:       price,
		Category:    "meals",
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&food).Error)
	return food
}
