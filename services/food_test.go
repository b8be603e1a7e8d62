package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartserve-api/services"
)

func TestListOrdersByNameAndFilters(t *testing.T) {
	db := newTestDB(t)
	seedFood(t, db, "Samosa", 12.00, true)
	seedFood(t, db, "Biryani", 90.00, true)
	seedFood(t, db, "Lassi", 25.00, false)

	svc := services.NewFoodService(db)

	available, err := svc.List("", true)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, "Biryani", available[0].Name)
	assert.Equal(t, "Samosa", available[1].Name)

	all, err := svc.List("", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	meals, err := svc.List("meals", false)
	require.NoError(t, err)
	assert.Len(t, meals, 3)

	drinks, err := svc.List("drinks", false)
	require.NoError(t, err)
	assert.Empty(t, drinks)
}

func TestUpdatePartialFields(t *testing.T) {
	db := newTestDB(t)
	food := seedFood(t, db, "Samosa", 12.00, true)

	svc := services.NewFoodService(db)
	updated, err := svc.Update(food.ID, map[string]interface{}{
		"price":        15.00,
		"is_available": false,
	})
	require.NoError(t, err)

	assert.Equal(t, 15.00, updated.Price)
	assert.False(t, updated.IsAvailable)
	// Untouched fields survive.
	assert.Equal(t, "Samosa", updated.Name)
	assert.Equal(t, "meals", updated.Category)
}

func TestUpdateUnknownFood(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewFoodService(db)

	_, err := svc.Update(uuid.NewString(), map[string]interface{}{"price": 10.00})
	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteFood(t *testing.T) {
	db := newTestDB(t)
	food := seedFood(t, db, "Samosa", 12.00, true)

	svc := services.NewFoodService(db)
	require.NoError(t, svc.Delete(food.ID))

	remaining, err := svc.List("", false)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	var notFound *services.NotFoundError
	require.ErrorAs(t, svc.Delete(food.ID), &notFound)
}
