package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDishType(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"Spaghetti Carbonara", "", DishTypePasta},
		{"Grilled Ribeye Steak", "12oz with herb butter", DishTypeMeat},
		{"Grilled Salmon", "with lemon butter", DishTypeSeafood},
		{"Tonkotsu Ramen", "", DishTypeSoup},
		{"Caesar Salad", "romaine, croutons", DishTypeSalad},
		{"Chocolate Lava Cake", "", DishTypeDessert},
		{"Garlic Bread", "", DishTypeBread},
		{"Chicken Wings", "buffalo sauce", DishTypeFried},
		{"Paella Valenciana", "", DishTypeRice},
		{"Tacos al Pastor", "", DishTypeTaco},
		{"Classic Cheeseburger", "", DishTypeBurger},
		{"Mango Smoothie", "", DishTypeBeverage},
		{"Chef's Special", "seasonal selection", DishTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDishType(tt.name, tt.description))
		})
	}
}

// A dish built around a structural form classifies as that form even when
// ingredient words are present.
func TestClassifyDishTypeStructuralBeatsIngredient(t *testing.T) {
	assert.Equal(t, DishTypeTaco, ClassifyDishType("Beef Tacos", ""))
	assert.Equal(t, DishTypeBurger, ClassifyDishType("Steak Burger", "with crispy onions"))
	assert.Equal(t, DishTypeSoup, ClassifyDishType("Shrimp Pho", ""))
	assert.Equal(t, DishTypeSalad, ClassifyDishType("Salmon Salad", ""))
	assert.Equal(t, DishTypePasta, ClassifyDishType("Lobster Ravioli", ""))
}

func TestClassifyDishTypeUsesDescription(t *testing.T) {
	assert.Equal(t, DishTypeSeafood, ClassifyDishType("Catch of the Day", "pan-seared salmon fillet"))
}

func TestClassifyDishTypeCaseInsensitive(t *testing.T) {
	assert.Equal(t, DishTypeTaco, ClassifyDishType("TACOS DE CARNITAS", ""))
}

// Same input always yields the same type.
func TestClassifyDishTypeDeterministic(t *testing.T) {
	first := ClassifyDishType("Crispy Fried Calamari", "with marinara")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ClassifyDishType("Crispy Fried Calamari", "with marinara"))
	}
	// Seafood wins over fried: ingredient pass checks seafood first.
	assert.Equal(t, DishTypeSeafood, first)
}
