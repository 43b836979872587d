package services

import "strings"

// structuralDishTypes are checked first, in this order. A dish literally built
// around one of these forms classifies that way even when ingredient words are
// also present ("Beef Tacos" is a taco, not meat).
var structuralDishTypes = []string{
	DishTypeTaco,
	DishTypeBurger,
	DishTypePasta,
	DishTypeSoup,
	DishTypeSalad,
	DishTypeRice,
	DishTypeBread,
}

// ingredientDishTypes are checked second. The order mirrors the keyword table
// declaration order so classification stays deterministic.
var ingredientDishTypes = []string{
	DishTypeMeat,
	DishTypeSeafood,
	DishTypeDessert,
	DishTypeFried,
	DishTypeBeverage,
}

// ClassifyDishType maps a dish name and description to a dish type via
// two-pass keyword matching: structural forms first, ingredients second.
func ClassifyDishType(name, description string) string {
	searchText := strings.ToLower(name + " " + description)

	for _, dishType := range structuralDishTypes {
		for _, kw := range dishTypeKeywords[dishType] {
			if strings.Contains(searchText, kw) {
				return dishType
			}
		}
	}

	for _, dishType := range ingredientDishTypes {
		for _, kw := range dishTypeKeywords[dishType] {
			if strings.Contains(searchText, kw) {
				return dishType
			}
		}
	}

	return DishTypeOther
}
