package importer

import (
	"reflect"
	"testing"

	"vitalog/domain"
)

func TestMapCategory(t *testing.T) {
	tests := []struct {
		name     string
		external string
		want     string
	}{
		{name: "breakfast", external: "Breakfast", want: domain.CategoryBreakfast},
		{name: "lunch", external: "Lunch", want: domain.CategoryLunch},
		{name: "seafood maps to dinner", external: "Seafood", want: domain.CategoryDinner},
		{name: "beef maps to dinner", external: "Beef", want: domain.CategoryDinner},
		{name: "vegetarian maps to dinner", external: "Vegetarian", want: domain.CategoryDinner},
		{name: "pasta maps to dinner", external: "Pasta", want: domain.CategoryDinner},
		{name: "side maps to dinner", external: "Side", want: domain.CategoryDinner},
		{name: "dessert maps to other", external: "Dessert", want: domain.CategoryOther},
		{name: "unknown label maps to other", external: "Unknown Label", want: domain.CategoryOther},
		{name: "empty maps to other", external: "", want: domain.CategoryOther},
		{name: "whitespace is trimmed", external: "  Chicken  ", want: domain.CategoryDinner},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := MapCategory(test.external); got != test.want {
				t.Errorf("MapCategory(%q) = %q, want %q", test.external, got, test.want)
			}
		})
	}
}

func TestSplitInstructions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "newline separated",
			text: "Chop the onions.\nFry until golden.\nServe.",
			want: []string{"Chop the onions.", "Fry until golden.", "Serve."},
		},
		{
			name: "blank lines dropped",
			text: "Step one.\r\n\r\nStep two.\n\n\nStep three.",
			want: []string{"Step one.", "Step two.", "Step three."},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "  Mix well.  \n\t Bake for an hour. ",
			want: []string{"Mix well.", "Bake for an hour."},
		},
		{name: "empty text", text: "", want: []string{}},
		{name: "only whitespace", text: " \n \r\n ", want: []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := SplitInstructions(test.text); !reflect.DeepEqual(got, test.want) {
				t.Errorf("SplitInstructions(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}
}

func TestExtractMealID(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{name: "i query param", rawURL: "https://www.themealdb.com/api/json/v1/1/lookup.php?i=52772", want: "52772"},
		{name: "mealId query param", rawURL: "https://example.com/recipe?mealId=12345", want: "12345"},
		{name: "i wins over path", rawURL: "https://example.com/meal/999?i=111", want: "111"},
		{name: "last path segment", rawURL: "https://www.themealdb.com/meal/52959", want: "52959"},
		{name: "trailing slash", rawURL: "https://example.com/meal/52959/", want: "52959"},
		{name: "empty url", rawURL: "", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExtractMealID(test.rawURL); got != test.want {
				t.Errorf("ExtractMealID(%q) = %q, want %q", test.rawURL, got, test.want)
			}
		})
	}
}
