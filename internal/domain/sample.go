package domain

// SampleMenu returns the built-in demo dataset shown when the backend is
// unreachable in development mode. Callers receive fresh copies and may
// mutate them freely.
func SampleMenu() []MenuItem {
	return []MenuItem{
		{
			ID: "1",
			Name: LocalizedText{
				"en": "Tacos al Pastor",
				"es": "Tacos al Pastor",
			},
			Description: LocalizedText{
				"en": "Marinated pork tacos with pineapple, onion and cilantro on corn tortillas",
				"es": "Tacos de cerdo adobado con piña, cebolla y cilantro en tortillas de maíz",
			},
			Price:        "$12.99",
			Category:     "Tacos",
			IsPopular:    true,
			IsVegetarian: false,
			Ingredients:  []string{"pork", "pineapple", "onion", "cilantro", "corn tortilla"},
			Image:        "/images/menu/tacos-al-pastor.jpg",
		},
		{
			ID: "2",
			Name: LocalizedText{
				"en": "Traditional Guacamole",
				"es": "Guacamole Tradicional",
			},
			Description: LocalizedText{
				"en": "Hand-mashed avocado with lime, tomato and serrano chile, served with totopos",
				"es": "Aguacate machacado con limón, jitomate y chile serrano, servido con totopos",
			},
			Price:        "$8.99",
			Category:     "Appetizers",
			IsPopular:    false,
			IsVegetarian: true,
			Ingredients:  []string{"avocado", "lime", "tomato", "serrano chile", "totopos"},
			Image:        "/images/menu/guacamole.jpg",
		},
	}
}
