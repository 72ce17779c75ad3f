package domain

// LocalizedText maps a locale code ("en", "es") to display text.
type LocalizedText map[string]string

// In returns the text for the given locale, falling back to English and then
// to any value present.
func (t LocalizedText) In(locale string) string {
	if s, ok := t[locale]; ok {
		return s
	}
	if s, ok := t["en"]; ok {
		return s
	}
	for _, s := range t {
		return s
	}
	return ""
}

// MenuItem is one dish offered by the restaurant. Records are created and
// persisted by the backend; the admin page only reads, patches, or removes
// them.
type MenuItem struct {
	ID           string        `json:"id"`
	Name         LocalizedText `json:"name"`
	Description  LocalizedText `json:"description"`
	Price        string        `json:"price"`
	Category     string        `json:"category"`
	IsPopular    bool          `json:"is_popular"`
	IsVegetarian bool          `json:"is_vegetarian"`
	Ingredients  []string      `json:"ingredients"`
	Image        string        `json:"image"`
}

// MenuItemPatch is a partial update. Nil fields are left untouched.
type MenuItemPatch struct {
	Name         LocalizedText `json:"name,omitempty"`
	Description  LocalizedText `json:"description,omitempty"`
	Price        *string       `json:"price,omitempty"`
	Category     *string       `json:"category,omitempty"`
	IsPopular    *bool         `json:"is_popular,omitempty"`
	IsVegetarian *bool         `json:"is_vegetarian,omitempty"`
	Ingredients  []string      `json:"ingredients,omitempty"`
	Image        *string       `json:"image,omitempty"`
}

// Apply copies the patch's set fields onto item.
func (p MenuItemPatch) Apply(item *MenuItem) {
	if p.Name != nil {
		item.Name = p.Name
	}
	if p.Description != nil {
		item.Description = p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.IsPopular != nil {
		item.IsPopular = *p.IsPopular
	}
	if p.IsVegetarian != nil {
		item.IsVegetarian = *p.IsVegetarian
	}
	if p.Ingredients != nil {
		item.Ingredients = p.Ingredients
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
}

// IsZero reports whether the patch would change nothing.
func (p MenuItemPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.IsPopular == nil && p.IsVegetarian == nil &&
		p.Ingredients == nil && p.Image == nil
}
