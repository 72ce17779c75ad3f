package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedTextIn(t *testing.T) {
	text := LocalizedText{"en": "Tacos", "es": "Tacos al Pastor"}

	assert.Equal(t, "Tacos al Pastor", text.In("es"))
	assert.Equal(t, "Tacos", text.In("en"))
	assert.Equal(t, "Tacos", text.In("fr"), "unknown locale falls back to English")
	assert.Equal(t, "", LocalizedText(nil).In("en"))
}

func TestMenuItemPatchApply(t *testing.T) {
	item := SampleMenu()[0]

	price := "$16.99"
	popular := false
	patch := MenuItemPatch{Price: &price, IsPopular: &popular}
	patch.Apply(&item)

	assert.Equal(t, "$16.99", item.Price)
	assert.False(t, item.IsPopular)
	assert.Equal(t, "Tacos", item.Category, "unset fields untouched")
	assert.Equal(t, "Tacos al Pastor", item.Name["en"])
}

func TestMenuItemPatchIsZero(t *testing.T) {
	assert.True(t, MenuItemPatch{}.IsZero())

	price := "$1.00"
	assert.False(t, MenuItemPatch{Price: &price}.IsZero())
	assert.False(t, MenuItemPatch{Ingredients: []string{}}.IsZero())
}

func TestSampleMenuIsCopied(t *testing.T) {
	first := SampleMenu()
	first[0].Price = "$0.00"
	first[0].Ingredients[0] = "mutated"

	second := SampleMenu()
	assert.Equal(t, "$12.99", second[0].Price)
	assert.Equal(t, "pork", second[0].Ingredients[0])
}
