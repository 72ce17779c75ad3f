// Package i18n localizes the user-facing notification messages shown by the
// admin page. The page serves English and Spanish; unknown locales match to
// the closest supported tag.
package i18n

import "golang.org/x/text/language"

var supported = []language.Tag{
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"signin.required": "Please sign in to manage the menu",
		"load.failed":      "Could not load menu items: %s",
		"load.demo":        "Backend unreachable, showing demo data",
		"update.success":   "Menu item updated",
		"update.failed":    "Could not update menu item: %s",
		"delete.success":   "Menu item deleted",
		"delete.failed":    "Could not delete menu item: %s",
		"signout.done":     "Session closed",
		"additem.pending": "Adding items is coming soon",
	},
	language.Spanish: {
		"signin.required": "Inicia sesión para administrar el menú",
		"load.failed":      "No se pudieron cargar los platillos: %s",
		"load.demo":        "Backend no disponible, mostrando datos de demostración",
		"update.success":   "Platillo actualizado",
		"update.failed":    "No se pudo actualizar el platillo: %s",
		"delete.success":   "Platillo eliminado",
		"delete.failed":    "No se pudo eliminar el platillo: %s",
		"signout.done":     "Sesión cerrada",
		"additem.pending": "Agregar platillos estará disponible pronto",
	},
}

// Printer resolves message keys for one locale.
type Printer struct {
	tag language.Tag
}

// NewPrinter matches locale (a BCP 47 string such as "es" or "es-MX")
// against the supported languages.
func NewPrinter(locale string) *Printer {
	tag, _ := language.MatchStrings(matcher, locale)
	// The matcher may return an extended tag (e.g. es-u-rg-mxzzzz); collapse
	// back to the supported base.
	base, _, _ := tag.Raw()
	for _, s := range supported {
		if sb, _, _ := s.Raw(); sb == base {
			return &Printer{tag: s}
		}
	}
	return &Printer{tag: language.English}
}

// Msg returns the localized message for key, or the key itself when no
// translation exists.
func (p *Printer) Msg(key string) string {
	if m, ok := messages[p.tag]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[language.English][key]; ok {
		return s
	}
	return key
}

// Locale returns the matched locale code ("en" or "es").
func (p *Printer) Locale() string {
	return p.tag.String()
}
