package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPrinterMatching(t *testing.T) {
	assert.Equal(t, "en", NewPrinter("en").Locale())
	assert.Equal(t, "es", NewPrinter("es").Locale())
	assert.Equal(t, "es", NewPrinter("es-MX").Locale())
	assert.Equal(t, "en", NewPrinter("de").Locale())
	assert.Equal(t, "en", NewPrinter("").Locale())
}

func TestMsg(t *testing.T) {
	en := NewPrinter("en")
	es := NewPrinter("es")

	assert.Equal(t, "Session closed", en.Msg("signout.done"))
	assert.Equal(t, "Sesión cerrada", es.Msg("signout.done"))
}

func TestMsgUnknownKey(t *testing.T) {
	p := NewPrinter("es")
	assert.Equal(t, "no.such.key", p.Msg("no.such.key"))
}
