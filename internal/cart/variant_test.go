package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantLabels(t *testing.T) {
	assert.Equal(t, "Negro", NamedColor("Negro").Label())
	assert.Equal(t, "ÚNICO", NoColor().Label())
	assert.Equal(t, "SURTIDO", Assorted().Label())

	assert.True(t, NamedColor("Rojo").IsNamed())
	assert.False(t, NoColor().IsNamed())
	assert.False(t, Assorted().IsNamed())
}

func TestParseLabelRoundTrip(t *testing.T) {
	for _, label := range []string{"Negro", "ÚNICO", "SURTIDO", "Azul Marino"} {
		assert.Equal(t, label, ParseLabel(label).Label())
	}
	assert.Equal(t, NoColor(), ParseLabel("ÚNICO"))
	assert.Equal(t, Assorted(), ParseLabel("SURTIDO"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "A1-Negro", Key("A1", NamedColor("Negro")))
	assert.Equal(t, "B2-ÚNICO", Key("B2", NoColor()))
	assert.Equal(t, "A1-SURTIDO", Key("A1", Assorted()))
}
