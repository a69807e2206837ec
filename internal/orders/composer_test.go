package orders

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
	"github.com/ferabensrl/mare-pedidos-backend/internal/comments"
)

var composeDate = time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)

func testLimits() Limits {
	return Limits{MaxChars: 1800, TruncateAt: 1600}
}

func collar() catalog.Product {
	return catalog.Product{
		Code:      "A1",
		Name:      "Collar Perla",
		Price:     decimal.NewFromInt(390),
		Colors:    []string{"Negro", "Rojo"},
		HasColors: true,
	}
}

func cinto() catalog.Product {
	return catalog.Product{
		Code:  "B2",
		Name:  "Cinto Trenzado",
		Price: decimal.NewFromInt(550),
	}
}

func TestComposeFullMessage(t *testing.T) {
	c := cart.NewStore()
	c.Add(collar(), cart.NamedColor("Negro"), 2)
	c.Add(collar(), cart.NamedColor("Rojo"), 1)
	c.Add(cinto(), cart.NoColor(), 3)

	notes := comments.NewStore()
	notes.SetProduct("A1", "sin cadena")
	notes.SetOrderNote("entregar el viernes")

	msg := NewComposer(testLimits()).Compose(c.Lines(), notes, composeDate)

	want := strings.Join([]string{
		"PEDIDO MARE",
		"",
		"Cliente: [Nombre del cliente]",
		"Fecha: 5/3/2026",
		"",
		"PRODUCTOS:",
		"- Collar Perla (A1)",
		"  Cantidades: 2 Negro, 1 Rojo",
		"  Precio unitario: $390",
		"  Subtotal: $1170",
		"  COMENTARIO: sin cadena",
		"",
		"- Cinto Trenzado (B2)",
		"  Cantidad: 3",
		"  Precio unitario: $550",
		"  Subtotal: $1650",
		"",
		"TOTAL PEDIDO: $2820",
		"",
		"COMENTARIOS ADICIONALES:",
		"entregar el viernes",
		"",
		"Pedido enviado desde Catalogo MARE",
		"By Feraben SRL",
	}, "\n")

	if diff := cmp.Diff(want, msg.Text); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "2820", msg.Total.String())
	assert.False(t, msg.Truncated)
}

func TestComposeWithoutNotes(t *testing.T) {
	c := cart.NewStore()
	c.Add(cinto(), cart.NoColor(), 1)

	msg := NewComposer(testLimits()).Compose(c.Lines(), comments.NewStore(), composeDate)

	assert.Contains(t, msg.Text, "TOTAL PEDIDO: $550\n\nPedido enviado desde Catalogo MARE")
	assert.NotContains(t, msg.Text, "COMENTARIOS ADICIONALES")
	assert.NotContains(t, msg.Text, "COMENTARIO:")
}

func TestWhitespaceOnlyNotesAreOmitted(t *testing.T) {
	c := cart.NewStore()
	c.Add(collar(), cart.NamedColor("Negro"), 1)

	notes := comments.NewStore()
	notes.SetProduct("A1", "   ")
	notes.SetOrderNote("\n\t")

	msg := NewComposer(testLimits()).Compose(c.Lines(), notes, composeDate)
	assert.NotContains(t, msg.Text, "COMENTARIO")
}

func TestAssortedVariantRendersLabel(t *testing.T) {
	c := cart.NewStore()
	c.Add(collar(), cart.Assorted(), 2)

	msg := NewComposer(testLimits()).Compose(c.Lines(), comments.NewStore(), composeDate)
	assert.Contains(t, msg.Text, "  Cantidades: 2 SURTIDO\n")
}

func TestGroupsKeepCartOrder(t *testing.T) {
	c := cart.NewStore()
	c.Add(cinto(), cart.NoColor(), 1)
	c.Add(collar(), cart.NamedColor("Rojo"), 1)
	c.Add(collar(), cart.NamedColor("Negro"), 1)

	msg := NewComposer(testLimits()).Compose(c.Lines(), comments.NewStore(), composeDate)

	first := strings.Index(msg.Text, "- Cinto Trenzado (B2)")
	second := strings.Index(msg.Text, "- Collar Perla (A1)")
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second)
	assert.Contains(t, msg.Text, "  Cantidades: 1 Rojo, 1 Negro\n")
}

func TestComposeTruncatesLongMessages(t *testing.T) {
	c := cart.NewStore()
	c.Add(collar(), cart.NamedColor("Negro"), 2)

	notes := comments.NewStore()
	notes.SetOrderNote(strings.Repeat("ñandú ", 400))

	composer := NewComposer(testLimits())
	msg := composer.Compose(c.Lines(), notes, composeDate)

	require.True(t, msg.Truncated)
	runes := []rune(msg.Text)
	head := string(runes[:1600])

	full := strings.Repeat("ñandú ", 400)
	notesFull := comments.NewStore()
	notesFull.SetOrderNote(full)
	untruncated := NewComposer(Limits{MaxChars: 1 << 20, TruncateAt: 1 << 19}).
		Compose(c.Lines(), notesFull, composeDate)

	assert.Equal(t, string([]rune(untruncated.Text)[:1600]), head)
	assert.True(t, strings.HasSuffix(msg.Text, "\n...(mensaje truncado)\n\nTotal: $780"))
	assert.Equal(t, "780", msg.Total.String())
}

func TestShortMessageIsNotTruncated(t *testing.T) {
	c := cart.NewStore()
	c.Add(cinto(), cart.NoColor(), 1)

	msg := NewComposer(testLimits()).Compose(c.Lines(), comments.NewStore(), composeDate)
	assert.False(t, msg.Truncated)
	assert.NotContains(t, msg.Text, "mensaje truncado")
}

func TestFormatDateHasNoZeroPadding(t *testing.T) {
	assert.Equal(t, "5/3/2026", formatDate(composeDate))
	assert.Equal(t, "21/11/2026", formatDate(time.Date(2026, time.November, 21, 0, 0, 0, 0, time.UTC)))
}
