// Package orders turns a session's cart and notes into the plain-text
// order message the buyer sends over WhatsApp, and handles the dispatch
// that clears the session afterwards.
package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/internal/comments"
)

const (
	messageHeader     = "PEDIDO MARE\n\n"
	clientPlaceholder = "Cliente: [Nombre del cliente]\n"
	truncationNotice  = "\n...(mensaje truncado)\n\nTotal: $"
	messageFooter     = "Pedido enviado desde Catalogo MARE\nBy Feraben SRL"
)

// Limits bounds the composed message. Messages longer than MaxChars are
// cut down to their first TruncateAt characters plus a notice carrying
// the order total, so the vendor never loses the amount.
type Limits struct {
	MaxChars   int
	TruncateAt int
}

// Message is a composed order ready to hand to the dispatch channel.
type Message struct {
	Text      string
	Total     decimal.Decimal
	Truncated bool
}

type Composer struct {
	limits Limits
}

func NewComposer(limits Limits) *Composer {
	return &Composer{limits: limits}
}

// Compose renders the order message for the given cart lines and notes.
// Lines sharing a product code collapse into one block, blocks and the
// variants inside them keeping the cart's insertion order.
func (c *Composer) Compose(lines []cart.Line, notes *comments.Store, now time.Time) Message {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	var b strings.Builder
	b.WriteString(messageHeader)
	b.WriteString(clientPlaceholder)
	b.WriteString("Fecha: " + formatDate(now) + "\n\n")
	b.WriteString("PRODUCTOS:\n")

	for _, g := range groupByProduct(lines) {
		product := g.lines[0].Product
		fmt.Fprintf(&b, "- %s (%s)\n", product.Name, product.Code)

		if len(product.Colors) > 0 {
			parts := make([]string, 0, len(g.lines))
			for _, line := range g.lines {
				parts = append(parts, fmt.Sprintf("%d %s", line.Quantity, line.Variant.Label()))
			}
			b.WriteString("  Cantidades: " + strings.Join(parts, ", ") + "\n")
		} else {
			count := 0
			for _, line := range g.lines {
				count += line.Quantity
			}
			fmt.Fprintf(&b, "  Cantidad: %d\n", count)
		}

		b.WriteString("  Precio unitario: $" + product.Price.String() + "\n")
		b.WriteString("  Subtotal: $" + g.subtotal.String() + "\n")

		if note, ok := notes.Product(product.Code); ok && strings.TrimSpace(note) != "" {
			b.WriteString("  COMENTARIO: " + note + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("TOTAL PEDIDO: $" + total.String() + "\n\n")

	if note := notes.OrderNote(); strings.TrimSpace(note) != "" {
		b.WriteString("COMENTARIOS ADICIONALES:\n" + note + "\n\n")
	}
	b.WriteString(messageFooter)

	text := b.String()
	truncated := false
	if runes := []rune(text); len(runes) > c.limits.MaxChars {
		text = string(runes[:c.limits.TruncateAt]) + truncationNotice + total.String()
		truncated = true
	}
	return Message{Text: text, Total: total, Truncated: truncated}
}

type productGroup struct {
	lines    []cart.Line
	subtotal decimal.Decimal
}

func groupByProduct(lines []cart.Line) []productGroup {
	index := make(map[string]int)
	groups := make([]productGroup, 0)
	for _, line := range lines {
		i, ok := index[line.Product.Code]
		if !ok {
			i = len(groups)
			index[line.Product.Code] = i
			groups = append(groups, productGroup{subtotal: decimal.Zero})
		}
		groups[i].lines = append(groups[i].lines, line)
		groups[i].subtotal = groups[i].subtotal.Add(line.Subtotal())
	}
	return groups
}

// formatDate renders d/m/yyyy without zero padding, the short date form
// used in Uruguay.
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
