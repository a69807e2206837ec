package cart

import (
	"github.com/shopspring/decimal"

	cartstore "github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
)

type LineView struct {
	Key      string          `json:"key"`
	Product  catalog.Product `json:"producto"`
	Color    string          `json:"color"`
	Quantity int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items     []LineView      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"cantidadItems"`
}

func newCartView(c *cartstore.Store) CartView {
	lines := c.Lines()
	items := make([]LineView, 0, len(lines))
	for _, line := range lines {
		items = append(items, LineView{
			Key:      line.Key,
			Product:  line.Product,
			Color:    line.Variant.Label(),
			Quantity: line.Quantity,
			Subtotal: line.Subtotal(),
		})
	}
	return CartView{Items: items, Total: c.Total(), ItemCount: c.CountItems()}
}
