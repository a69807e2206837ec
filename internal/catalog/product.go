package catalog

import "github.com/shopspring/decimal"

// Product is one entry of the published catalog feed. Field names follow
// the feed's wire format. Products are immutable once loaded; cart lines
// hold the snapshot that was current when the line was added.
type Product struct {
	Code         string          `json:"codigo"`
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion,omitempty"`
	Category     string          `json:"categoria"`
	Price        decimal.Decimal `json:"precio"`
	Measurements string          `json:"medidas,omitempty"`
	Images       []string        `json:"imagenes"`
	Colors       []string        `json:"colores"`
	HasColors    bool            `json:"tieneColores"`
}
