package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Feed is the normalized view of the published catalog document.
type Feed struct {
	Products   []Product
	Categories []string
}

// feedProduct tolerates the two historical code fields; older feeds used
// "id", the sheet converter emits "codigo".
type feedProduct struct {
	Code         string          `json:"codigo"`
	ID           string          `json:"id"`
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion"`
	Category     string          `json:"categoria"`
	Price        decimal.Decimal `json:"precio"`
	Measurements string          `json:"medidas"`
	Images       []string        `json:"imagenes"`
	Colors       []string        `json:"colores"`
}

type feedEnvelope struct {
	Products   []feedProduct `json:"productos"`
	Categories []string      `json:"categorias"`
}

// DecodeFeed parses a catalog document in either historical shape: a bare
// product array, or the envelope with productos/categorias/metadatos.
// Products without a usable code or with a negative price are dropped;
// tieneColores is always recomputed from colores so the two can never
// disagree.
func DecodeFeed(data []byte) (*Feed, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}

	var (
		raw        []feedProduct
		categories []string
	)
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decoding catalog array: %w", err)
		}
	} else {
		var env feedEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decoding catalog envelope: %w", err)
		}
		raw = env.Products
		categories = env.Categories
	}

	feed := &Feed{Products: make([]Product, 0, len(raw))}
	for _, fp := range raw {
		p, ok := normalizeProduct(fp)
		if !ok {
			continue
		}
		feed.Products = append(feed.Products, p)
	}

	if len(categories) > 0 {
		feed.Categories = categories
	} else {
		feed.Categories = deriveCategories(feed.Products)
	}

	return feed, nil
}

func normalizeProduct(fp feedProduct) (Product, bool) {
	code := fp.Code
	if code == "" {
		code = fp.ID
	}
	if code == "" || fp.Price.IsNegative() {
		return Product{}, false
	}

	return Product{
		Code:         code,
		Name:         fp.Name,
		Description:  fp.Description,
		Category:     fp.Category,
		Price:        fp.Price,
		Measurements: fp.Measurements,
		Images:       fp.Images,
		Colors:       fp.Colors,
		HasColors:    len(fp.Colors) > 0,
	}, true
}

func deriveCategories(products []Product) []string {
	seen := map[string]struct{}{}
	var categories []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
