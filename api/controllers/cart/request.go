package cart

// AddItemRequest adds quantity of a product variant to the cart.
// Cantidad defaults to 1 when omitted. Color products need either a
// color or surtido set; colorless products ignore both.
type AddItemRequest struct {
	Code     string `json:"codigo" validate:"required"`
	Color    string `json:"color"`
	Assorted bool   `json:"surtido"`
	Quantity *int   `json:"cantidad"`
}

// SetQuantityRequest carries the raw replacement quantity. The value is
// deliberately untyped: strings, numbers and garbage all go through the
// same coercion the original client applied to its input field.
type SetQuantityRequest struct {
	Quantity any `json:"cantidad"`
}

// AdjustQuantityRequest shifts a line's quantity by a signed delta.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CommentRequest sets a product note or the order note. Empty text is
// valid and stored as such.
type CommentRequest struct {
	Comment string `json:"comentario"`
}
