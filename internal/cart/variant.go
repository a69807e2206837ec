package cart

// Reserved variant labels. They live in the same key-space as real color
// names for compatibility with the historical cart serialization, but
// callers construct variants through the typed constructors so the two
// meanings never mix in code.
const (
	LabelNoColor  = "ÚNICO"
	LabelAssorted = "SURTIDO"
)

type variantKind int

const (
	kindNamed variantKind = iota
	kindNoColor
	kindAssorted
)

// Variant is the color selection of a cart line: a concrete color, the
// no-color placeholder for single-variant products, or the assorted
// placeholder when the customer leaves the mix to the vendor.
type Variant struct {
	kind variantKind
	name string
}

// NamedColor selects a concrete color.
func NamedColor(name string) Variant {
	return Variant{kind: kindNamed, name: name}
}

// NoColor marks a product that has no color choices.
func NoColor() Variant {
	return Variant{kind: kindNoColor}
}

// Assorted asks the vendor to pick the color mix.
func Assorted() Variant {
	return Variant{kind: kindAssorted}
}

// ParseLabel maps a serialized variant label back to its variant. A real
// color literally named like a reserved label round-trips to the
// sentinel, matching how the original cart treated these strings.
func ParseLabel(label string) Variant {
	switch label {
	case LabelNoColor:
		return NoColor()
	case LabelAssorted:
		return Assorted()
	default:
		return NamedColor(label)
	}
}

// Label returns the wire representation used in keys and order messages.
func (v Variant) Label() string {
	switch v.kind {
	case kindNoColor:
		return LabelNoColor
	case kindAssorted:
		return LabelAssorted
	default:
		return v.name
	}
}

// IsNamed reports whether the variant is a concrete color.
func (v Variant) IsNamed() bool {
	return v.kind == kindNamed
}

// Key derives the composite cart line identity for a product code and
// variant. Lines with equal keys are the same line.
func Key(code string, v Variant) string {
	return code + "-" + v.Label()
}
