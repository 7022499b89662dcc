package enums

type PriceType string

const (
	PriceTypeFixed      PriceType = "fixed"
	PriceTypeNegotiable PriceType = "negotiable"
	PriceTypeFree       PriceType = "free"
)

func (p PriceType) Valid() bool {
	switch p {
	case PriceTypeFixed, PriceTypeNegotiable, PriceTypeFree:
		return true
	}
	return false
}
