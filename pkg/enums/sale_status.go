package enums

import "fmt"

// SaleStatus tracks whether a listing is currently offered for sale.
type SaleStatus string

const (
	SaleStatusOnSale  SaleStatus = "on_sale"
	SaleStatusOffSale SaleStatus = "off_sale"
	SaleStatusSold    SaleStatus = "sold"
)

var validSaleStatuses = []SaleStatus{
	SaleStatusOnSale,
	SaleStatusOffSale,
	SaleStatusSold,
}

// String implements fmt.Stringer.
func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SaleStatus.
func (s SaleStatus) IsValid() bool {
	for _, candidate := range validSaleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSaleStatus converts raw input into a SaleStatus.
func ParseSaleStatus(value string) (SaleStatus, error) {
	for _, candidate := range validSaleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale status %q", value)
}
