package enums

import "fmt"

// ListingType is the external channel's listing format.
type ListingType string

const (
	ListingTypeAuction    ListingType = "Auction"
	ListingTypeFixedPrice ListingType = "FixedPrice"
)

var validListingTypes = []ListingType{
	ListingTypeAuction,
	ListingTypeFixedPrice,
}

// String implements fmt.Stringer.
func (l ListingType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known ListingType.
func (l ListingType) IsValid() bool {
	for _, candidate := range validListingTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseListingType converts raw input into a ListingType.
func ParseListingType(value string) (ListingType, error) {
	for _, candidate := range validListingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing type %q", value)
}
