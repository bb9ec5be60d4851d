package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefixes and zero-padding widths for generated keys
const (
	PrefixDonation        = "DON"
	PrefixImpact          = "IMP"
	PrefixChain           = "CHA"
	PrefixDonationRequest = "REQ"
	PrefixDelivery        = "DLV"
	PrefixCommunity       = "COM"
	PrefixRestaurant      = "RES"

	ShortIDPadding = 3
	LongIDPadding  = 7
)

// NextPrefixedID returns prefix followed by the next sequence number, left padded
// with zeros to the given width. The sequence continues from the highest numeric
// suffix found among existing ids that start with the prefix; ids whose suffix is
// not all ASCII digits are ignored.
func NextPrefixedID(prefix string, padding int, existing []string) string {
	prefix = strings.ToUpper(prefix)
	maxNumber := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		suffix := id[len(prefix):]
		if !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > maxNumber {
			maxNumber = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, padding, maxNumber+1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
