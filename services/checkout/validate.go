package checkout

import (
	"fmt"
	"regexp"

	"dairyfront/models"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// ValidateAddress checks the delivery address before submission: street,
// city, state and pincode are required, and the pincode must be exactly 6
// digits. The first missing or invalid field is reported.
func ValidateAddress(addr models.Address) error {
	required := []struct {
		label, value string
	}{
		{"Street", addr.Street},
		{"City", addr.City},
		{"State", addr.State},
		{"Pincode", addr.Pincode},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.label)
		}
	}
	if !pincodePattern.MatchString(addr.Pincode) {
		return fmt.Errorf("Pincode must be a 6-digit number")
	}
	return nil
}
