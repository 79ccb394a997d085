package models

// Address is a delivery address. Street, city, state and pincode are
// required; the pincode must be exactly 6 digits.
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
}
