package address

// Address is a shipping or billing destination. State and Country are
// 2-letter codes.
type Address struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Company   *string `json:"company,omitempty"`

	Address1 string  `json:"address1"`
	Address2 *string `json:"address2,omitempty"`

	City    string  `json:"city"`
	State   string  `json:"state"`
	Postal  string  `json:"postal_code"`
	Country string  `json:"country"`
	Phone   *string `json:"phone,omitempty"`
}

// FieldError points at the address field that failed verification.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Verification is the verdict for one address. CorrectedAddress, when
// present, is a suggestion only; callers must apply it explicitly.
type Verification struct {
	IsValid          bool         `json:"is_valid"`
	Errors           []FieldError `json:"errors"`
	CorrectedAddress *Address     `json:"corrected_address,omitempty"`
}

// Equal reports structural equality, treating nil and empty optional fields
// the same.
func (a Address) Equal(b Address) bool {
	return a.FirstName == b.FirstName &&
		a.LastName == b.LastName &&
		optEqual(a.Company, b.Company) &&
		a.Address1 == b.Address1 &&
		optEqual(a.Address2, b.Address2) &&
		a.City == b.City &&
		a.State == b.State &&
		a.Postal == b.Postal &&
		a.Country == b.Country &&
		optEqual(a.Phone, b.Phone)
}

func optEqual(a, b *string) bool {
	av, bv := "", ""
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}
