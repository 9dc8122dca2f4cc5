package order

import "storefront/internal/pkg/errs"

// Address is the structured shipping destination captured at checkout.
// It is an immutable value object; the snapshot on the order never changes
// even if the customer later edits their saved addresses.
type Address struct {
	name       string
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
	phone      string
}

// NewAddress creates a validated shipping address.
// Name, line1, city, postal code and country are required; line2, state and
// phone are optional.
func NewAddress(name, line1, line2, city, state, postalCode, country, phone string) (Address, error) {
	if name == "" {
		return Address{}, errs.NewValueIsRequiredError("name")
	}
	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("line1")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if postalCode == "" {
		return Address{}, errs.NewValueIsRequiredError("postalCode")
	}
	if country == "" {
		return Address{}, errs.NewValueIsRequiredError("country")
	}

	return Address{
		name:       name,
		line1:      line1,
		line2:      line2,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
		phone:      phone,
	}, nil
}

// Name returns the recipient name.
func (a Address) Name() string { return a.name }

// Line1 returns the first address line.
func (a Address) Line1() string { return a.line1 }

// Line2 returns the optional second address line.
func (a Address) Line2() string { return a.line2 }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the optional state or region.
func (a Address) State() string { return a.state }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country.
func (a Address) Country() string { return a.country }

// Phone returns the optional contact phone number.
func (a Address) Phone() string { return a.phone }
