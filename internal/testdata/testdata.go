// Package testdata holds the fixed catalog facts the e2e suite asserts
// against. The suite runs against the demo storefront, whose products and
// coupons are stable; prices here are the listed unit prices in ₪.
package testdata

import "github.com/atid-store/storecheck/internal/pages"

// Product pairs a catalog product's full name with its listed price. A zero
// price means the product's price is not pinned by any assertion.
type Product struct {
	Name  string
	Price float64
}

var (
	YellowShoes = Product{Name: "ATID Yellow Shoes", Price: 120.00}
	GreenShoes  = Product{Name: "ATID Green Shoes", Price: 110.00}
	BlueShoes   = Product{Name: "ATID Blue Shoes"}
	BlackHoodie = Product{Name: "Black Hoodie", Price: 150.00}
	GreenTshirt = Product{Name: "ATID Green Tshirt", Price: 190.00}
)

// Coupons
const (
	ValidCouponCode   = "kuku"
	InvalidCouponCode = "nosuchcoupon"
)

// Shipping costs per configured method.
var ShippingCosts = map[pages.ShippingOption]float64{
	pages.ShippingLocalPickup:    0,
	pages.ShippingExpress:        12.50,
	pages.ShippingRegisteredMail: 5.90,
}

// Billing is a complete valid billing form payload.
var Billing = pages.BillingInfo{
	FirstName: "Haim",
	LastName:  "Cohen",
	Company:   "Cohen LTD.",
	Address:   "Ha Jasmin 8",
	Apartment: "floor 1",
	Postcode:  "1234567",
	City:      "Tel Aviv",
	Phone:     "050-1234567",
	Email:     "cohen@example.com",
}

// Search terms and expected outcomes.
const (
	SearchTerm        = "shirt"
	SearchNoMatchTerm = "pizza"
)

// Static page paths.
const (
	AboutPath   = "/about/"
	ContactPath = "/contact-us/"
	CartPath    = "/cart/"
	StorePath   = "/shop/"
)

// EmptyCartMessage is the storefront's empty-cart notice.
const EmptyCartMessage = "Your cart is currently empty."
