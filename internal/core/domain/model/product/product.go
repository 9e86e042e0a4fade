package product

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"dds/internal/core/domain/model/kernel"
	"dds/internal/pkg/errs"
	"dds/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// MaxNameLength is the longest product name accepted.
	MaxNameLength = 100

	// MaxSKULength is the longest stock keeping unit accepted.
	MaxSKULength = 32

	// MaxStock caps the quantity a single product may hold.
	MaxStock = 1_000_000
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// MaxPrice is the highest unit price the catalog can store.
	MaxPrice = decimal.RequireFromString("999999999999.99")

	skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]*$`)
)

// Product is an item of the catalog.
//
// Product follows these invariants:
//   - Must have a valid unique identifier
//   - Name is required and at most MaxNameLength characters
//   - SKU is required, upper case letters, digits and dashes only
//   - Price is between 0 and MaxPrice with at most two decimal places
//   - Stock is between 0 and MaxStock
type Product struct {
	kernel.Notifiable

	id    kernel.UUID
	name  string
	sku   string
	price decimal.Decimal
	stock int

	guard guard.ConstructorGuard
}

// NewProduct builds a product from raw input. The returned product is never
// nil; rule violations are recorded as notifications.
func NewProduct(id kernel.UUID, name string, sku string, price decimal.Decimal, stock int) *Product {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	p.AddError(errors.Join(
		p.setID(id),
		p.setName(name),
		p.setSKU(sku),
		p.setPrice(price),
		p.setStock(stock),
	))

	return p
}

// RestoreProduct rehydrates a product loaded from storage.
func RestoreProduct(id kernel.UUID, name string, sku string, price decimal.Decimal, stock int) (*Product, error) {
	p := NewProduct(id, name, sku, price, stock)
	if p.Invalid() {
		return nil, fmt.Errorf("restore product %s: %v", id, p.Notifications())
	}
	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// SKU returns the normalized stock keeping unit.
func (p *Product) SKU() string {
	return p.sku
}

// Price returns the unit price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// Stock returns the quantity on hand.
func (p *Product) Stock() int {
	return p.stock
}

// CanBeDeleted reports whether the product may be removed from the catalog.
// Products with units on hand must be written off first.
func (p *Product) CanBeDeleted() bool {
	return p.stock == 0
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("name must have at most %d characters", MaxNameLength))
	}
	p.name = name
	return nil
}

func (p *Product) setSKU(sku string) error {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if len(sku) > MaxSKULength {
		return errs.NewValueIsInvalidErrorWithCause("sku",
			fmt.Errorf("sku must have at most %d characters", MaxSKULength))
	}
	if !skuPattern.MatchString(sku) {
		return errs.NewValueIsInvalidErrorWithCause("sku",
			errors.New("sku must contain only letters, digits and dashes"))
	}
	p.sku = sku
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", errors.New("price must not be negative"))
	}
	if price.GreaterThan(MaxPrice) {
		return errs.NewValueIsOutOfRangeError("price", price, decimal.Zero, MaxPrice)
	}
	if !price.Equal(price.Round(2)) {
		return errs.NewValueIsInvalidErrorWithCause("price", errors.New("price must have at most 2 decimal places"))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 || stock > MaxStock {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, MaxStock)
	}
	p.stock = stock
	return nil
}
