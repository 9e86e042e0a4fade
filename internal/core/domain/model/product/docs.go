// Package product provides the Product entity of the catalog.
//
// Prices use github.com/shopspring/decimal to avoid binary floating point
// rounding. SKU uniqueness and the "no delete while in stock" rule are
// enforced by the product rules of the CRUD service.
package product
