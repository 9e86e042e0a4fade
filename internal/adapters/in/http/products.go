package http

import (
	"cmp"
	"slices"
	"strings"

	"dds/internal/adapters/in/http/crud"
	"dds/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput is the body of POST and PUT /api/v1/products. ID follows the
// same rules as CustomerInput.ID.
type ProductInput struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ProductView is the product returned by reads. Price is encoded as a
// decimal string.
type ProductView struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ProductController serves /api/v1/products.
type ProductController = crud.Controller[ProductInput, ProductView, *product.Product]

// ProductMapper converts product view models to entities and back.
type ProductMapper struct{}

// ToEntity builds a product from the request body. A malformed id is
// recorded on the product under "id".
func (ProductMapper) ToEntity(vm ProductInput) (*product.Product, error) {
	id, ok := inputID(vm.ID)
	p := product.NewProduct(id, vm.Name, vm.SKU, vm.Price, vm.Stock)
	if !ok {
		p.AddNotification("id", MessageInvalidID)
	}
	return p, nil
}

// ToView converts a product to its read model.
func (ProductMapper) ToView(p *product.Product) ProductView {
	return ProductView{
		ID:    p.ID().Bytes(),
		Name:  p.Name(),
		SKU:   p.SKU(),
		Price: p.Price(),
		Stock: p.Stock(),
	}
}

// OrderProducts sorts by name ignoring case, then by SKU. SKUs are unique.
func OrderProducts(views []ProductView) []ProductView {
	ordered := slices.Clone(views)
	slices.SortFunc(ordered, func(a, b ProductView) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			strings.Compare(a.SKU, b.SKU),
			strings.Compare(a.ID.String(), b.ID.String()),
		)
	})
	return ordered
}

// NewProductController wires the product resource.
func NewProductController(services crud.ServiceFactory[*product.Product]) *ProductController {
	return crud.NewController[ProductInput, ProductView, *product.Product](
		services, ProductMapper{}, OrderProducts,
	)
}
