package product

import (
	"fmt"
	"sort"
)

// Product is a catalogue entry. ID is the string form of the store's native
// identifier and is empty until the product is first persisted.
type Product struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Country     string `json:"country" db:"country"`
	Price       int64  `json:"price" db:"price"`
	Description string `json:"description,omitempty" db:"description"`
	Stock       int64  `json:"stock,omitempty" db:"stock"`
}

// CreateProductRequest represents the request to create a new product
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Country     string `json:"country" validate:"required"`
	Price       *int64 `json:"price" validate:"required,gte=0"`
	Description string `json:"description,omitempty"`
	Stock       int64  `json:"stock,omitempty" validate:"gte=0"`
}

// ToProduct builds an unpersisted product from the request.
func (r *CreateProductRequest) ToProduct() *Product {
	p := &Product{
		Name:        r.Name,
		Country:     r.Country,
		Description: r.Description,
		Stock:       r.Stock,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p
}

// Filter is an equality filter over declared product fields.
type Filter map[string]any

// NaturalKey returns the filter identifying a product by (name, country).
func NaturalKey(name, country string) Filter {
	return Filter{FieldName: name, FieldCountry: country}
}

// Validate rejects filters that reference undeclared fields.
func (f Filter) Validate() error {
	for k := range f {
		if _, ok := Schema[k]; !ok {
			return fmt.Errorf("unknown product field %q in filter", k)
		}
	}
	return nil
}

// Keys returns the filter keys in a stable order.
func (f Filter) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
