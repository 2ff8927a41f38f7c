package product

import (
	"fmt"
	"strconv"
)

// FieldType is the decoded type of a product field.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
)

const (
	FieldID          = "id"
	FieldName        = "name"
	FieldCountry     = "country"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldStock       = "stock"
)

// Schema declares every product field and its type. Cache entries are decoded
// against it and store filters are validated against it.
var Schema = map[string]FieldType{
	FieldID:          FieldString,
	FieldName:        FieldString,
	FieldCountry:     FieldString,
	FieldPrice:       FieldInt,
	FieldDescription: FieldString,
	FieldStock:       FieldInt,
}

var requiredFields = []string{FieldName, FieldCountry, FieldPrice}

// Fields flattens the product into its field map.
func (p *Product) Fields() map[string]any {
	return map[string]any{
		FieldID:          p.ID,
		FieldName:        p.Name,
		FieldCountry:     p.Country,
		FieldPrice:       p.Price,
		FieldDescription: p.Description,
		FieldStock:       p.Stock,
	}
}

// Coerce converts a raw string value to the type the schema declares for
// field. Undeclared fields stay strings.
func Coerce(field, raw string) (any, error) {
	if Schema[field] != FieldInt {
		return raw, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrCacheDecode, field, err)
	}
	return n, nil
}

// FromFields rebuilds a product from a coerced field map.
func FromFields(fields map[string]any) (*Product, error) {
	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrCacheDecode, f)
		}
	}

	p := &Product{}
	var err error
	if p.ID, err = stringField(fields, FieldID); err != nil {
		return nil, err
	}
	if p.Name, err = stringField(fields, FieldName); err != nil {
		return nil, err
	}
	if p.Country, err = stringField(fields, FieldCountry); err != nil {
		return nil, err
	}
	if p.Description, err = stringField(fields, FieldDescription); err != nil {
		return nil, err
	}
	if p.Price, err = intField(fields, FieldPrice); err != nil {
		return nil, err
	}
	if p.Stock, err = intField(fields, FieldStock); err != nil {
		return nil, err
	}
	return p, nil
}

func stringField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", ErrCacheDecode, name, v)
	}
	return s, nil
}

func intField(fields map[string]any, name string) (int64, error) {
	v, ok := fields[name]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: field %q is %T, want integer", ErrCacheDecode, name, v)
	}
}
