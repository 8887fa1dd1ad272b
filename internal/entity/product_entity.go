package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProductID accepts both numeric and string ids from the catalog document.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	// A numeric zero id is falsy in the catalog format and means "no id".
	// The string "0" is a real id.
	if f, err := n.Float64(); err == nil && f == 0 {
		*id = ""
		return nil
	}
	*id = ProductID(n.String())
	return nil
}

// Present reports whether the product carries an id of its own.
func (id ProductID) Present() bool {
	return id != ""
}

type Product struct {
	ID          ProductID `json:"id,omitempty"`
	Name        string    `json:"name" validate:"required"`
	Brand       string    `json:"brand,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image" validate:"required"`

	// Key is the derived identity used for selection membership and card correlation.
	Key string `json:"_key,omitempty"`
}

// DerivedKey returns the id when present, otherwise the name.
func (p Product) DerivedKey() string {
	if p.ID.Present() {
		return string(p.ID)
	}
	return p.Name
}

// WithKey returns a copy of p whose Key is filled from DerivedKey when missing.
func (p Product) WithKey() Product {
	if p.Key == "" {
		p.Key = p.DerivedKey()
	}
	return p
}

// Catalog is the static document shape served as products.json.
type Catalog struct {
	Products []Product `json:"products"`
}
