package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrProductNameRequired  = errors.New("product name is required")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrProductNotFound      = errors.New("product not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrProductInUse         = errors.New("product is used by existing transactions and cannot be deleted")
)

// NameTakenError reports a case-insensitive name collision.
type NameTakenError struct {
	Entity string
	Name   string
}

func (e *NameTakenError) Error() string {
	return fmt.Sprintf("%s %q already exists, please use another name", e.Entity, e.Name)
}

// CategoryInUseError blocks deleting a category that products still reference.
type CategoryInUseError struct {
	ProductCount int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category is still used by %d product(s); move or delete those products first", e.ProductCount)
}
