// Package catalog owns product and category records: CRUD, name
// uniqueness, and the referential checks that keep deletes safe.
// Stock is only adjusted here through direct edits; sales never call
// the catalog's write path.
package catalog

import (
	"fmt"
	"strings"

	"warung-pos/internal/models"
	"warung-pos/internal/store"
)

type Manager struct {
	store *store.Store
}

func NewManager(s *store.Store) *Manager {
	return &Manager{store: s}
}

func (m *Manager) Products() ([]models.Product, error) {
	return m.store.Products()
}

func (m *Manager) Categories() ([]models.Category, error) {
	return m.store.Categories()
}

// CreateProduct validates the name, fills in defaults (SKU, legacy price
// alias) and appends the product to the collection.
func (m *Manager) CreateProduct(input models.Product) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrProductNameRequired
	}

	var created *models.Product
	err := m.store.Mutate(func() error {
		products, err := m.store.Products()
		if err != nil {
			return err
		}
		if nameTaken(products, input.Name, 0) {
			return &NameTakenError{Entity: "product", Name: input.Name}
		}

		input.ID = store.NextID()
		if input.SellingPrice == 0 && input.Price != 0 {
			input.SellingPrice = input.Price
		}
		input.Price = input.SellingPrice
		if input.SKU == "" {
			input.SKU = fmt.Sprintf("PROD-%d", input.ID)
		}
		if input.Stock < 0 {
			input.Stock = 0
		}

		created = &input
		return m.store.SaveProducts(append(products, input))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ProductUpdate carries the fields a product edit may change. Nil
// fields keep their stored value, so a partial body never zeroes
// stock, prices or flags.
type ProductUpdate struct {
	Name          *string  `json:"name"`
	SKU           *string  `json:"sku"`
	PurchasePrice *float64 `json:"purchasePrice"`
	SellingPrice  *float64 `json:"sellingPrice"`
	Price         *float64 `json:"price"`
	Stock         *int     `json:"stock"`
	CategoryID    *int64   `json:"categoryId"`
	ImageBase64   *string  `json:"imageBase64"`
	QRCode        *string  `json:"qrCode"`
	IsTopProduct  *bool    `json:"isTopProduct"`
	IsBestSeller  *bool    `json:"isBestSeller"`
}

// UpdateProduct merges the sent fields onto the stored product.
func (m *Manager) UpdateProduct(id int64, input ProductUpdate) (*models.Product, error) {
	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProductNameRequired
		}
	}

	var updated *models.Product
	err := m.store.Mutate(func() error {
		products, err := m.store.Products()
		if err != nil {
			return err
		}
		if input.Name != nil && nameTaken(products, name, id) {
			return &NameTakenError{Entity: "product", Name: name}
		}

		idx := -1
		for i := range products {
			if products[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrProductNotFound
		}

		p := &products[idx]
		if input.Name != nil {
			p.Name = name
		}
		if input.SKU != nil && *input.SKU != "" {
			p.SKU = *input.SKU
		}
		if input.PurchasePrice != nil {
			p.PurchasePrice = *input.PurchasePrice
		}
		if input.SellingPrice != nil {
			p.SellingPrice = *input.SellingPrice
			p.Price = p.SellingPrice
		} else if input.Price != nil {
			p.SellingPrice = *input.Price
			p.Price = *input.Price
		}
		if input.Stock != nil {
			p.Stock = *input.Stock
			if p.Stock < 0 {
				p.Stock = 0
			}
		}
		if input.CategoryID != nil {
			p.CategoryID = *input.CategoryID
		}
		if input.ImageBase64 != nil && *input.ImageBase64 != "" {
			p.ImageBase64 = *input.ImageBase64
		}
		if input.QRCode != nil && *input.QRCode != "" {
			p.QRCode = *input.QRCode
		}
		if input.IsTopProduct != nil {
			p.IsTopProduct = *input.IsTopProduct
		}
		if input.IsBestSeller != nil {
			p.IsBestSeller = *input.IsBestSeller
		}

		updated = p
		return m.store.SaveProducts(products)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes a product unless a transaction still references
// it; sold products must stay so history keeps resolving.
func (m *Manager) DeleteProduct(id int64) error {
	return m.store.Mutate(func() error {
		transactions, err := m.store.Transactions()
		if err != nil {
			return err
		}
		for _, t := range transactions {
			for _, item := range t.Items {
				if item.ProductID == id {
					return ErrProductInUse
				}
			}
		}

		products, err := m.store.Products()
		if err != nil {
			return err
		}
		kept := products[:0]
		for _, p := range products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(products) {
			return ErrProductNotFound
		}
		return m.store.SaveProducts(kept)
	})
}

func (m *Manager) CreateCategory(input models.Category) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrCategoryNameRequired
	}

	var created *models.Category
	err := m.store.Mutate(func() error {
		categories, err := m.store.Categories()
		if err != nil {
			return err
		}
		if categoryNameTaken(categories, input.Name, 0) {
			return &NameTakenError{Entity: "category", Name: input.Name}
		}
		input.ID = store.NextID()
		created = &input
		return m.store.SaveCategories(append(categories, input))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (m *Manager) UpdateCategory(id int64, input models.Category) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrCategoryNameRequired
	}

	var updated *models.Category
	err := m.store.Mutate(func() error {
		categories, err := m.store.Categories()
		if err != nil {
			return err
		}
		if categoryNameTaken(categories, input.Name, id) {
			return &NameTakenError{Entity: "category", Name: input.Name}
		}
		for i := range categories {
			if categories[i].ID == id {
				input.ID = id
				if input.Description == "" {
					input.Description = categories[i].Description
				}
				categories[i] = input
				updated = &categories[i]
				return m.store.SaveCategories(categories)
			}
		}
		return ErrCategoryNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory refuses while any product still points at the category.
func (m *Manager) DeleteCategory(id int64) error {
	return m.store.Mutate(func() error {
		products, err := m.store.Products()
		if err != nil {
			return err
		}
		inUse := 0
		for _, p := range products {
			if p.CategoryID == id {
				inUse++
			}
		}
		if inUse > 0 {
			return &CategoryInUseError{ProductCount: inUse}
		}

		categories, err := m.store.Categories()
		if err != nil {
			return err
		}
		kept := categories[:0]
		for _, c := range categories {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(categories) {
			return ErrCategoryNotFound
		}
		return m.store.SaveCategories(kept)
	})
}

// ProductNameTaken reports whether another product already uses the name.
func (m *Manager) ProductNameTaken(name string, excludeID int64) (bool, error) {
	products, err := m.store.Products()
	if err != nil {
		return false, err
	}
	return nameTaken(products, strings.TrimSpace(name), excludeID), nil
}

// CategoryNameTaken reports whether another category already uses the name.
func (m *Manager) CategoryNameTaken(name string, excludeID int64) (bool, error) {
	categories, err := m.store.Categories()
	if err != nil {
		return false, err
	}
	return categoryNameTaken(categories, strings.TrimSpace(name), excludeID), nil
}

func nameTaken(products []models.Product, name string, excludeID int64) bool {
	for _, p := range products {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func categoryNameTaken(categories []models.Category, name string, excludeID int64) bool {
	for _, c := range categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
