package repository

import (
	"errors"

	"go-pos-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindLowStock(threshold int) ([]model.Product, error)
	Update(product *model.Product) error
	// DecrementStock applies stock = stock - quantity as a single atomic
	// update. It is the only concurrency-safety mechanism between racing
	// checkouts: the final value is numerically correct, but nothing here
	// stops it from going negative if two checkouts pass the cart-level
	// capacity check simultaneously.
	DecrementStock(id uuid.UUID, quantity int, updatedBy string) error
	GetStock(id uuid.UUID) (int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("stock <= ?", threshold).Order("stock ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) DecrementStock(id uuid.UUID, quantity int, updatedBy string) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepo) GetStock(id uuid.UUID) (int, error) {
	var stock int
	res := r.db.Model(&model.Product{}).Where("id = ?", id).Select("stock").Scan(&stock)
	if res.Error != nil {
		return 0, res.Error
	}
	// Scan over zero rows leaves stock at 0 without an error; a product
	// deleted mid-checkout must not read as depleted.
	if res.RowsAffected == 0 {
		return 0, ErrProductNotFound
	}
	return stock, nil
}
