package service

import (
	"errors"
	"fmt"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/notify"
	"go-pos-ws/internal/repository"
	"go-pos-ws/pkg/validator"

	"github.com/google/uuid"
)

var ErrSKUExists = errors.New("SKU already exists")

type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	GetLowStock() ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	emitter     notify.Emitter
}

func NewCatalogService(productRepo repository.ProductRepository, emitter notify.Emitter) CatalogService {
	return &catalogService{productRepo: productRepo, emitter: emitter}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.emitter.Emit(notify.ProductAdded{
		ProductID: req.ID,
		SKU:       req.SKU,
		Name:      req.Name,
		Stock:     req.Stock,
		Price:     req.Price,
		ByName:    userName,
	})
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	oldStock := existing.Stock

	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Stock = req.Stock
	existing.Unit = req.Unit
	existing.Price = req.Price
	existing.CostPrice = req.CostPrice
	existing.UpdatedBy = userID
	existing.UpdatedByUserID = &userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.emitter.Emit(notify.ProductUpdated{
		ProductID: existing.ID,
		SKU:       existing.SKU,
		Name:      existing.Name,
		OldStock:  oldStock,
		NewStock:  existing.Stock,
		Price:     existing.Price,
		ByName:    userName,
	})
	return existing, nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) GetLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock(lowStockThreshold)
}
