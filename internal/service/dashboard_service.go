package service

import (
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	GetRevenueSummary() (*repository.RevenueSummary, error)
	GetStoreStats(storeID string) (*model.StoreStats, error)
	GetSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type dashboardService struct {
	saleRepo  repository.SaleRepository
	statsRepo repository.StatsRepository
}

func NewDashboardService(saleRepo repository.SaleRepository, statsRepo repository.StatsRepository) DashboardService {
	return &dashboardService{saleRepo: saleRepo, statsRepo: statsRepo}
}

func (s *dashboardService) GetRevenueSummary() (*repository.RevenueSummary, error) {
	return s.saleRepo.GetRevenueSummary()
}

func (s *dashboardService) GetStoreStats(storeID string) (*model.StoreStats, error) {
	return s.statsRepo.Find(storeID)
}

func (s *dashboardService) GetSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *dashboardService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id)
}
