package service

import (
	"context"
	"sync"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/notify"
	"go-pos-ws/internal/payment"
	"go-pos-ws/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mockProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product

	decrementErr error
	stockReadErr error
}

func newMockProductRepo(products ...*model.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) FindAll() ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) FindBySKU(sku string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) FindLowStock(threshold int) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Product
	for _, p := range m.products {
		if p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) DecrementStock(id uuid.UUID, quantity int, updatedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decrementErr != nil {
		return m.decrementErr
	}
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Stock -= quantity
	return nil
}

func (m *mockProductRepo) GetStock(id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stockReadErr != nil {
		return 0, m.stockReadErr
	}
	p, ok := m.products[id]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	return p.Stock, nil
}

type mockSaleRepo struct {
	mu       sync.Mutex
	sales    []*model.Sale
	revenues []*model.RevenueRecord

	saleErr    error
	revenueErr error
}

func (m *mockSaleRepo) CreateSale(sale *model.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saleErr != nil {
		return m.saleErr
	}
	sale.ID = uuid.New()
	m.sales = append(m.sales, sale)
	return nil
}

func (m *mockSaleRepo) CreateRevenueRecord(record *model.RevenueRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revenueErr != nil {
		return m.revenueErr
	}
	m.revenues = append(m.revenues, record)
	return nil
}

func (m *mockSaleRepo) FindAll() ([]model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Sale
	for _, s := range m.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSaleRepo) GetRevenueSummary() (*repository.RevenueSummary, error) {
	return &repository.RevenueSummary{}, nil
}

// mockStatsRepo accumulates increments the way the real upsert does,
// including its deliberate non-idempotence.
type mockStatsRepo struct {
	mu    sync.Mutex
	stats map[string]*model.StoreStats
	err   error
}

func newMockStatsRepo() *mockStatsRepo {
	return &mockStatsRepo{stats: make(map[string]*model.StoreStats)}
}

func (m *mockStatsRepo) ApplyIncrement(storeID string, delta model.StatsDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	s, ok := m.stats[storeID]
	if !ok {
		s = &model.StoreStats{StoreID: storeID}
		m.stats[storeID] = s
	}
	s.TotalSales += delta.Sales
	s.TotalRevenue += delta.Revenue
	s.TotalProfit += delta.Profit
	return nil
}

func (m *mockStatsRepo) Find(storeID string) (*model.StoreStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[storeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

type mockIntentRepo struct {
	mu      sync.Mutex
	intents map[string]*model.CheckoutIntent
	err     error
}

func newMockIntentRepo() *mockIntentRepo {
	return &mockIntentRepo{intents: make(map[string]*model.CheckoutIntent)}
}

func (m *mockIntentRepo) Create(intent *model.CheckoutIntent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.intents[intent.OrderID] = intent
	return nil
}

func (m *mockIntentRepo) setFlag(orderID string, fn func(*model.CheckoutIntent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.intents[orderID]; ok {
		fn(i)
	}
	return nil
}

func (m *mockIntentRepo) MarkStockApplied(orderID string) error {
	return m.setFlag(orderID, func(i *model.CheckoutIntent) { i.StockApplied = true })
}

func (m *mockIntentRepo) MarkLedgerWritten(orderID string) error {
	return m.setFlag(orderID, func(i *model.CheckoutIntent) { i.LedgerWritten = true })
}

func (m *mockIntentRepo) MarkStatsApplied(orderID string) error {
	return m.setFlag(orderID, func(i *model.CheckoutIntent) { i.StatsApplied = true })
}

func (m *mockIntentRepo) MarkCompleted(orderID string) error {
	return m.setFlag(orderID, func(i *model.CheckoutIntent) { i.Completed = true })
}

func (m *mockIntentRepo) MarkFailed(orderID, reason string) error {
	return m.setFlag(orderID, func(i *model.CheckoutIntent) { i.FailureReason = reason })
}

func (m *mockIntentRepo) FindIncomplete() ([]model.CheckoutIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CheckoutIntent
	for _, i := range m.intents {
		if !i.Completed {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockIntentRepo) get(orderID string) *model.CheckoutIntent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intents[orderID]
}

type mockUserRepo struct {
	storeID string
	err     error
}

func (m *mockUserRepo) FindByEmail(string) (*model.User, error)            { return nil, m.err }
func (m *mockUserRepo) FindByID(uuid.UUID) (*model.User, error)            { return nil, m.err }
func (m *mockUserRepo) FindAll() ([]model.User, error)                     { return nil, m.err }
func (m *mockUserRepo) Create(*model.User) error                           { return m.err }
func (m *mockUserRepo) Update(*model.User) error                           { return m.err }
func (m *mockUserRepo) Delete(uuid.UUID) error                             { return m.err }
func (m *mockUserRepo) UpdatePassword(uuid.UUID, string) error             { return m.err }
func (m *mockUserRepo) UpdatePrivileges(uuid.UUID, []model.Privilege) error { return m.err }
func (m *mockUserRepo) UpdateTokenVersion(uuid.UUID, string) error         { return m.err }
func (m *mockUserRepo) UpdateLastSeen(uuid.UUID) error                     { return m.err }

func (m *mockUserRepo) ResolveStoreID(uuid.UUID) (string, error) {
	return m.storeID, m.err
}

type mockGateway struct {
	mu      sync.Mutex
	session *payment.SnapSession
	err     error
	calls   int
}

func (m *mockGateway) CreateTransaction(_ context.Context, orderID string, grossAmount int64, _ payment.Customer) (*payment.SnapSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.session != nil {
		return m.session, nil
	}
	return &payment.SnapSession{Token: "snap-token", RedirectURL: "https://pay.example/" + orderID}, nil
}

type mockEmitter struct {
	mu     sync.Mutex
	events []notify.Event
}

func (m *mockEmitter) Emit(event notify.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockEmitter) byKind(kind notify.Kind) []notify.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notify.Event
	for _, e := range m.events {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}
