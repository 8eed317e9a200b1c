package orders

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/models"
)

// In-memory stores backing the service tests. Stock mutation mirrors the
// ledger contract: the decrement holds a lock and enforces the floor, so
// concurrent reservations behave like the conditional Mongo update.

type memProducts struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Product
}

func newMemProducts() *memProducts {
	return &memProducts{items: make(map[primitive.ObjectID]*models.Product)}
}

func (m *memProducts) add(p models.Product) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := p
	m.items[p.ID] = &cp
	return p.ID
}

func (m *memProducts) stock(id primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[id]; ok {
		return p.Stock
	}
	return -1
}

func (m *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.items[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *memProducts) FindIDsBySeller(_ context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []primitive.ObjectID
	for id, p := range m.items {
		if p.CreatedBy == sellerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memProducts) CheckAvailability(_ context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || p.IsDeleted {
		return false, NotFoundError{Kind: "product", ID: id.Hex()}
	}
	return p.Stock >= quantity, nil
}

func (m *memProducts) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || p.IsDeleted {
		return NotFoundError{Kind: "product", ID: id.Hex()}
	}
	if p.Stock < quantity {
		return InsufficientStockError{ProductID: id, Available: p.Stock, Requested: quantity}
	}
	p.Stock -= quantity
	return nil
}

func (m *memProducts) IncrementStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[id]; ok {
		p.Stock += quantity
	}
	return nil
}

type memOrders struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Order
}

func newMemOrders() *memOrders {
	return &memOrders{items: make(map[primitive.ObjectID]*models.Order)}
}

func (m *memOrders) add(o models.Order) primitive.ObjectID {
	id, _ := m.Insert(context.Background(), &o)
	return id
}

func (m *memOrders) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	cp := *order
	m.items[order.ID] = &cp
	return order.ID, nil
}

func (m *memOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.Order{}
	for _, o := range m.items {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *memOrders) Find(_ context.Context, q OrderQuery) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []models.Order{}
	for _, o := range m.items {
		if q.Status != "" && o.OrderStatus != q.Status {
			continue
		}
		if q.BuyerID != nil && o.UserID != *q.BuyerID {
			continue
		}
		if q.StartDate != nil && o.CreatedAt.Before(*q.StartDate) {
			continue
		}
		if q.EndDate != nil && o.CreatedAt.After(*q.EndDate) {
			continue
		}
		if q.ProductIDs != nil && !containsAnyProduct(o.OrderItems, q.ProductIDs) {
			continue
		}
		matched = append(matched, *o)
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.SortOrder == "asc" {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start >= total {
		return []models.Order{}, total, nil
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func containsAnyProduct(items []models.OrderItem, ids []primitive.ObjectID) bool {
	for _, item := range items {
		for _, id := range ids {
			if item.ProductID == id {
				return true
			}
		}
	}
	return false
}

func (m *memOrders) Replace(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[order.ID]; !ok {
		return NotFoundError{Kind: "order", ID: order.ID.Hex()}
	}
	cp := *order
	m.items[order.ID] = &cp
	return nil
}

func (m *memOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return NotFoundError{Kind: "order", ID: id.Hex()}
	}
	delete(m.items, id)
	return nil
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type memUsers struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: make(map[primitive.ObjectID]*models.User)}
}

func (m *memUsers) add(u models.User) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := u
	m.items[u.ID] = &cp
	return u.ID
}

func (m *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByNameOrEmail(_ context.Context, query string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	for _, u := range m.items {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) AppendOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.items[userID]; ok {
		u.Orders = append(u.Orders, orderID)
	}
	return nil
}

func (m *memUsers) orderHistory(id primitive.ObjectID) []primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.items[id]; ok {
		return append([]primitive.ObjectID(nil), u.Orders...)
	}
	return nil
}

type memAddresses struct {
	mu    sync.Mutex
	items []models.ShippingAddress
}

func (m *memAddresses) CreateSnapshot(_ context.Context, address *models.ShippingAddress) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	address.ID = primitive.NewObjectID()
	m.items = append(m.items, *address)
	return address.ID, nil
}

type memRefunds struct {
	mu    sync.Mutex
	items []models.RefundRequest
}

func (m *memRefunds) Insert(_ context.Context, refund *models.RefundRequest) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refund.ID = primitive.NewObjectID()
	m.items = append(m.items, *refund)
	return refund.ID, nil
}

type captureNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (n *captureNotifier) Notify(msg models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *captureNotifier) recipients() []primitive.ObjectID {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := make([]primitive.ObjectID, 0, len(n.sent))
	for _, msg := range n.sent {
		ids = append(ids, msg.RecipientID)
	}
	return ids
}

// immediateTx runs the unit of work without transactional isolation, the
// same shape a standalone Mongo deployment gives.
type immediateTx struct{}

func (immediateTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type testEnv struct {
	svc       *Service
	orders    *memOrders
	products  *memProducts
	users     *memUsers
	addresses *memAddresses
	refunds   *memRefunds
	notifier  *captureNotifier
}

func newTestEnv() *testEnv {
	env := &testEnv{
		orders:    newMemOrders(),
		products:  newMemProducts(),
		users:     newMemUsers(),
		addresses: &memAddresses{},
		refunds:   &memRefunds{},
		notifier:  &captureNotifier{},
	}
	env.svc = NewService(env.orders, env.products, env.users, env.addresses, env.refunds, env.notifier, immediateTx{})
	return env
}
