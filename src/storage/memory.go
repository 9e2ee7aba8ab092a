package storage

import (
	"context"
	"sync"
	"time"

	"github.com/username/subveris/backend/src/models"
)

// MemoryStore keeps everything in mutex-guarded maps. Listing order is
// insertion order, which the spending-by-category grouping and the
// "first streaming subscription" recommendation rule rely on.
type MemoryStore struct {
	mu sync.Mutex

	subs      map[string]models.Subscription
	subOrder  []string
	txns      map[string]models.Transaction
	txnOrder  []string
	insights  map[string]models.Insight
	insOrder  []string
	conns     map[string]models.BankConnection
	connOrder []string
	user      models.User
}

// NewMemoryStore builds an empty store with the given default user.
func NewMemoryStore(username string) *MemoryStore {
	return &MemoryStore{
		subs:     make(map[string]models.Subscription),
		txns:     make(map[string]models.Transaction),
		insights: make(map[string]models.Insight),
		conns:    make(map[string]models.BankConnection),
		user:     DefaultUser(username),
	}
}

// Seed loads the demo dataset. Call before serving requests.
func (s *MemoryStore) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range DemoSubscriptions() {
		s.subs[sub.ID] = sub
		s.subOrder = append(s.subOrder, sub.ID)
	}
	for _, ins := range DemoInsights() {
		s.insights[ins.ID] = ins
		s.insOrder = append(s.insOrder, ins.ID)
	}
	for _, conn := range DemoBankConnections() {
		s.conns[conn.ID] = conn
		s.connOrder = append(s.connOrder, conn.ID)
	}
}

func (s *MemoryStore) ListSubscriptions(_ context.Context) ([]models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subscription, 0, len(s.subOrder))
	for _, id := range s.subOrder {
		out = append(out, s.subs[id])
	}
	return out, nil
}

func (s *MemoryStore) GetSubscription(_ context.Context, id string) (models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return models.Subscription{}, ErrNotFound
	}
	return sub, nil
}

func (s *MemoryStore) CreateSubscription(_ context.Context, ins models.InsertSubscription) (models.Subscription, error) {
	sub := newSubscription(ins)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.ID] = sub
	s.subOrder = append(s.subOrder, sub.ID)
	return sub, nil
}

func (s *MemoryStore) SetSubscriptionStatus(_ context.Context, id string, status models.SubscriptionStatus) (models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return models.Subscription{}, ErrNotFound
	}
	sub.Status = status
	s.subs[id] = sub
	return sub, nil
}

func (s *MemoryStore) SetSubscriptionUsage(_ context.Context, id string, usageCount int) (models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return models.Subscription{}, ErrNotFound
	}
	sub.UsageCount = usageCount
	d := today()
	sub.LastUsedDate = &d
	s.subs[id] = sub
	return sub, nil
}

func (s *MemoryStore) RecordUsage(_ context.Context, id string) (models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return models.Subscription{}, ErrNotFound
	}
	sub.UsageCount++
	d := today()
	sub.LastUsedDate = &d
	// Logging a use reactivates the subscription regardless of its prior
	// status, including to-cancel.
	sub.Status = models.StatusActive
	s.subs[id] = sub
	return sub, nil
}

func (s *MemoryStore) DeleteSubscription(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[id]; !ok {
		return false, nil
	}
	delete(s.subs, id)
	for i, sid := range s.subOrder {
		if sid == id {
			s.subOrder = append(s.subOrder[:i], s.subOrder[i+1:]...)
			break
		}
	}
	// Null out weak references so dependent records don't dangle.
	for tid, txn := range s.txns {
		if txn.SubscriptionID != nil && *txn.SubscriptionID == id {
			txn.SubscriptionID = nil
			s.txns[tid] = txn
		}
	}
	for iid, ins := range s.insights {
		if ins.SubscriptionID != nil && *ins.SubscriptionID == id {
			ins.SubscriptionID = nil
			s.insights[iid] = ins
		}
	}
	return true, nil
}

func (s *MemoryStore) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, 0, len(s.txnOrder))
	for _, id := range s.txnOrder {
		out = append(out, s.txns[id])
	}
	return out, nil
}

func (s *MemoryStore) CreateTransaction(_ context.Context, ins models.InsertTransaction) (models.Transaction, error) {
	txn := newTransaction(ins)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[txn.ID] = txn
	s.txnOrder = append(s.txnOrder, txn.ID)
	return txn, nil
}

func (s *MemoryStore) ListInsights(_ context.Context) ([]models.Insight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Insight, 0, len(s.insOrder))
	for _, id := range s.insOrder {
		out = append(out, s.insights[id])
	}
	return out, nil
}

func (s *MemoryStore) CreateInsight(_ context.Context, ins models.InsertInsight) (models.Insight, error) {
	insight := newInsight(ins)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights[insight.ID] = insight
	s.insOrder = append(s.insOrder, insight.ID)
	return insight, nil
}

func (s *MemoryStore) ListBankConnections(_ context.Context) ([]models.BankConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BankConnection, 0, len(s.connOrder))
	for _, id := range s.connOrder {
		out = append(out, s.conns[id])
	}
	return out, nil
}

func (s *MemoryStore) GetBankConnection(_ context.Context, id string) (models.BankConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn, ok := s.conns[id]
	if !ok {
		return models.BankConnection{}, ErrNotFound
	}
	return conn, nil
}

func (s *MemoryStore) CreateBankConnection(_ context.Context, ins models.InsertBankConnection) (models.BankConnection, error) {
	conn := newBankConnection(ins)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn.ID] = conn
	s.connOrder = append(s.connOrder, conn.ID)
	return conn, nil
}

func (s *MemoryStore) SyncBankConnection(_ context.Context, id string) (models.BankConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn, ok := s.conns[id]
	if !ok {
		return models.BankConnection{}, ErrNotFound
	}
	conn.LastSync = time.Now().Format(time.RFC3339)
	s.conns[id] = conn
	return conn, nil
}

func (s *MemoryStore) DeleteBankConnection(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[id]; !ok {
		return false, nil
	}
	delete(s.conns, id)
	for i, cid := range s.connOrder {
		if cid == id {
			s.connOrder = append(s.connOrder[:i], s.connOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) GetDefaultUser(_ context.Context) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

func (s *MemoryStore) UpdateUserEmail(_ context.Context, id, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user.ID != id {
		return models.User{}, ErrNotFound
	}
	s.user.Email = email
	return s.user, nil
}

func (s *MemoryStore) UpdateUserPassword(_ context.Context, id, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user.ID != id {
		return models.User{}, ErrNotFound
	}
	s.user.PasswordHash = passwordHash
	return s.user, nil
}

func (s *MemoryStore) UpdateUserTOTP(_ context.Context, id, secret string, enabled bool) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user.ID != id {
		return models.User{}, ErrNotFound
	}
	s.user.TOTPSecret = secret
	s.user.TOTPEnabled = enabled
	return s.user, nil
}

func (s *MemoryStore) PurgeUserData(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = make(map[string]models.Subscription)
	s.subOrder = nil
	s.txns = make(map[string]models.Transaction)
	s.txnOrder = nil
	s.insights = make(map[string]models.Insight)
	s.insOrder = nil
	s.conns = make(map[string]models.BankConnection)
	s.connOrder = nil
	return nil
}
