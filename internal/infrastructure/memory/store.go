// Package memory implementa los puertos de persistencia en memoria del proceso.
//
// Cada producto tiene su propio sync.RWMutex (mutex por clave): las unidades de trabajo de
// escritura lo toman en exclusiva y las lecturas en modo compartido. No hay un lock global
// alrededor de validar-modificar-registrar; el mutex del Store solo protege el índice.
package memory

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
)

// Store estado compartido por repositorios y TxRunner en memoria.
type Store struct {
	mu       sync.RWMutex // protege products y order
	products map[int64]*productState
	order    []int64 // IDs en orden de creación

	productSeq atomic.Int64
	txSeq      atomic.Int64
	now        func() time.Time
}

// productState producto y su ledger, protegidos por el mismo mutex.
type productState struct {
	mu      sync.RWMutex
	product entity.Product
	ledger  []entity.Transaction // orden de inserción
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj usado para timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore crea un almacenamiento vacío.
func NewStore(opts ...Option) *Store {
	s := &Store{
		products: make(map[int64]*productState),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) state(id int64) *productState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products[id]
}

// states copia los estados en orden de creación.
func (s *Store) states() []*productState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*productState, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}

func (s *Store) count() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.order))
}

// nextProduct asigna ID y marcas de tiempo a un producto aún no publicado.
func (s *Store) nextProduct(p *entity.Product) {
	now := s.now()
	p.ID = s.productSeq.Add(1)
	p.CreatedAt = now
	p.UpdatedAt = now
}

// publish hace visible el producto con su ledger inicial.
func (s *Store) publish(p entity.Product, ledger []entity.Transaction) {
	st := &productState{product: p, ledger: ledger}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = st
	s.order = append(s.order, p.ID)
}

func (s *Store) nextTransaction(productID int64, direction entity.TransactionType, quantity int64) entity.Transaction {
	return entity.Transaction{
		ID:        s.txSeq.Add(1),
		ProductID: productID,
		Type:      direction,
		Quantity:  quantity,
		Timestamp: s.now(),
	}
}

// current copia el producto bajo el lock de lectura.
func (st *productState) current() entity.Product {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.product
}

// snapshot copia producto y ledger bajo el lock de lectura del producto.
func (st *productState) snapshot() (entity.Product, []entity.Transaction) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ledger := make([]entity.Transaction, len(st.ledger))
	copy(ledger, st.ledger)
	return st.product, ledger
}

// newestFirst ordena por timestamp desc y, a igual timestamp, por inserción desc.
func newestFirst(ledger []entity.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, len(ledger))
	for i := range ledger {
		t := ledger[len(ledger)-1-i]
		out[i] = &t
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
