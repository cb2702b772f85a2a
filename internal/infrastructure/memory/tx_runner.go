package memory

import (
	"context"
	"errors"

	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/coffee-stock-api/internal/domain/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

var errReadOnly = errors.New("memory: escritura en unidad de trabajo de solo lectura")

// TxRunner ejecuta callbacks dentro de una unidad de trabajo en memoria.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a una unidad de trabajo de escritura.
// Los productos tocados quedan bloqueados en exclusiva hasta Commit o Rollback;
// las escrituras se acumulan y solo se publican si fn termina sin error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return r.run(ctx, false, fn)
}

// ReadOnly ejecuta fn sobre una instantánea: cada producto leído queda con lock compartido
// hasta el final, de modo que producto y ledger se ven en el mismo estado.
func (r *TxRunner) ReadOnly(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return r.run(ctx, true, fn)
}

func (r *TxRunner) run(ctx context.Context, readOnly bool, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := newUnitOfWork(r.store, readOnly)
	defer u.release()

	if err := fn(&txProductRepo{u: u}, &txTransactionRepo{u: u}); err != nil {
		return err
	}
	if !readOnly {
		u.commit()
	}
	return nil
}

// unitOfWork locks retenidos y escrituras pendientes de una ejecución de TxRunner.
type unitOfWork struct {
	store    *Store
	readOnly bool

	held    map[int64]*productState
	order   []*productState
	stock   map[int64]int64
	appends map[int64][]entity.Transaction
	created map[int64]*entity.Product
	newIDs  []int64
}

func newUnitOfWork(store *Store, readOnly bool) *unitOfWork {
	return &unitOfWork{
		store:    store,
		readOnly: readOnly,
		held:     make(map[int64]*productState),
		stock:    make(map[int64]int64),
		appends:  make(map[int64][]entity.Transaction),
		created:  make(map[int64]*entity.Product),
	}
}

// acquire bloquea el producto una sola vez por unidad de trabajo. nil si no existe.
func (u *unitOfWork) acquire(id int64) *productState {
	if st, ok := u.held[id]; ok {
		return st
	}
	st := u.store.state(id)
	if st == nil {
		return nil
	}
	if u.readOnly {
		st.mu.RLock()
	} else {
		st.mu.Lock()
	}
	u.held[id] = st
	u.order = append(u.order, st)
	return st
}

// view producto con las escrituras pendientes aplicadas. Requiere st retenido.
func (u *unitOfWork) view(st *productState) entity.Product {
	p := st.product
	if v, ok := u.stock[p.ID]; ok {
		p.Stock = v
	}
	return p
}

func (u *unitOfWork) commit() {
	now := u.store.now()
	for _, id := range u.newIDs {
		u.store.publish(*u.created[id], u.appends[id])
	}
	for id, st := range u.held {
		if v, ok := u.stock[id]; ok {
			st.product.Stock = v
			st.product.UpdatedAt = now
		}
		if pending := u.appends[id]; len(pending) > 0 {
			st.ledger = append(st.ledger, pending...)
		}
	}
}

// release libera los locks en orden inverso. Sin commit previo equivale a rollback.
func (u *unitOfWork) release() {
	for i := len(u.order) - 1; i >= 0; i-- {
		if u.readOnly {
			u.order[i].mu.RUnlock()
		} else {
			u.order[i].mu.Unlock()
		}
	}
	u.order = nil
	u.held = nil
}

// txProductRepo ProductRepository atado a una unidad de trabajo.
type txProductRepo struct {
	u *unitOfWork
}

func (r *txProductRepo) Create(_ context.Context, product *entity.Product) error {
	if r.u.readOnly {
		return errReadOnly
	}
	if err := product.Validate(); err != nil {
		return err
	}
	r.u.store.nextProduct(product)
	staged := *product
	r.u.created[product.ID] = &staged
	r.u.newIDs = append(r.u.newIDs, product.ID)
	return nil
}

func (r *txProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	if p, ok := r.u.created[id]; ok {
		cp := *p
		return &cp, nil
	}
	if st, ok := r.u.held[id]; ok {
		p := r.u.view(st)
		return &p, nil
	}
	if r.u.readOnly {
		st := r.u.acquire(id)
		if st == nil {
			return nil, nil
		}
		p := st.product
		return &p, nil
	}
	st := r.u.store.state(id)
	if st == nil {
		return nil, nil
	}
	p := st.current()
	return &p, nil
}

// List lee el estado confirmado más los productos creados en esta unidad de trabajo.
func (r *txProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	states := r.u.store.states()
	all := make([]*entity.Product, 0, len(states)+len(r.u.newIDs))
	for _, st := range states {
		// Los productos retenidos ya están bloqueados por esta unidad de trabajo.
		if held, ok := r.u.held[st.product.ID]; ok && held == st {
			v := r.u.view(st)
			all = append(all, &v)
			continue
		}
		p := st.current()
		all = append(all, &p)
	}
	for _, id := range r.u.newIDs {
		cp := *r.u.created[id]
		all = append(all, &cp)
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *txProductRepo) Count(_ context.Context) (int64, error) {
	return r.u.store.count() + int64(len(r.u.newIDs)), nil
}

func (r *txProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	if r.u.readOnly {
		return nil, errReadOnly
	}
	if _, ok := r.u.created[id]; ok {
		return r.GetByID(ctx, id)
	}
	st := r.u.acquire(id)
	if st == nil {
		return nil, nil
	}
	p := r.u.view(st)
	return &p, nil
}

func (r *txProductRepo) ApplyStockDelta(_ context.Context, id int64, delta int64) (int64, error) {
	if r.u.readOnly {
		return 0, errReadOnly
	}
	if p, ok := r.u.created[id]; ok {
		if domaininv.StockOverflows(p.Stock, delta) {
			return 0, domain.NewStockOverflowError(p.Stock)
		}
		next := p.Stock + delta
		if next < 0 {
			return 0, &domain.InsufficientStockError{ProductID: id, Current: p.Stock}
		}
		p.Stock = next
		return next, nil
	}
	st := r.u.acquire(id)
	if st == nil {
		return 0, &domain.NotFoundError{ProductID: id}
	}
	current := r.u.view(st).Stock
	if domaininv.StockOverflows(current, delta) {
		return 0, domain.NewStockOverflowError(current)
	}
	next := current + delta
	if next < 0 {
		return 0, &domain.InsufficientStockError{ProductID: id, Current: current}
	}
	r.u.stock[id] = next
	return next, nil
}

// txTransactionRepo TransactionRepository atado a una unidad de trabajo.
type txTransactionRepo struct {
	u *unitOfWork
}

func (r *txTransactionRepo) Append(_ context.Context, productID int64, direction entity.TransactionType, quantity int64) (*entity.Transaction, error) {
	if r.u.readOnly {
		return nil, errReadOnly
	}
	if err := entity.ValidateMovement(direction, quantity); err != nil {
		return nil, err
	}
	if _, ok := r.u.created[productID]; !ok {
		if st := r.u.acquire(productID); st == nil {
			return nil, &domain.NotFoundError{ProductID: productID}
		}
	}
	t := r.u.store.nextTransaction(productID, direction, quantity)
	r.u.appends[productID] = append(r.u.appends[productID], t)
	return &t, nil
}

func (r *txTransactionRepo) FindByProduct(_ context.Context, productID int64) ([]*entity.Transaction, error) {
	if _, ok := r.u.created[productID]; ok {
		return newestFirst(r.u.appends[productID]), nil
	}
	st, ok := r.u.held[productID]
	if !ok && r.u.readOnly {
		st = r.u.acquire(productID)
		ok = st != nil
	}
	if !ok {
		st = r.u.store.state(productID)
		if st == nil {
			return []*entity.Transaction{}, nil
		}
		_, ledger := st.snapshot()
		return newestFirst(ledger), nil
	}
	ledger := make([]entity.Transaction, 0, len(st.ledger)+len(r.u.appends[productID]))
	ledger = append(ledger, st.ledger...)
	ledger = append(ledger, r.u.appends[productID]...)
	return newestFirst(ledger), nil
}
