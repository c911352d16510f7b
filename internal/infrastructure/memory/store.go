// Package memory implementa los repositorios y el TxRunner en memoria del proceso.
// Se usa con STORE_DRIVER=memory (desarrollo, demos) y como doble en los tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/gestion-api/internal/application/ports"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// Store guarda todas las entidades. Las escrituras se serializan con txMu (equivale al
// bloqueo de filas en PostgreSQL); Run trabaja sobre una copia y la publica solo si fn
// termina sin error.
type Store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Repos devuelve repositorios fuera de transacción.
func (s *Store) Repos() ports.Repos {
	return reposFor(&view{store: s})
}

// Run ejecuta fn con repositorios atados a una copia del estado.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	if err := fn(reposFor(&view{store: s, tx: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

// view resuelve sobre qué estado opera un repositorio: el publicado o la copia de una tx.
type view struct {
	store *Store
	tx    *state
}

func (v *view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.state)
}

func (v *view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.txMu.Lock()
	defer v.store.txMu.Unlock()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.state)
}

func reposFor(v *view) ports.Repos {
	return ports.Repos{
		Products:      &productRepo{v: v},
		Clients:       &clientRepo{v: v},
		Fournisseurs:  &fournisseurRepo{v: v},
		Partners:      &partnerRepo{v: v},
		Factures:      &factureRepo{v: v},
		BonsLivraison: &bonLivraisonRepo{v: v},
		Bordereaux:    &bordereauRepo{v: v},
		Users:         &userRepo{v: v},
	}
}

type state struct {
	products     *table[entity.Product]
	clients      *table[entity.Client]
	fournisseurs *table[entity.Fournisseur]
	partners     *table[entity.Partner]
	factures     *table[entity.Facture]
	bons         *table[entity.BonLivraison]
	bordereaux   *table[entity.Bordereau]
	users        *table[entity.User]
}

func newState() *state {
	return &state{
		products:     newTable(func(p entity.Product) entity.Product { return p }),
		clients:      newTable(copyClient),
		fournisseurs: newTable(copyFournisseur),
		partners:     newTable(copyPartner),
		factures:     newTable(copyFacture),
		bons:         newTable(copyBonLivraison),
		bordereaux:   newTable(copyBordereau),
		users:        newTable(func(u entity.User) entity.User { return u }),
	}
}

func (s *state) clone() *state {
	return &state{
		products:     s.products.clone(),
		clients:      s.clients.clone(),
		fournisseurs: s.fournisseurs.clone(),
		partners:     s.partners.clone(),
		factures:     s.factures.clone(),
		bons:         s.bons.clone(),
		bordereaux:   s.bordereaux.clone(),
		users:        s.users.clone(),
	}
}

// table filas por ID. Guarda y entrega copias para que ningún llamador comparta slices.
type table[T any] struct {
	rows   map[string]T
	seq    map[string]int64
	next   int64
	copyFn func(T) T
}

func newTable[T any](copyFn func(T) T) *table[T] {
	return &table[T]{rows: map[string]T{}, seq: map[string]int64{}, copyFn: copyFn}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	return t.copyFn(v), true
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.seq[id]; !ok {
		t.next++
		t.seq[id] = t.next
	}
	t.rows[id] = t.copyFn(v)
}

func (t *table[T]) delete(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	delete(t.seq, id)
	return true
}

func (t *table[T]) len() int { return len(t.rows) }

// all devuelve copias de todas las filas en orden de inserción.
func (t *table[T]) all() []T {
	ids := make([]string, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return t.seq[ids[i]] < t.seq[ids[j]] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.copyFn(t.rows[id]))
	}
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		rows:   make(map[string]T, len(t.rows)),
		seq:    make(map[string]int64, len(t.seq)),
		next:   t.next,
		copyFn: t.copyFn,
	}
	for id, v := range t.rows {
		c.rows[id] = t.copyFn(v)
		c.seq[id] = t.seq[id]
	}
	return c
}

func copyClient(c entity.Client) entity.Client {
	c.Purchases = append([]entity.PurchaseLine(nil), c.Purchases...)
	return c
}

func copyFournisseur(f entity.Fournisseur) entity.Fournisseur {
	f.Deliveries = append([]entity.DeliveryLine(nil), f.Deliveries...)
	return f
}

func copyPartner(p entity.Partner) entity.Partner {
	p.Transactions = append([]entity.Transaction(nil), p.Transactions...)
	return p
}

func copyFacture(f entity.Facture) entity.Facture {
	f.Lines = append([]entity.FactureLine(nil), f.Lines...)
	return f
}

func copyBonLivraison(b entity.BonLivraison) entity.BonLivraison {
	b.Lines = append([]entity.BonLivraisonLine(nil), b.Lines...)
	return b
}

func copyBordereau(b entity.Bordereau) entity.Bordereau {
	b.Items = append([]entity.BordereauItem(nil), b.Items...)
	return b
}
