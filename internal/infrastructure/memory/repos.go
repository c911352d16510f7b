package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*productRepo)(nil)
	_ repository.ClientRepository       = (*clientRepo)(nil)
	_ repository.FournisseurRepository  = (*fournisseurRepo)(nil)
	_ repository.PartnerRepository      = (*partnerRepo)(nil)
	_ repository.FactureRepository      = (*factureRepo)(nil)
	_ repository.BonLivraisonRepository = (*bonLivraisonRepo)(nil)
	_ repository.BordereauRepository    = (*bordereauRepo)(nil)
	_ repository.UserRepository         = (*userRepo)(nil)
)

// newestFirst ordena por fecha de creación descendente; a igual fecha, el último insertado primero.
func newestFirst[T any](rows []T, createdAt func(*T) time.Time) []*T {
	out := make([]*T, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, &rows[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return createdAt(out[i]).After(createdAt(out[j]))
	})
	return out
}

// ── Products ─────────────────────────────────────────────────────────────────

type productRepo struct{ v *view }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if st.products.has(p.ID) {
			return domain.ErrDuplicate
		}
		st.products.put(p.ID, *p)
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products.get(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el bloqueo ya lo da la serialización de transacciones.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if !st.products.has(p.ID) {
			return domain.ErrNotFound
		}
		st.products.put(p.ID, *p)
		return nil
	})
}

func (r *productRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	return r.v.write(func(st *state) error {
		p, ok := st.products.get(id)
		if !ok {
			return domain.ErrNotFound
		}
		p.Quantity = quantity
		p.UpdatedAt = time.Now()
		st.products.put(id, p)
		return nil
	})
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(st *state) error {
		out = newestFirst(st.products.all(), func(p *entity.Product) time.Time { return p.CreatedAt })
		return nil
	})
	return out, err
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.products.delete(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ── Clients ──────────────────────────────────────────────────────────────────

type clientRepo struct{ v *view }

func emailTaken(st *state, email, exceptID string) bool {
	for _, c := range st.clients.all() {
		if c.ID != exceptID && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.v.write(func(st *state) error {
		if st.clients.has(c.ID) || emailTaken(st, c.Email, "") {
			return domain.ErrDuplicate
		}
		st.clients.put(c.ID, *c)
		return nil
	})
}

func (r *clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.v.read(func(st *state) error {
		if c, ok := st.clients.get(id); ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *clientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Client, error) {
	return r.GetByID(ctx, id)
}

func (r *clientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	var out *entity.Client
	err := r.v.read(func(st *state) error {
		for _, c := range st.clients.all() {
			if strings.EqualFold(c.Email, email) {
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *clientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.v.write(func(st *state) error {
		if !st.clients.has(c.ID) {
			return domain.ErrNotFound
		}
		if emailTaken(st, c.Email, c.ID) {
			return domain.ErrDuplicate
		}
		st.clients.put(c.ID, *c)
		return nil
	})
}

func (r *clientRepo) List(_ context.Context) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.v.read(func(st *state) error {
		out = newestFirst(st.clients.all(), func(c *entity.Client) time.Time { return c.CreatedAt })
		return nil
	})
	return out, err
}

func (r *clientRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.clients.delete(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ── Fournisseurs ─────────────────────────────────────────────────────────────

type fournisseurRepo struct{ v *view }

func (r *fournisseurRepo) Create(_ context.Context, f *entity.Fournisseur) error {
	return r.v.write(func(st *state) error {
		if st.fournisseurs.has(f.ID) {
			return domain.ErrDuplicate
		}
		st.fournisseurs.put(f.ID, *f)
		return nil
	})
}

func (r *fournisseurRepo) GetByID(_ context.Context, id string) (*entity.Fournisseur, error) {
	var out *entity.Fournisseur
	err := r.v.read(func(st *state) error {
		if f, ok := st.fournisseurs.get(id); ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *fournisseurRepo) GetForUpdate(ctx context.Context, id string) (*entity.Fournisseur, error) {
	return r.GetByID(ctx, id)
}

func (r *fournisseurRepo) Update(_ context.Context, f *entity.Fournisseur) error {
	return r.v.write(func(st *state) error {
		if !st.fournisseurs.has(f.ID) {
			return domain.ErrNotFound
		}
		st.fournisseurs.put(f.ID, *f)
		return nil
	})
}

func (r *fournisseurRepo) List(_ context.Context) ([]*entity.Fournisseur, error) {
	var out []*entity.Fournisseur
	err := r.v.read(func(st *state) error {
		out = newestFirst(st.fournisseurs.all(), func(f *entity.Fournisseur) time.Time { return f.CreatedAt })
		return nil
	})
	return out, err
}

func (r *fournisseurRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.fournisseurs.delete(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ── Partners ─────────────────────────────────────────────────────────────────

type partnerRepo struct{ v *view }

func (r *partnerRepo) Create(_ context.Context, p *entity.Partner) error {
	return r.v.write(func(st *state) error {
		if st.partners.has(p.ID) {
			return domain.ErrDuplicate
		}
		st.partners.put(p.ID, *p)
		return nil
	})
}

func (r *partnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	var out *entity.Partner
	err := r.v.read(func(st *state) error {
		if p, ok := st.partners.get(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *partnerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Partner, error) {
	return r.GetByID(ctx, id)
}

func (r *partnerRepo) Update(_ context.Context, p *entity.Partner) error {
	return r.v.write(func(st *state) error {
		if !st.partners.has(p.ID) {
			return domain.ErrNotFound
		}
		st.partners.put(p.ID, *p)
		return nil
	})
}

func (r *partnerRepo) List(_ context.Context) ([]*entity.Partner, error) {
	var out []*entity.Partner
	err := r.v.read(func(st *state) error {
		out = newestFirst(st.partners.all(), func(p *entity.Partner) time.Time { return p.CreatedAt })
		return nil
	})
	return out, err
}

func (r *partnerRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.partners.delete(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ── Factures ─────────────────────────────────────────────────────────────────

type factureRepo struct{ v *view }

func (r *factureRepo) Create(_ context.Context, f *entity.Facture) error {
	return r.v.write(func(st *state) error {
		if st.factures.has(f.ID) {
			return domain.ErrDuplicate
		}
		st.factures.put(f.ID, *f)
		return nil
	})
}

func (r *factureRepo) GetByID(_ context.Context, id string) (*entity.Facture, error) {
	var out *entity.Facture
	err := r.v.read(func(st *state) error {
		if f, ok := st.factures.get(id); ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *factureRepo) GetForUpdate(ctx context.Context, id string) (*entity.Facture, error) {
	return r.GetByID(ctx, id)
}

func (r *factureRepo) Update(_ context.Context, f *entity.Facture) error {
	return r.v.write(func(st *state) error {
		if !st.factures.has(f.ID) {
			return domain.ErrNotFound
		}
		st.factures.put(f.ID, *f)
		return nil
	})
}

func (r *factureRepo) List(_ context.Context, filter repository.FactureFilter) ([]*entity.Facture, error) {
	var out []*entity.Facture
	err := r.v.read(func(st *state) error {
		all := newestFirst(st.factures.all(), func(f *entity.Facture) time.Time { return f.CreatedAt })
		out = make([]*entity.Facture, 0, len(all))
		for _, f := range all {
			if filter.Type != "" && f.Type != filter.Type {
				continue
			}
			if filter.CounterpartyID != "" && f.CounterpartyID() != filter.CounterpartyID {
				continue
			}
			out = append(out, f)
		}
		return nil
	})
	return out, err
}

// ── Bons de livraison ────────────────────────────────────────────────────────

type bonLivraisonRepo struct{ v *view }

func (r *bonLivraisonRepo) Create(_ context.Context, b *entity.BonLivraison) error {
	return r.v.write(func(st *state) error {
		if st.bons.has(b.ID) {
			return domain.ErrDuplicate
		}
		for _, other := range st.bons.all() {
			if other.Number == b.Number {
				return domain.ErrDuplicate
			}
		}
		st.bons.put(b.ID, *b)
		return nil
	})
}

func (r *bonLivraisonRepo) GetByID(_ context.Context, id string) (*entity.BonLivraison, error) {
	var out *entity.BonLivraison
	err := r.v.read(func(st *state) error {
		if b, ok := st.bons.get(id); ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *bonLivraisonRepo) List(_ context.Context) ([]*entity.BonLivraison, error) {
	var out []*entity.BonLivraison
	err := r.v.read(func(st *state) error {
		out = newestFirst(st.bons.all(), func(b *entity.BonLivraison) time.Time { return b.CreatedAt })
		return nil
	})
	return out, err
}

// ── Bordereaux ───────────────────────────────────────────────────────────────

type bordereauRepo struct{ v *view }

func (r *bordereauRepo) Create(_ context.Context, b *entity.Bordereau) error {
	return r.v.write(func(st *state) error {
		if st.bordereaux.has(b.ID) {
			return domain.ErrDuplicate
		}
		st.bordereaux.put(b.ID, *b)
		return nil
	})
}

func (r *bordereauRepo) GetByID(_ context.Context, id string) (*entity.Bordereau, error) {
	var out *entity.Bordereau
	err := r.v.read(func(st *state) error {
		if b, ok := st.bordereaux.get(id); ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *bordereauRepo) Update(_ context.Context, b *entity.Bordereau) error {
	return r.v.write(func(st *state) error {
		if !st.bordereaux.has(b.ID) {
			return domain.ErrNotFound
		}
		st.bordereaux.put(b.ID, *b)
		return nil
	})
}

func (r *bordereauRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.bordereaux.delete(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *bordereauRepo) List(_ context.Context, filter repository.BordereauFilter) ([]*entity.Bordereau, int, error) {
	var (
		page  []*entity.Bordereau
		total int
	)
	err := r.v.read(func(st *state) error {
		q := strings.ToLower(strings.TrimSpace(filter.Query))
		all := newestFirst(st.bordereaux.all(), func(b *entity.Bordereau) time.Time { return b.CreatedAt })
		matched := make([]*entity.Bordereau, 0, len(all))
		for _, b := range all {
			if q == "" ||
				strings.Contains(strings.ToLower(b.Partner.Name), q) ||
				strings.Contains(strings.ToLower(b.Company.Name), q) ||
				strings.Contains(strings.ToLower(b.Delivery.Number), q) {
				matched = append(matched, b)
			}
		}
		total = len(matched)
		start := min(max(filter.Offset, 0), total)
		end := total
		if filter.Limit > 0 {
			end = min(start+filter.Limit, total)
		}
		page = matched[start:end]
		return nil
	})
	return page, total, err
}

// ── Users ────────────────────────────────────────────────────────────────────

type userRepo struct{ v *view }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		if st.users.has(u.ID) {
			return domain.ErrDuplicate
		}
		for _, other := range st.users.all() {
			if strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users.put(u.ID, *u)
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		if u, ok := st.users.get(id); ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users.all() {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		if !st.users.has(u.ID) {
			return domain.ErrNotFound
		}
		for _, other := range st.users.all() {
			if other.ID != u.ID && strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users.put(u.ID, *u)
		return nil
	})
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.users.delete(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *userRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.v.read(func(st *state) error {
		all := newestFirst(st.users.all(), func(u *entity.User) time.Time { return u.CreatedAt })
		out = make([]*entity.User, 0, len(all))
		for _, u := range all {
			if role == "" || u.Role == role {
				out = append(out, u)
			}
		}
		return nil
	})
	return out, err
}
