// Package stats arma el tablero: conteos, valor del stock, ventas/achats/marges del mes
// y el journal del día a partir de facturas y de los historiales embebidos.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
	"github.com/jhoicas/gestion-api/pkg/logger"
)

// Message mensaje fijo de la respuesta.
const Message = "Statistiques récupérées avec succès"

// Options configuración del agregador.
type Options struct {
	// IncludeEmbedded suma las compras de clientes y entregas de proveedores a los totales
	// mensuales además de las facturas.
	IncludeEmbedded bool
	// Clock reloj inyectable; nil usa time.Now.
	Clock func() time.Time
}

// Aggregator calcula las estadísticas en cada llamada, sin caché.
type Aggregator struct {
	repo repository.StatsRepository
	opts Options
	log  *logger.Logger
}

// NewAggregator construye el agregador.
func NewAggregator(repo repository.StatsRepository, opts Options, log *logger.Logger) *Aggregator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{repo: repo, opts: opts, log: log}
}

// Window intervalo [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Contains indica si t cae dentro del intervalo.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// MonthOf mes calendario de now en su zona horaria.
func MonthOf(now time.Time) Window {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}

// DayOf día calendario de now en su zona horaria.
func DayOf(now time.Time) Window {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{From: from, To: from.AddDate(0, 0, 1)}
}

type snapshot struct {
	products, clients, fournisseurs int64
	factures, facturesC, facturesF  int64
	stockValue                      decimal.Decimal
	catalog                         Catalog
	factureDocs                     []entity.RawDocument
	clientDocs                      []entity.RawDocument
	fournisseurDocs                 []entity.RawDocument
}

// Compute lee todas las fuentes en paralelo y arma la respuesta.
func (a *Aggregator) Compute(ctx context.Context) (*dto.StatsResponse, error) {
	now := a.opts.Clock()
	month, day := MonthOf(now), DayOf(now)

	snap, err := a.load(ctx, month)
	if err != nil {
		return nil, err
	}

	var factureItems, todayFactureItems []LineItem
	for _, doc := range snap.factureDocs {
		items, err := FactureLines(doc, snap.catalog)
		if err != nil {
			a.log.Warn().Err(err).Str("facture_id", doc.ID).Msg("stats: líneas de factura ilegibles, se omiten")
			continue
		}
		factureItems = append(factureItems, items...)
		if day.Contains(doc.CreatedAt) {
			todayFactureItems = append(todayFactureItems, items...)
		}
	}
	embedded := a.embeddedItems(snap)

	ventes, achats := decimal.Zero, decimal.Zero
	add := func(items []LineItem) {
		for _, it := range items {
			s, c := it.Contribution()
			ventes, achats = ventes.Add(s), achats.Add(c)
		}
	}
	add(factureItems)
	if a.opts.IncludeEmbedded {
		add(inWindow(embedded, month))
	}

	journalItems := todayFactureItems
	if len(journalItems) == 0 {
		journalItems = inWindow(embedded, day)
	}

	return &dto.StatsResponse{
		Message:              Message,
		TotalProduits:        snap.products,
		TotalClients:         snap.clients,
		TotalFournisseurs:    snap.fournisseurs,
		TotalFactures:        snap.factures,
		FacturesClients:      snap.facturesC,
		FacturesFournisseurs: snap.facturesF,
		ValeurProduits:       snap.stockValue,
		VentesMensuelles:     ventes,
		AchatsMensuels:       achats,
		MargesMensuelles:     ventes.Sub(achats),
		TodayJournal:         Journal(journalItems),
	}, nil
}

func (a *Aggregator) load(ctx context.Context, month Window) (*snapshot, error) {
	var s snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { s.products, err = a.repo.CountProducts(gctx); return })
	g.Go(func() (err error) { s.clients, err = a.repo.CountClients(gctx); return })
	g.Go(func() (err error) { s.fournisseurs, err = a.repo.CountFournisseurs(gctx); return })
	g.Go(func() (err error) { s.factures, err = a.repo.CountFactures(gctx, ""); return })
	g.Go(func() (err error) {
		s.facturesC, err = a.repo.CountFactures(gctx, string(entity.FactureClient))
		return
	})
	g.Go(func() (err error) {
		s.facturesF, err = a.repo.CountFactures(gctx, string(entity.FactureFournisseur))
		return
	})
	g.Go(func() (err error) { s.stockValue, err = a.repo.StockValue(gctx); return })
	g.Go(func() error {
		catalog, err := a.repo.ProductCatalog(gctx)
		s.catalog = catalog
		return err
	})
	g.Go(func() (err error) { s.factureDocs, err = a.repo.FactureDocuments(gctx, month.From, month.To); return })
	g.Go(func() (err error) { s.clientDocs, err = a.repo.ClientDocuments(gctx); return })
	g.Go(func() (err error) { s.fournisseurDocs, err = a.repo.FournisseurDocuments(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *Aggregator) embeddedItems(s *snapshot) []LineItem {
	var out []LineItem
	for _, doc := range s.clientDocs {
		items, err := ClientLines(doc, s.catalog)
		if err != nil {
			a.log.Warn().Err(err).Str("client_id", doc.ID).Msg("stats: compras ilegibles, se omiten")
			continue
		}
		out = append(out, items...)
	}
	for _, doc := range s.fournisseurDocs {
		items, err := FournisseurLines(doc, s.catalog)
		if err != nil {
			a.log.Warn().Err(err).Str("fournisseur_id", doc.ID).Msg("stats: entregas ilegibles, se omiten")
			continue
		}
		out = append(out, items...)
	}
	return out
}

func inWindow(items []LineItem, w Window) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if w.Contains(it.Date) {
			out = append(out, it)
		}
	}
	return out
}

// Journal filas canónicas ordenadas de la más reciente a la más antigua.
func Journal(items []LineItem) []dto.JournalRow {
	rows := make([]dto.JournalRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, dto.JournalRow{
			ID:           it.DocumentID,
			Date:         it.Date,
			Type:         it.Type,
			Partner:      it.Partner,
			Product:      it.productLabel(),
			Quantite:     it.Quantity,
			PrixUnitaire: unitFor(it),
			PrixAchat:    it.CostPrice,
			MontantTotal: it.Total,
			MontantPaye:  it.Paid,
			Reste:        it.Remaining,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows
}

func (l LineItem) productLabel() string {
	if l.ProductName != "" {
		return l.ProductName
	}
	return l.ProductID
}
