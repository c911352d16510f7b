// @title           Gestion API
// @version         1.0
// @description     Productos, clientes, fournisseurs, partenaires, documentos y estadísticas.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/gestion-api/docs"
	"github.com/jhoicas/gestion-api/internal/application/auth"
	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/application/inventory"
	"github.com/jhoicas/gestion-api/internal/application/partner"
	"github.com/jhoicas/gestion-api/internal/application/ports"
	"github.com/jhoicas/gestion-api/internal/application/stats"
	"github.com/jhoicas/gestion-api/internal/application/usecase"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
	"github.com/jhoicas/gestion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/gestion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-api/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/gestion-api/internal/interfaces/http"
	"github.com/jhoicas/gestion-api/pkg/config"
	"github.com/jhoicas/gestion-api/pkg/logger"
)

const devJWTSecret = "dev-secret-change-me"

// storage repositorios, TxRunner y lectura de estadísticas del driver elegido.
type storage struct {
	repos    ports.Repos
	txRunner ports.TxRunner
	stats    repository.StatsRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	// Montos como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío, usando secreto de desarrollo")
		cfg.JWT.Secret = devJWTSecret
	}

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	stock := inventory.NewStockService()
	invoices := billing.NewBuilder(st.repos.Products).
		WithRenderer(billing.FormatPDF, infrapdf.NewInvoiceRenderer(cfg.Invoice)).
		WithRenderer(billing.FormatXML, xmldoc.NewInvoiceRenderer(cfg.Invoice))

	authUC := auth.NewAuthUseCase(st.repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	aggregator := stats.NewAggregator(st.stats, stats.Options{IncludeEmbedded: cfg.Stats.IncludeEmbedded}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestion API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      usecase.NewProductUseCase(st.repos.Products),
		ClientUC:       usecase.NewClientUseCase(st.repos, st.txRunner, stock, invoices),
		FournisseurUC:  usecase.NewFournisseurUseCase(st.repos, st.txRunner, stock),
		PartnerUC:      partner.NewUseCase(st.repos, st.txRunner, stock, invoices),
		FactureUC:      usecase.NewFactureUseCase(st.repos, st.txRunner),
		BonLivraisonUC: usecase.NewBonLivraisonUseCase(st.repos, st.txRunner, stock),
		BordereauUC:    usecase.NewBordereauUseCase(st.repos.Bordereaux),
		UserUC:         usecase.NewUserUseCase(st.repos.Users),
		Stats:          aggregator,
		JWTSecret:      cfg.JWT.Secret,
		ServiceName:    cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		return &storage{
			repos:    store.Repos(),
			txRunner: store,
			stats:    memory.NewStatsRepository(store),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("migrations", applied).Msg("esquema aplicado")
	}
	return &storage{
		repos:    postgres.NewRepos(pool),
		txRunner: postgres.NewTxRunner(pool),
		stats:    postgres.NewStatsRepository(pool),
		close:    pool.Close,
	}, nil
}
