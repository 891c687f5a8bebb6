package app

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"finance-app-go/internal/config"
	"finance-app-go/internal/db"
	assetsdomain "finance-app-go/internal/domain/assets"
	chatdomain "finance-app-go/internal/domain/chat"
	expensesdomain "finance-app-go/internal/domain/expenses"
	familydomain "finance-app-go/internal/domain/family"
	portfoliodomain "finance-app-go/internal/domain/portfolio"
	userdomain "finance-app-go/internal/domain/user"
	"finance-app-go/internal/llm"
	"finance-app-go/internal/marketdata"
	assetsrepo "finance-app-go/internal/repository/assets"
	chatrepo "finance-app-go/internal/repository/chat"
	expensesrepo "finance-app-go/internal/repository/expenses"
	familyrepo "finance-app-go/internal/repository/family"
	userrepo "finance-app-go/internal/repository/user"
	"finance-app-go/internal/transport/httpserver"
	"finance-app-go/internal/transport/httpserver/handler"
	"finance-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	refresher  *portfoliodomain.Refresher
	log        logger.Logger
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	assetsRepo := assetsrepo.NewPostgres(dbConn)
	assetsService := assetsdomain.NewService(assetsRepo)

	expensesRepo := expensesrepo.NewPostgres(dbConn)
	expensesService := expensesdomain.NewService(expensesRepo)

	familyRepo := familyrepo.NewPostgres(dbConn)
	familyService := familydomain.NewService(familyRepo)

	userRepo := userrepo.NewPostgres(dbConn)
	userService := userdomain.NewService(userRepo)

	completer, err := llm.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	chatRepo := chatrepo.NewPostgres(dbConn)
	chatService := chatdomain.NewService(chatRepo, completer)

	quoteCache := portfoliodomain.NewQuoteCache()
	portfolioService := portfoliodomain.NewService(assetsRepo, quoteCache)

	quotesClient := marketdata.NewClient(cfg.Market.BaseURL, cfg.Market.APIKey, cfg.Market.RequestTimeout)
	refresher := portfoliodomain.NewRefresher(assetsRepo, quotesClient, quoteCache, cfg.Market.RefreshInterval, log)
	if cfg.Market.APIKey != "" {
		if err := refresher.Start(); err != nil {
			return nil, err
		}
	} else {
		log.Warn("app: market data api key not set, price refresh disabled")
		refresher = nil
	}

	authProxy := handler.NewAuthProxy(cfg.Supabase, log)
	handlers := handler.New(assetsService, expensesService, familyService, chatService, portfolioService, authProxy, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, userService, log)
	srv := httpserver.New(cfg.HTTPPort, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		refresher:  refresher,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.refresher != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.refresher.Stop(stopCtx); err != nil {
			a.log.Error("app: refresher stop failed", "err", err)
		}
	}

	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
