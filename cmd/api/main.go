package main

import (
	"context"
	"os"
	"time"

	"github.com/ChainSafe/log15"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lendpact-backend/internal/adapter/http"
	"lendpact-backend/internal/adapter/middleware"
	"lendpact-backend/internal/adapter/repository/mysql"
	"lendpact-backend/internal/config"
	domainConsent "lendpact-backend/internal/domain/consent"
	domainEvent "lendpact-backend/internal/domain/event"
	domainLoan "lendpact-backend/internal/domain/loan"
	domainPayment "lendpact-backend/internal/domain/payment"
	domainRegistry "lendpact-backend/internal/domain/registry"
	"lendpact-backend/internal/infrastructure/cache"
	"lendpact-backend/internal/infrastructure/db"
	"lendpact-backend/internal/infrastructure/monitoring"
	"lendpact-backend/internal/policy"
	"lendpact-backend/internal/proof"
	ucConsent "lendpact-backend/internal/usecase/consent"
	ucLoan "lendpact-backend/internal/usecase/loan"
	ucRegistry "lendpact-backend/internal/usecase/registry"
)

func fatal(logger log15.Logger, msg string, err error) {
	monitoring.Error(err)
	monitoring.Flush()
	logger.Crit(msg, "err", err)
	os.Exit(1)
}

func main() {
	logger := log15.New("system", "api")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fatal(logger, "invalid configuration", err)
	}

	if err := monitoring.Init(cfg.SentryDSN, cfg.AppEnv); err != nil {
		logger.Warn("sentry init failed, continuing without error reporting", "err", err)
	}
	defer monitoring.Flush()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		fatal(logger, "mysql connect failed", err)
	}
	if err := gdb.AutoMigrate(
		&domainLoan.Loan{},
		&domainConsent.Consent{},
		&domainPayment.Payment{},
		&domainEvent.Event{},
		&domainRegistry.Stats{},
	); err != nil {
		fatal(logger, "migration failed", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	paymentRepo := mysql.NewPaymentRepository(gdb)
	eventRepo := mysql.NewEventRepository(gdb)
	registryRepo := mysql.NewRegistryRepository(gdb)
	txm := mysql.NewGormUoW(gdb)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = registryRepo.Ensure(seedCtx)
	cancel()
	if err != nil {
		fatal(logger, "registry seed failed", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		fatal(logger, "redis connect failed", err)
	}

	prim, err := proof.NewEd25519Primitive(cfg.ProofAttesterPubKey)
	if err != nil {
		fatal(logger, "attester key invalid", err)
	}
	verifier := proof.NewVerifier(prim, time.Duration(cfg.ProofValidityHours)*time.Hour)
	pol := policy.Static{
		MinScore:      cfg.PolicyMinScore,
		IncomeMin:     cfg.PolicyIncomeMin,
		IncomeMax:     cfg.PolicyIncomeMax,
		Attributes:    cfg.PolicyAttributes,
		MinHistoryBps: cfg.PolicyMinHistoryBps,
	}

	loanUC := ucLoan.NewUsecase(loanRepo, paymentRepo, eventRepo, txm, verifier, pol,
		log15.New("module", "usecase.loan"))
	consentUC := ucConsent.NewUsecase(txm, time.Duration(cfg.ConsentWindowHours)*time.Hour,
		log15.New("module", "usecase.consent"))
	registryUC := ucRegistry.NewUsecase(registryRepo, loanRepo)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	consentH := httpadp.NewConsentHandler(consentUC)
	registryH := httpadp.NewRegistryHandler(registryUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/loans", loanH.CreateLoan)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.POST("/loans/:loan_id/fund", loanH.FundLoan)
	e.POST("/loans/:loan_id/payments", loanH.MakePayment)
	e.GET("/loans/:loan_id/payments", loanH.ListPayments)
	e.GET("/loans/:loan_id/events", loanH.ListEvents)
	e.POST("/loans/:loan_id/default", loanH.MarkDefault)
	e.POST("/loans/:loan_id/dispute", loanH.Dispute)

	e.POST("/loans/:loan_id/resolution/request", consentH.RequestResolution)
	e.POST("/loans/:loan_id/resolution/consent", consentH.GiveResolutionConsent)
	e.POST("/loans/:loan_id/termination/request", consentH.RequestTermination)
	e.POST("/loans/:loan_id/termination/consent", consentH.GiveTerminationConsent)
	e.POST("/loans/:loan_id/consent/withdraw", consentH.WithdrawConsent)
	e.POST("/loans/:loan_id/consent/expire", consentH.CheckExpiration)

	e.GET("/registry/stats", registryH.Stats)
	e.GET("/registry/loans", registryH.CommunityLoans)

	addr := ":" + cfg.AppPort
	logger.Info("listening", "addr", addr, "env", cfg.AppEnv)
	monitoring.Message("lendpact api started")
	if err := e.Start(addr); err != nil {
		fatal(logger, "server stopped", err)
	}
}
