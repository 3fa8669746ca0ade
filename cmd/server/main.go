package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpadapter "caredesk/internal/adapters/http"
	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/request"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/adapters/memory"
	"caredesk/internal/adapters/postgres"
	redisadapter "caredesk/internal/adapters/redis"
	"caredesk/internal/adapters/ws/userws"
	"caredesk/internal/adapters/ws/userws/subscribers"
	"caredesk/internal/application/account"
	"caredesk/internal/application/assignment"
	"caredesk/internal/application/auth"
	"caredesk/internal/application/doctor"
	"caredesk/internal/application/patient"
	"caredesk/internal/config"
	"caredesk/internal/core/token"
	"caredesk/internal/domain"
	"caredesk/internal/event"
	"caredesk/internal/logger"
	"caredesk/internal/validator"
	"caredesk/internal/workers"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		panic("FATAL: JWT_SECRET is mandatory for Server!")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		return
	}

	log.Info("server stopped")
}

type stores struct {
	tx          domain.Transactor
	pinger      domain.Pinger
	users       domain.UserRepository
	patients    domain.PatientRepository
	doctors     domain.DoctorRepository
	assignments domain.AssignmentRepository
	close       func()
}

func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("store: using in-memory store, data is lost on restart")

		s := memory.NewStore()
		return &stores{
			tx:          s,
			pinger:      s,
			users:       memory.NewUserRepository(s),
			patients:    memory.NewPatientRepository(s),
			doctors:     memory.NewDoctorRepository(s),
			assignments: memory.NewAssignmentRepository(s),
			close:       func() {},
		}, nil

	case config.StoreDriverPostgres:
		if cfg.AutoMigrate {
			if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
				return nil, err
			}
			log.Info("store: migrations applied")
		}

		pool, err := postgres.InitDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, log)
		if err != nil {
			return nil, err
		}

		tx := postgres.NewTransactor(pool)
		return &stores{
			tx:          tx,
			pinger:      tx,
			users:       postgres.NewUserRepository(pool),
			patients:    postgres.NewPatientRepository(pool),
			doctors:     postgres.NewDoctorRepository(pool),
			assignments: postgres.NewAssignmentRepository(pool),
			close:       pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	var (
		revocations domain.RevocationStore
		audit       subscribers.AuditLog
		housekeep   = &workers.ManagerServices{AuditRetention: cfg.AuditRetention}
	)

	if cfg.RedisURL != "" {
		rdb, err := redisadapter.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		auditLog := redisadapter.NewAuditLog(rdb)
		revocations = redisadapter.NewRevocationStore(rdb)
		audit = auditLog
		housekeep.Audit = auditLog
		log.Info("redis: connected, token revocation and audit stream enabled")
	} else {
		local := memory.NewRevocationStore()
		revocations = local
		housekeep.Revocations = local
	}

	bus := event.New(log)
	v := validator.New()

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiry,
		token.WithIssuer(cfg.JWTIssuer),
		token.WithLeeway(cfg.JWTLeeway),
	)

	authService := auth.NewService(st.users, tokens, revocations, v, log)
	accountService := account.NewService(st.users, bus, log)
	patientService := patient.NewService(st.tx, st.patients, v, bus)
	doctorService := doctor.NewService(st.tx, st.doctors, v)
	assignmentService := assignment.NewService(st.tx, st.patients, st.doctors, st.assignments, v, bus,
		assignment.WithHideForeign(cfg.AssignmentHideForeign),
	)

	decoder := request.NewJSONDecoder()
	writer := response.NewJSONWriter(log)
	authenticator := middleware.NewAuthenticator(tokens, revocations)

	g, gctx := errgroup.WithContext(ctx)

	hub := userws.NewHub(gctx, log)
	subscribers.Register(bus, hub, audit, log)

	router := httpadapter.NewRouter(cfg, &httpadapter.RouterDeps{
		Auth:       httpadapter.NewAuthHandler(authService, log, decoder, writer),
		Account:    httpadapter.NewAccountHandler(accountService, authService, log, writer),
		Patient:    httpadapter.NewPatientHandler(patientService, log, decoder, writer),
		Doctor:     httpadapter.NewDoctorHandler(doctorService, log, decoder, writer),
		Assignment: httpadapter.NewAssignmentHandler(assignmentService, log, decoder, writer),
		Health:     httpadapter.NewHealthHandler(st.pinger, log, writer),
		Ws:         http.HandlerFunc(userws.NewHandler(hub, authenticator, writer, log, cfg.AllowedOrigins).Serve),

		Authenticator: authenticator,
		Writer:        writer,
		Log:           log,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	manager := workers.NewManager(log, workers.NewScheduler(cfg.TimeZone, log), housekeep)
	manager.Start(gctx)

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		manager.Wait()
		return nil
	})

	g.Go(func() error {
		log.Info("http: starting server", "address", cfg.Address, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http: server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
