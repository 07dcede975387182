package main

import (
	"context"
	"log/slog"
	"os"

	"roster/config"
	"roster/internal/delivery"
	"roster/internal/delivery/http"
	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/router/handler"
	"roster/internal/domain/entity"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/errors"
	"roster/internal/infra/auth"
	logs "roster/internal/infra/log"
	"roster/internal/infra/persistence/postgres"
	"roster/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			ensureBootstrapAdmin,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewMemberRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewMemberService,
			impl.NewSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewMemberHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

type bootstrapAdminParams struct {
	fx.In

	Config    *config.Config
	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// ensureBootstrapAdmin seeds the configured administrator account once.
// It is idempotent: an existing account with the same email is left alone.
func ensureBootstrapAdmin(ctx context.Context, params bootstrapAdminParams) error {
	cfg := params.Config.BootstrapAdmin
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	return params.TxManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		memberRepo := repos.MemberRepo()

		if _, err := memberRepo.FindByEmail(ctx, cfg.Email); err == nil {
			return nil
		} else if !errors.Is(err, repository.ErrMemberNotFound) {
			return errors.Wrap(err, "failed to check for bootstrap admin")
		}

		hash, err := params.Hasher.Hash(cfg.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash bootstrap admin password")
		}

		name := cfg.Name
		if name == "" {
			name = "Administrator"
		}

		admin := &entity.Member{
			Email:        cfg.Email,
			PasswordHash: hash,
			Name:         name,
			Role:         entity.RoleAdmin,
		}
		if err := memberRepo.Create(ctx, admin); err != nil {
			return errors.Wrap(err, "failed to create bootstrap admin")
		}

		params.Logger.Info("Seeded bootstrap admin", slog.String("email", cfg.Email))

		return nil
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
