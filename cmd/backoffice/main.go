package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/storekit/backoffice/auth"
	"github.com/storekit/backoffice/member"
	"github.com/storekit/backoffice/middleware/guard"
	"github.com/storekit/backoffice/product"
	"github.com/storekit/backoffice/response"
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	Address         string `json:"address"`
	DSN             string `json:"dsn"`
	SigningKey      string `json:"-"`
	TokenExpiration int    `json:"token_expiration"`
	Issuer          string `json:"issuer"`
	AuthScheme      string `json:"auth_scheme"`
	ContextKey      string `json:"context_key"`
}

func (c Config) GetSigningKey() string   { return c.SigningKey }
func (c Config) GetTokenExpiration() int { return c.TokenExpiration }
func (c Config) GetIssuer() string       { return c.Issuer }
func (c Config) GetAuthScheme() string   { return c.AuthScheme }
func (c Config) GetContextKey() string   { return c.ContextKey }

var _ auth.Config = (*Config)(nil)

func loadConfig() Config {
	return Config{
		Address:         envOr("BACKOFFICE_ADDRESS", ":8080"),
		DSN:             envOr("BACKOFFICE_DSN", "file::memory:?cache=shared"),
		SigningKey:      envOr("BACKOFFICE_SIGNING_KEY", ""),
		TokenExpiration: envIntOr("BACKOFFICE_TOKEN_EXPIRATION", 72),
		Issuer:          envOr("BACKOFFICE_ISSUER", "backoffice"),
		AuthScheme:      envOr("BACKOFFICE_AUTH_SCHEME", "Bearer"),
		ContextKey:      envOr("BACKOFFICE_CONTEXT_KEY", "principal"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	cfg := loadConfig()
	if cfg.SigningKey == "" {
		log.Fatal("BACKOFFICE_SIGNING_KEY is required")
	}

	fmt.Println("============")
	fmt.Println(print.MaybeHighlightJSON(cfg))
	fmt.Println("============")

	ctx := context.Background()

	db, err := openDB(ctx, cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	members := member.NewMembersRepository(db)
	provider := member.NewProvider(members)

	auther := auth.NewAuthenticator(provider, cfg)

	memberService := member.NewService(members)
	memberCtrl := member.NewController(memberService, auther, int64(cfg.TokenExpiration)*3600)

	catalogStore := product.NewStore(db)
	catalogService := product.NewService(catalogStore)
	catalogCtrl := product.NewController(catalogService)
	adminCtrl := product.NewAdminController(catalogService)

	policy := auth.NewPolicy(
		auth.RequireAuthenticated("/product"),
		auth.RequireCapability("/admin",
			member.CapabilityAdmin,
			member.CapabilityFranchiseOwner,
		),
	)

	app := fiber.New(fiber.Config{
		AppName: "backoffice",
	})

	app.Use(guard.New(guard.Config{
		Verifier:   auther.TokenService(),
		Policy:     policy,
		ContextKey: cfg.ContextKey,
		AuthScheme: cfg.AuthScheme,
	}))

	memberCtrl.RegisterRoutes(app)
	catalogCtrl.RegisterRoutes(app)
	adminCtrl.RegisterRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return response.Fail(c, fiber.StatusNotFound, "resource not found")
	})

	go func() {
		if err := app.Listen(cfg.Address); err != nil {
			log.Fatal(err)
		}
	}()

	WaitExitSignal()

	if err := app.Shutdown(); err != nil {
		log.Println("shutdown error:", err)
	}
}

func openDB(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	models := []any{
		(*member.Member)(nil),
		(*product.Product)(nil),
		(*product.Option)(nil),
		(*product.SelectOption)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
