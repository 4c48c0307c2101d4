package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ricardofontes/goalvault/internal/auth"
	"github.com/ricardofontes/goalvault/internal/config"
	"github.com/ricardofontes/goalvault/internal/database"
	"github.com/ricardofontes/goalvault/internal/faucet"
	"github.com/ricardofontes/goalvault/internal/goal"
	goalStore "github.com/ricardofontes/goalvault/internal/goal/store"
	goalvaultHttp "github.com/ricardofontes/goalvault/internal/http"
	authHandler "github.com/ricardofontes/goalvault/internal/http/auth"
	faucetHandler "github.com/ricardofontes/goalvault/internal/http/faucet"
	goalHandler "github.com/ricardofontes/goalvault/internal/http/goal"
	ledgerHandler "github.com/ricardofontes/goalvault/internal/http/ledger"
	vaultHandler "github.com/ricardofontes/goalvault/internal/http/vault"
	yieldHandler "github.com/ricardofontes/goalvault/internal/http/yield"
	"github.com/ricardofontes/goalvault/internal/ledger"
	ledgerStore "github.com/ricardofontes/goalvault/internal/ledger/store"
	"github.com/ricardofontes/goalvault/internal/reserve"
	"github.com/ricardofontes/goalvault/internal/vault"
	vaultStore "github.com/ricardofontes/goalvault/internal/vault/store"
	"github.com/ricardofontes/goalvault/internal/yield"
	yieldStore "github.com/ricardofontes/goalvault/internal/yield/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	adminID, err := uuid.Parse(cfg.Auth.AdminID)
	if err != nil {
		slog.Error("invalid admin id", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		rail     = ledger.NewService(ledgerStore.New(db))
		authSvc  = auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		yieldSvc = yield.NewService(yieldStore.New(db), rail, adminID)

		goalSvc = goal.NewService(goal.Config{
			Repository:  goalStore.New(db),
			Router:      yieldSvc,
			Ledger:      rail,
			AdminID:     adminID,
			MinDuration: cfg.Goals.MinDuration,
		})

		faucetSvc = faucet.NewService(rail, faucet.Config{
			DripAmount: cfg.Faucet.DripAmount,
			Interval:   cfg.Faucet.Interval,
			Burst:      cfg.Faucet.Burst,
		})

		registry = vault.NewRegistry()
	)

	for _, entry := range cfg.Vaults {
		currency, mode, rateBps, err := parseVaultEntry(entry)
		if err != nil {
			slog.Error("invalid vault entry", "entry", entry, "error", err)
			os.Exit(1)
		}

		vaultID := strings.ToLower(currency) + "-" + mode
		vaultAccount := ledger.VaultAccount(vaultID)

		sim := reserve.NewSimulated(rail, reserve.SimulatedConfig{
			Account:  ledger.ReserveAccount(vaultID),
			Currency: currency,
			RateBps:  rateBps,
			Accrual:  reserve.AccrualLinear,
		})

		vaultSvc := vault.NewService(vault.Config{
			ID:         vaultID,
			Currency:   currency,
			Mode:       mode,
			Account:    vaultAccount,
			Repository: vaultStore.New(db, vaultID),
			Reserve:    sim.Handle(vaultID, vaultAccount),
			Ledger:     rail,
			AdminID:    adminID,
		})

		registry.Register(currency, mode, vaultSvc)

		if err := goalSvc.ConfigureVault(ctx, adminID, currency, goal.Mode(mode), vaultID, vaultSvc); err != nil {
			slog.Error("failed to configure vault", "vault", vaultID, "error", err)
			os.Exit(1)
		}

		if err := yieldSvc.SetTokenWhitelist(ctx, adminID, currency, true); err != nil {
			slog.Error("failed to whitelist currency", "currency", currency, "error", err)
			os.Exit(1)
		}

		slog.Info("vault online", "vault", vaultID, "rate_bps", rateBps)
	}

	var (
		authH    = authHandler.NewHandler(authSvc, adminID)
		goalH    = goalHandler.NewHandler(goalSvc)
		vaultH   = vaultHandler.NewHandler(registry)
		yieldH   = yieldHandler.NewHandler(yieldSvc)
		faucetH  = faucetHandler.NewHandler(faucetSvc)
		balanceH = ledgerHandler.NewHandler(rail)
	)

	router := goalvaultHttp.New(authSvc, authH, goalH, vaultH, yieldH, faucetH, balanceH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// parseVaultEntry parses one "CURRENCY/mode/reserveAPRbps" entry.
func parseVaultEntry(entry string) (currency, mode string, rateBps int64, err error) {
	parts := strings.Split(entry, "/")
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("want CURRENCY/mode/bps, got %q", entry)
	}

	rateBps, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("bad rate in %q: %w", entry, err)
	}

	return strings.ToUpper(parts[0]), parts[1], rateBps, nil
}
