package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ricardofontes/goalvault/internal/auth"
	authHandler "github.com/ricardofontes/goalvault/internal/http/auth"
	"github.com/ricardofontes/goalvault/internal/http/faucet"
	"github.com/ricardofontes/goalvault/internal/http/goal"
	"github.com/ricardofontes/goalvault/internal/http/ledger"
	"github.com/ricardofontes/goalvault/internal/http/vault"
	"github.com/ricardofontes/goalvault/internal/http/yield"
)

func New(
	authSvc *auth.Service,
	authV1 *authHandler.Handler,
	goalsV1 *goal.Handler,
	vaultsV1 *vault.Handler,
	yieldV1 *yield.Handler,
	faucetV1 *faucet.Handler,
	balancesV1 *ledger.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			r.Route("/goals", func(r chi.Router) {
				goalsV1.Routes(r)
			})

			r.Route("/vaults", func(r chi.Router) {
				vaultsV1.Routes(r)
			})

			r.Route("/yield", func(r chi.Router) {
				yieldV1.Routes(r)
			})

			r.Route("/faucet", faucetV1.Routes)

			r.Route("/balances", balancesV1.Routes)
		})
	})

	return router
}
