package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skillforge/coursepay/internal/http/auth"
	"github.com/skillforge/coursepay/internal/http/checkout"
	"github.com/skillforge/coursepay/internal/http/coupon"
	"github.com/skillforge/coursepay/internal/http/payment"
	"github.com/skillforge/coursepay/internal/http/refund"
	"github.com/skillforge/coursepay/internal/http/webhook"
)

func New(
	jwtSecret []byte,
	checkoutV1 *checkout.Handler,
	webhookV1 *webhook.Handler,
	refundV1 *refund.Handler,
	paymentsV1 *payment.Handler,
	couponsV1 *coupon.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authenticated := auth.Middleware(jwtSecret)

	router.Route("/api/v1", func(r chi.Router) {
		// The webhook stays outside the JWT middleware: the gateway
		// authenticates with its signature, not a bearer token. Content
		// type is not enforced so the raw body reaches the verifier as-is.
		r.Route("/webhook", webhookV1.Routes)

		r.Route("/checkout", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.AllowContentType("application/json"))
			checkoutV1.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(authenticated)
			paymentsV1.Routes(r)
		})

		r.Route("/refunds", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(auth.RequireAdmin)
			r.Use(middleware.AllowContentType("application/json"))
			refundV1.Routes(r)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(auth.RequireAdmin)
			r.Use(middleware.AllowContentType("application/json"))
			couponsV1.Routes(r)
		})
	})

	return router
}
