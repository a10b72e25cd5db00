package main

import (
	"log"
	"net/http"

	"printshop-be/internal/address"
	"printshop-be/internal/analytics"
	"printshop-be/internal/artwork"
	"printshop-be/internal/cart"
	"printshop-be/internal/checkout"
	"printshop-be/internal/config"
	"printshop-be/internal/db"
	"printshop-be/internal/gateway"
	"printshop-be/internal/logger"
	"printshop-be/internal/middleware"
	"printshop-be/internal/payment"
	"printshop-be/internal/product"
	"printshop-be/internal/shipping"
	"printshop-be/internal/transport"
)

// State sales tax applied at checkout. Rates live here until a tax service
// is wired in.
var taxRates = map[string]float64{
	"WA": 0.065,
	"CA": 0.0725,
	"NY": 0.04,
	"TX": 0.0625,
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	store := gateway.NewPostgresStore(database)

	productRepo := product.NewRepository(store)

	cartRepo := cart.NewRepository(store)
	cartSvc := cart.NewService(cartRepo, productRepo)

	verifier := address.NewHTTPVerifier(cfg.AddressVerifierURL)
	rateProvider := shipping.NewRPCRateProvider(store)
	paymentGateway := payment.NewHTTPGateway(cfg.PaymentServiceURL, cfg.PaymentAPIKey)

	checkoutRepo := checkout.NewRepository(store)
	checkoutSvc := checkout.NewService(
		checkoutRepo,
		cartSvc,
		verifier,
		rateProvider,
		paymentGateway,
		cfg.SessionTTL,
		checkout.WithTaxRates(taxRates),
	)

	artworkRepo := artwork.NewRepository(store)
	artworkSvc := artwork.NewService(artworkRepo)

	analyticsSvc := analytics.NewService(store)

	mux := http.NewServeMux()
	transport.NewHandler(checkoutSvc, cartSvc).Register(mux)
	transport.NewCartHandler(cartSvc).Register(mux)
	transport.NewArtworkHandler(artworkSvc).Register(mux)
	transport.NewAnalyticsHandler(analyticsSvc).Register(mux)

	handler := logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.AuthMiddleware(
				middleware.RateLimitMiddleware(mux),
			),
		),
	)

	log.Printf("checkout API listening on :%s", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, handler))
}
