package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/kv"
	"storefront/internal/payment"
	cartdocrepo "storefront/internal/repository/cartdoc"
	couponrepo "storefront/internal/repository/coupon"
	customerrepo "storefront/internal/repository/customer"
	guestcartrepo "storefront/internal/repository/guestcart"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	tokenrepo "storefront/internal/repository/token"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	couponsvc "storefront/internal/service/coupon"
	customersvc "storefront/internal/service/customer"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient, err := kv.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer redisClient.Close()

	cartDocs := cartdocrepo.NewPostgres(dbpool)
	guestCarts := guestcartrepo.NewRedis(redisClient, cfg.GuestCartTTL)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	couponRepo := couponrepo.NewPostgres(dbpool)
	reviewRepo := reviewrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartDocs, guestCarts, logger)
	productService := productsvc.New(productRepo)
	customerService := customersvc.New(customerRepo, tokenRepo)
	couponService := couponsvc.New(couponRepo)
	reviewService := reviewsvc.New(reviewRepo)

	gatewayClient := payment.NewClient(cfg.GatewayKeyID, cfg.GatewayKeySecret, cfg.GatewayBaseURL)
	checkoutService := checkoutsvc.New(cartService, couponService, orderRepo, gatewayClient, logger, cfg.ExpressShippingPaise, cfg.TaxRatePercent)

	listener := cartdocrepo.NewListener(cfg.DBConnString, cartDocs, logger)
	go listener.Run(ctx)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:        cartService,
		CheckoutSvc:    checkoutService,
		CustomerSvc:    customerService,
		ProductSvc:     productService,
		CouponSvc:      couponService,
		ReviewSvc:      reviewService,
		OrderRepo:      orderRepo,
		CartStream:     listener,
		AdminToken:     cfg.AdminToken,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
