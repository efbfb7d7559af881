package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
)

type CartService interface {
	Get(ctx context.Context, id cartsvc.Identity) ([]domain.CartItem, error)
	Add(ctx context.Context, id cartsvc.Identity, in cartsvc.AddInput) ([]domain.CartItem, error)
	Remove(ctx context.Context, id cartsvc.Identity, index int) ([]domain.CartItem, error)
	Increment(ctx context.Context, id cartsvc.Identity, index int) ([]domain.CartItem, error)
	Decrement(ctx context.Context, id cartsvc.Identity, index int) ([]domain.CartItem, error)
	Clear(ctx context.Context, id cartsvc.Identity) error
	Merge(ctx context.Context, guestID, customerID string) ([]domain.CartItem, error)
	Subtotal(items []domain.CartItem) int64
}

type CheckoutService interface {
	QuoteItems(ctx context.Context, items []domain.CartItem, couponCode, shippingMethod string) (*checkoutsvc.Quote, error)
	BeginOnline(ctx context.Context, customer *domain.Customer, in checkoutsvc.PlacementInput) (*checkoutsvc.OnlineSession, error)
	ConfirmOnline(ctx context.Context, customer *domain.Customer, in checkoutsvc.ConfirmInput) (*domain.Order, error)
	PlaceCOD(ctx context.Context, customer *domain.Customer, in checkoutsvc.PlacementInput) (*domain.Order, error)
}

type CustomerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	AccessTTLSeconds() int
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, in domain.Product) (*domain.Product, error)
}

type CouponService interface {
	Validate(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
	Upsert(ctx context.Context, in domain.Coupon) (*domain.Coupon, error)
}

type ReviewService interface {
	Add(ctx context.Context, in domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, *domain.ReviewSummary, error)
}

// CartStream delivers live cart snapshots for one customer.
type CartStream interface {
	Subscribe(customerID string) (<-chan []domain.CartItem, func())
}

// Deps carries the services the router wires into handlers.
type Deps struct {
	CartSvc        CartService
	CheckoutSvc    CheckoutService
	CustomerSvc    CustomerService
	ProductSvc     ProductService
	CouponSvc      CouponService
	ReviewSvc      ReviewService
	OrderRepo      orderrepo.Repository
	CartStream     CartStream
	AdminToken     string
	AllowedOrigins []string
}

func (d Deps) validate() error {
	if d.CartSvc == nil || d.CheckoutSvc == nil || d.CustomerSvc == nil || d.ProductSvc == nil || d.CouponSvc == nil {
		return errors.New("missing required service dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 1 && deps.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", guestIDHeader)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, guestIDHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.Use(authMiddleware(deps.CustomerSvc), guestMiddleware())

	router.POST("/signup", signupHandler(deps.CustomerSvc))
	router.POST("/login", loginHandler(deps.CustomerSvc))
	router.GET("/me", requireAuth(), meHandler())

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))
	if deps.ReviewSvc != nil {
		router.GET("/products/:id/reviews", listReviewsHandler(deps.ReviewSvc))
		router.POST("/products/:id/reviews", requireAuth(), addReviewHandler(deps.ReviewSvc))
	}

	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", getCartHandler(deps.CartSvc))
		cartGroup.POST("/items", addCartItemHandler(deps.CartSvc))
		cartGroup.DELETE("/items/:index", removeCartItemHandler(deps.CartSvc))
		cartGroup.POST("/items/:index/increment", bumpCartItemHandler(deps.CartSvc, true))
		cartGroup.POST("/items/:index/decrement", bumpCartItemHandler(deps.CartSvc, false))
		cartGroup.DELETE("", clearCartHandler(deps.CartSvc))
		cartGroup.POST("/merge", requireAuth(), mergeCartHandler(deps.CartSvc))
		if deps.CartStream != nil {
			cartGroup.GET("/ws", requireAuth(), cartStreamHandler(deps.CartStream, deps.CartSvc, logger))
		}
	}

	router.POST("/coupons/validate", validateCouponHandler(deps.CouponSvc, deps.CartSvc))

	checkoutGroup := router.Group("/checkout")
	{
		checkoutGroup.POST("/quote", quoteHandler(deps.CartSvc, deps.CheckoutSvc))
		checkoutGroup.POST("/online", requireAuth(), beginOnlineHandler(deps.CheckoutSvc))
		checkoutGroup.POST("/online/confirm", requireAuth(), confirmOnlineHandler(deps.CheckoutSvc))
		checkoutGroup.POST("/cod", requireAuth(), placeCODHandler(deps.CheckoutSvc))
	}

	if deps.OrderRepo != nil {
		router.GET("/orders", requireAuth(), listMyOrdersHandler(deps.OrderRepo))
		router.GET("/orders/:id", requireAuth(), getMyOrderHandler(deps.OrderRepo))
	}

	admin := router.Group("/admin", adminMiddleware(deps.AdminToken))
	{
		admin.POST("/products", upsertProductHandler(deps.ProductSvc))
		admin.GET("/coupons", listCouponsHandler(deps.CouponSvc))
		admin.POST("/coupons", upsertCouponHandler(deps.CouponSvc))
		if deps.OrderRepo != nil {
			admin.GET("/orders", listAllOrdersHandler(deps.OrderRepo))
			admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.OrderRepo))
		}
	}

	return router, nil
}
