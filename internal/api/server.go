package api

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"time"
)

const healthPath = "/products/health"

type ServerConfig struct {
	JWTSecret string // empty disables authentication
	RateLimit float64
	RateBurst int
}

// NewServer builds the echo instance with middleware and product routes.
func NewServer(handler *ProductHandler, cfg ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     cfg.RateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))
	if cfg.JWTSecret != "" {
		e.Use(echojwt.WithConfig(echojwt.Config{
			Skipper: func(c echo.Context) bool {
				return c.Path() == healthPath
			},
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(jwt.RegisteredClaims)
			},
		}))
	}

	// Routes
	e.GET(healthPath, handler.Health)
	e.POST("/products", handler.CreateProduct)
	e.GET("/products", handler.ListProducts)
	e.GET("/products/:id", handler.GetProduct)
	e.PUT("/products/:id/price", handler.UpdateProductPrice)
	e.DELETE("/products/:id", handler.DeleteProduct)

	return e
}
