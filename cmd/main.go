package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"net/http"
	"os"
	"os/signal"
	"product-console/internal/api"
	"product-console/internal/config"
	"product-console/internal/console"
	"product-console/internal/consumer"
	"product-console/internal/repository"
	"product-console/internal/seed"
	"product-console/internal/service"
	"product-console/migrations"
	"syscall"
	"time"
)

const usage = `usage: product-console [command]

commands:
  (none)    interactive product menu
  migrate   create the products_info table
  seed      insert fake products (-n count, -start id, -seed n)
  serve     run the HTTP API and the pricing consumer`

// connectRetryDelay is the pause between database ping attempts.
var connectRetryDelay = 3 * time.Second

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		log.Error().Err(err).Msg("product-console failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	command := ""
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	switch command {
	case "", "migrate", "seed", "serve":
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}

	db, err := connectDB(ctx, cfg.DSN(), cfg.DB.Name, cfg.DB.Retries)
	if err != nil {
		return err
	}
	defer db.Close()

	if command == "migrate" || cfg.MigrateOnStart {
		if err := migrations.AutoMigrateProducts(ctx, db, goose.DialectMySQL, 3); err != nil {
			return err
		}
		if command == "migrate" {
			return nil
		}
	}

	var cache service.Cache
	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
		})
		defer rdb.Close()
		cache = service.NewRedisCache(rdb, cfg.Redis.CacheTTL)
	}

	var publisher service.Publisher
	if cfg.KafkaEnabled() {
		kafkaWriter := cfg.NewKafkaWriter()
		defer kafkaWriter.Close()
		publisher = service.NewKafkaPublisher(kafkaWriter)
	}

	productRepo := repository.NewProductRepository(db)
	productService := service.NewProductService(productRepo, cache, publisher)

	switch command {
	case "seed":
		return runSeed(ctx, productService, args)
	case "serve":
		return runServe(ctx, cfg, productService)
	default:
		return console.New(productService, os.Stdin, os.Stdout).Run(ctx)
	}
}

func connectDB(ctx context.Context, dsn, dbname string, retries int) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	for i := 0; i < retries; i++ {
		err = db.PingContext(ctx)
		if err == nil {
			log.Info().Msgf("Connected to DB %s", dbname)
			return db, nil
		}
		log.Warn().Err(err).Msgf("Retry %d: failed to connect to DB %s", i+1, dbname)
		if i+1 < retries {
			select {
			case <-ctx.Done():
				db.Close()
				return nil, ctx.Err()
			case <-time.After(connectRetryDelay):
			}
		}
	}
	db.Close()
	return nil, fmt.Errorf("failed to connect to DB %s after %d attempts: %w", dbname, retries, err)
}

func runSeed(ctx context.Context, productService *service.ProductService, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	count := fs.Int("n", 10, "number of products to insert")
	startID := fs.Int("start", 1, "id of the first product")
	seedValue := fs.Uint64("seed", 0, "random seed, 0 for random")
	if err := fs.Parse(args); err != nil {
		return err
	}
	products, err := seed.New(productService, *seedValue).Seed(ctx, *startID, *count)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted %d products\n", len(products))
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, productService *service.ProductService) error {
	productHandler := api.NewProductHandler(productService)
	e := api.NewServer(productHandler, api.ServerConfig{
		JWTSecret: cfg.HTTP.JWTSecret,
		RateLimit: cfg.HTTP.RateLimit,
		RateBurst: cfg.HTTP.RateBurst,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Msgf("HTTP server listening on %s", cfg.HTTP.Addr)
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if cfg.KafkaEnabled() {
		reader := cfg.NewKafkaReader()
		g.Go(func() error {
			defer reader.Close()
			return consumer.NewConsumer(reader, productService).Start(ctx)
		})
	}

	return g.Wait()
}
