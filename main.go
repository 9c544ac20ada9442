package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"marketscope/api"
	"marketscope/config"
	"marketscope/models"
	"marketscope/scraper"
	"marketscope/scraper/lazada"
	"marketscope/scraper/shopee"
	"marketscope/services"
	"marketscope/storage"
	"marketscope/utils"
)

func main() {
	var (
		keyword  = flag.String("keyword", "", "search keyword (required unless -serve)")
		serve    = flag.Bool("serve", false, "run the HTTP API instead of a one-shot search")
		maxPrice = flag.Float64("max-price", 0, "bestseller price ceiling (0 = no ceiling)")
		minPrice = flag.Float64("min-price", 0, "bestseller price floor")
		topN     = flag.Int("top-n", services.DefaultTopN, "number of ranked bestsellers to keep")
		noExport = flag.Bool("no-export", false, "skip the CSV export")
	)
	flag.Parse()

	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	market := config.MarketFor(cfg.Market)

	logger.Info("=== MarketScope starting ===")
	logger.Info("Config — market: %s | results/platform: %d | concurrency: %d | delay: %dms",
		market.Code, cfg.MaxResultsPerPlatform, cfg.MaxConcurrency, cfg.DelayBetweenMs)

	store, err := newStore(cfg)
	if err != nil {
		logger.Error("Failed to open store (%s): %v", cfg.StoreDriver, err)
		os.Exit(1)
	}
	defer store.Close()

	multi := scraper.NewMultiPlatform(cfg, logger,
		shopee.New(cfg, market, logger),
		lazada.New(cfg, market, logger),
	)

	if *serve {
		handlers := api.NewHandlers(cfg, market, logger, store, multi)
		if err := api.Serve(handlers, cfg.APIAddr); err != nil {
			logger.Error("API server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if *keyword == "" {
		fmt.Fprintln(os.Stderr, "usage: marketscope -keyword <term> [-max-price N] [-top-n N] | -serve")
		flag.PrintDefaults()
		os.Exit(2)
	}

	searchID, err := store.CreateSearch(*keyword, multi.Platforms(), cfg.MaxResultsPerPlatform)
	if err != nil {
		logger.Error("Failed to record search: %v", err)
		os.Exit(1)
	}

	products := multi.Combined(*keyword, cfg.MaxResultsPerPlatform)
	if len(products) == 0 {
		logger.Error("No products found for %q on any platform. Exiting.", *keyword)
		_ = store.MarkFailed(searchID, "no products found")
		os.Exit(1)
	}

	logger.Info("Collected %d products for %q — saving to store...", len(products), *keyword)

	if err := store.SaveProducts(searchID, products); err != nil {
		logger.Error("Store write failed: %v", err)
		_ = store.MarkFailed(searchID, err.Error())
	} else if err := store.MarkCompleted(searchID, len(products)); err != nil {
		logger.Error("Failed to finalize search record: %v", err)
	}

	if !*noExport {
		exportCSV(cfg, logger, *keyword, products)
	}

	analyzer := services.NewAnalyzer(market, logger)
	analyzer.Print(analyzer.AnalyzeProducts(products))

	finder := services.NewBestsellerFinder(market, logger)
	report := finder.Find(products, services.BestsellerParams{
		MinPrice: *minPrice,
		MaxPrice: *maxPrice,
		TopN:     *topN,
	})
	finder.PrintBestsellers(report)

	fmt.Printf("  Done. %d products analyzed — search #%d stored in %s\n\n",
		len(products), searchID, cfg.StoreDriver)
}

func newLogger(cfg *config.Config) (*utils.Logger, error) {
	if cfg.LogFilePath != "" {
		return utils.NewFileLogger(cfg.LogFilePath)
	}
	return utils.NewLogger(), nil
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return storage.NewPostgresStore(cfg.DSN())
	default:
		return storage.NewSQLiteStore(cfg.SQLitePath)
	}
}

func exportCSV(cfg *config.Config, logger *utils.Logger, keyword string, products []*models.Product) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(keyword)), " ", "_")
	path := filepath.Join(cfg.ExportDir,
		fmt.Sprintf("%s_%s.csv", slug, time.Now().Format("20060102_150405")))

	writer, err := storage.NewCSVWriter(path)
	if err != nil {
		logger.Error("Failed to create CSV export: %v", err)
		return
	}
	defer writer.Close()

	if err := writer.WriteProducts(products); err != nil {
		logger.Error("CSV export failed: %v", err)
		return
	}
	logger.Info("Results exported to %s", path)
}
