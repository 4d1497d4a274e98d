package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"gold-goblin/internal/api"
	"gold-goblin/internal/auctions"
	"gold-goblin/internal/catalog"
	"gold-goblin/internal/db"
	"gold-goblin/internal/engine"
	"gold-goblin/internal/logger"
	"gold-goblin/internal/market"
	"gold-goblin/internal/report"
)

var version = "dev"

func main() {
	port := flag.Int("port", 13370, "HTTP server port")
	serve := flag.Bool("serve", false, "run the HTTP API instead of printing reports")
	refresh := flag.Bool("refresh", false, "refetch auction history even if cached")
	realm := flag.String("realm", "", "realm to analyze (overrides saved config)")
	dataDir := flag.String("data", "", "catalog data directory (overrides saved config)")
	minProfit := flag.Float64("min-profit", -1, "minimum craft profit percent (overrides saved config)")
	threshold := flag.Float64("threshold", -1, "buy/sell signal threshold percent (overrides saved config)")
	flag.Parse()

	logger.Banner(version)

	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	cfg := database.LoadConfig()
	if *realm != "" {
		cfg.Realm = *realm
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *minProfit >= 0 {
		cfg.MinProfitPct = *minProfit
	}
	if *threshold >= 0 {
		cfg.SignalThresholdPct = *threshold
	}

	cat, err := catalog.Load(cfg.DataDir)
	if err != nil {
		logger.Error("Catalog", fmt.Sprintf("Load failed: %v", err))
		os.Exit(1)
	}
	logger.Info("Catalog", fmt.Sprintf("%d items, %d recipes", len(cat.Items), len(cat.Recipes)))

	client := auctions.NewClient(database)
	maxAge := time.Duration(cfg.FetchStaleHours) * time.Hour
	if *refresh {
		maxAge = 0
	}

	if *serve {
		srv := api.NewServer(cfg, database)

		// Fetch history in the background so the server is up immediately.
		go func() {
			store, err := loadMarket(client, cat, cfg.Realm, cfg.Period, maxAge)
			if err != nil {
				logger.Error("Market", fmt.Sprintf("Load failed: %v", err))
				return
			}
			srv.SetData(cat, store)
			logger.Success("Market", fmt.Sprintf("%d items ready", store.Len()))
		}()

		addr := fmt.Sprintf("127.0.0.1:%d", *port)
		logger.Server(addr)
		if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
			logger.Error("Server", fmt.Sprintf("Failed: %v", err))
			os.Exit(1)
		}
		return
	}

	store, err := loadMarket(client, cat, cfg.Realm, cfg.Period, maxAge)
	if err != nil {
		logger.Error("Market", fmt.Sprintf("Load failed: %v", err))
		os.Exit(1)
	}

	report.MarketSummary(store, cfg.MaxDisplay)

	buys, sells := store.Opportunities(cfg.SignalThresholdPct)
	report.Opportunities(buys, sells, cfg.MaxDisplay)

	resolver := engine.NewResolver(cat, store)
	report.ProfitableCrafts(resolver.RankProfitable(cfg.MinProfitPct), cfg.MaxDisplay)
	report.Professions(resolver.GroupByProfession())
}

func loadMarket(client *auctions.Client, cat *catalog.Catalog, realm, period string, maxAge time.Duration) (*market.Store, error) {
	logger.Info("Market", fmt.Sprintf("Loading %s history for %d items on %s", period, len(cat.Items), realm))

	histories, err := client.LoadAll(cat.Items, realm, period, maxAge)
	if err != nil {
		return nil, err
	}

	store := market.NewStore()
	for itemID, points := range histories {
		name, _ := cat.ItemName(itemID)
		store.Add(market.BuildSeries(itemID, name, points))
	}
	return store, nil
}
