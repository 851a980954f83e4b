package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/starcrest/shipadvisor/catalog"
	"github.com/starcrest/shipadvisor/config"
	"github.com/starcrest/shipadvisor/model"
	"github.com/starcrest/shipadvisor/rules"
	"github.com/starcrest/shipadvisor/snapshot"
)

const banner = `
 ███████╗██╗  ██╗██╗██████╗  █████╗ ██████╗ ██╗   ██╗██╗███████╗ ██████╗ ██████╗
 ██╔════╝██║  ██║██║██╔══██╗██╔══██╗██╔══██╗██║   ██║██║██╔════╝██╔═══██╗██╔══██╗
 ███████╗███████║██║██████╔╝███████║██║  ██║██║   ██║██║███████╗██║   ██║██████╔╝
 ╚════██║██╔══██║██║██╔═══╝ ██╔══██║██║  ██║╚██╗ ██╔╝██║╚════██║██║   ██║██╔══██╗
 ███████║██║  ██║██║██║     ██║  ██║██████╔╝ ╚████╔╝ ██║███████║╚██████╔╝██║  ██║
 ╚══════╝╚═╝  ╚═╝╚═╝╚═╝     ╚═╝  ╚═╝╚═════╝   ╚═══╝  ╚═╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝

Ship Layout Advisor`

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: SHIPADVISOR_CONFIG or built-ins)")
	shipPath := flag.String("ship", "", "path to a raw ship record JSON file (required)")
	player := flag.String("player", "", "player name for snapshot history")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	// Optional .env for SHIPADVISOR_* variables.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env")
	}

	if *shipPath == "" {
		slog.Error("missing required -ship flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	roomCat, err := loadRoomCatalog(cfg.RoomDesignsPath)
	if err != nil {
		slog.Error("failed to load room designs", "path", cfg.RoomDesignsPath, "error", err)
		os.Exit(1)
	}
	slog.Info("room designs loaded", "entries", roomCat.Len())

	ship, err := loadShip(*shipPath)
	if err != nil {
		slog.Error("failed to load ship record", "path", *shipPath, "error", err)
		os.Exit(1)
	}

	// The raw record usually carries the ship level; fall back to the ship
	// design catalog when it doesn't.
	if ship.Level == 0 {
		if shipCat, err := catalog.LoadShipCatalog(cfg.ShipDesignsPath); err != nil {
			slog.Warn("ship designs unavailable", "path", cfg.ShipDesignsPath, "error", err)
		} else if design, ok := shipCat.Lookup(ship.DesignID); ok {
			ship.Level = design.Level
		}
	}

	layout := model.BuildLayout(ship, roomCat, cfg.EssentialRooms, model.ArmorTable(cfg.ArmorValuePerLevel))

	if *player != "" {
		store := snapshot.NewStore(cfg.Snapshot.Dir,
			time.Duration(cfg.Snapshot.DedupHours)*time.Hour, cfg.Snapshot.KeepEntries)
		err := store.Save(*player, ship.ID, snapshot.Entry{Layout: layout})
		switch {
		case errors.Is(err, snapshot.ErrRecentSnapshot):
			slog.Info("snapshot skipped", "reason", err)
		case err != nil:
			slog.Error("snapshot save failed", "error", err)
		}
	}

	ruleSet := loadRules(cfg.RulesFile())
	evaluator := rules.NewEvaluator(ruleSet)
	result := evaluator.Evaluate(layout)

	fmt.Printf("\nAdvisory score: %.2f\n", result.Score)
	if len(result.Issues) == 0 {
		fmt.Println("No issues found.")
		return
	}
	fmt.Printf("Issues (%d):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Printf("  %-24s %7.2f  %s\n", issue.Label, issue.Penalty, issue.Message)
	}
}

// loadRoomCatalog reads a JSON catalog, or a raw <RoomDesign ...> dump for
// any other extension.
func loadRoomCatalog(path string) (*catalog.RoomCatalog, error) {
	if filepath.Ext(path) == ".json" {
		return catalog.LoadRoomCatalog(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.ParseRoomDesignDump(string(data)), nil
}

func loadShip(path string) (model.RawShip, error) {
	var ship model.RawShip
	data, err := os.ReadFile(path)
	if err != nil {
		return ship, err
	}
	if err := json.Unmarshal(data, &ship); err != nil {
		return ship, fmt.Errorf("parse ship record: %w", err)
	}
	return ship, nil
}

// loadRules falls back to the built-in rule set when the configured file is
// missing or yields zero rules (malformed source parses to an empty set).
func loadRules(path string) []*rules.Rule {
	ruleSet, err := rules.ParseFile(path)
	if err != nil {
		slog.Warn("rule file unavailable, using built-in rules", "path", path, "error", err)
		return rules.DefaultRules()
	}
	if len(ruleSet) == 0 {
		slog.Warn("rule file contained no rules, using built-in rules", "path", path)
		return rules.DefaultRules()
	}
	slog.Info("rules loaded", "path", path, "count", len(ruleSet))
	return ruleSet
}
