package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/campaign"
	"github.com/cory-johannsen/campaign/internal/config"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/condition"
	"github.com/cory-johannsen/campaign/internal/game/dice"
	"github.com/cory-johannsen/campaign/internal/game/inventory"
	"github.com/cory-johannsen/campaign/internal/game/npc"
	"github.com/cory-johannsen/campaign/internal/game/ruleset"
	"github.com/cory-johannsen/campaign/internal/idgen"
	"github.com/cory-johannsen/campaign/internal/observability"
	"github.com/cory-johannsen/campaign/internal/storage/driver"
)

// app holds everything a command needs, wired from configuration.
type app struct {
	cfg        config.Config
	logger     *zap.Logger
	manager    *campaign.Manager
	conditions *condition.Registry
	npcs       *npc.Catalog
	rules      *ruleset.Ruleset
	items      *inventory.Registry
	roller     *dice.Roller
	closeStore func() error
}

// newApp loads configuration, opens the store, reads the reference catalogs
// and loads the campaign.
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	conds, err := condition.LoadDirectory(cfg.Content.ConditionsDir)
	if err != nil {
		return nil, fmt.Errorf("loading conditions: %w", err)
	}
	npcs, err := npc.LoadCatalog(cfg.Content.NPCsDir)
	if err != nil {
		return nil, fmt.Errorf("loading npc templates: %w", err)
	}

	rules, err := ruleset.Load(cfg.Content.RacesDir, cfg.Content.ClassesDir)
	if err != nil {
		return nil, fmt.Errorf("loading races and classes: %w", err)
	}

	items, err := inventory.LoadRegistry(cfg.Content.ItemsDir)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	store, closeStore, err := driver.Open(ctx, cfg, observability.Component(logger, "storage"))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	engine := combat.NewEngine(
		idgen.NewUUID("enc"),
		idgen.NewUUID("cbt"),
		observability.Component(logger, "combat"),
		combat.WithInitiativeFallback(cfg.Rules.InitiativeFallback),
	)
	manager := campaign.NewManager(store, engine, observability.Component(logger, "campaign"),
		campaign.WithNPCs(npcs),
		campaign.WithConditions(conds),
		campaign.WithHistoryDepth(cfg.Rules.HistoryDepth),
	)
	if err := manager.Load(ctx); err != nil {
		_ = closeStore()
		return nil, err
	}

	logger.Debug("campaign keeper ready",
		zap.Int("conditions", len(conds.All())),
		zap.Int("npc_templates", npcs.Len()),
		zap.Int("races", len(rules.Races())),
		zap.Int("classes", len(rules.Classes())),
		zap.Int("items", items.Len()),
	)
	return &app{
		cfg:        cfg,
		logger:     logger,
		manager:    manager,
		conditions: conds,
		npcs:       npcs,
		rules:      rules,
		items:      items,
		roller:     dice.NewLoggedRoller(dice.NewCryptoSource(), observability.Component(logger, "dice")),
		closeStore: closeStore,
	}, nil
}

// initiativeRoll returns the configured initiative die as a roll closure.
func (a *app) initiativeRoll() (func() int, error) {
	expr, err := dice.Parse(a.cfg.Rules.InitiativeDie)
	if err != nil {
		return nil, fmt.Errorf("rules.initiative_die: %w", err)
	}
	return a.roller.Func(expr), nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() error {
	err := a.closeStore()
	_ = a.logger.Sync()
	return err
}
