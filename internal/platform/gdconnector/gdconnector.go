// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gdconnector models the external Geometry Dash data service the
demonlist core consults to refresh cached level metadata (spec.md §5).
Only the connector's call shape and per-demon throttling are in scope —
its own wire protocol is an external dependency this module never speaks
directly.

Refreshes are best-effort background work: their failures are logged and
never reach the caller. No handler in this module calls RefreshAsync.
*/
package gdconnector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// LevelMetadata is the subset of the external service's response the
// core persists alongside a demon's cached level data.
type LevelMetadata struct {
	LevelID     int64
	LevelName   string
	Downloads   int64
	Likes       int64
	ObjectCount int
}

// Fetcher retrieves fresh level metadata from the external service. The
// concrete implementation (an HTTP client against the Geometry Dash
// data service) lives outside this module's scope.
type Fetcher interface {
	Fetch(ctx context.Context, levelID int64) (*LevelMetadata, error)
}

const cooldown = 24 * time.Hour

// Connector throttles [Fetcher] calls to at most once per demon per
// cooldown window, using Redis to share the throttle across replicas.
type Connector struct {
	fetcher Fetcher
	redis   *redis.Client
	logger  *slog.Logger
}

// NewConnector constructs a throttled connector in front of fetcher.
func NewConnector(fetcher Fetcher, redisClient *redis.Client, logger *slog.Logger) *Connector {
	return &Connector{fetcher: fetcher, redis: redisClient, logger: logger}
}

// RefreshAsync spawns a best-effort background refresh for levelID if its
// cooldown has elapsed. It never blocks the caller and never returns an
// error — failures are logged only.
func (connector *Connector) RefreshAsync(ctx context.Context, demonID, levelID int64) {
	go connector.refresh(context.WithoutCancel(ctx), demonID, levelID)
}

func (connector *Connector) refresh(ctx context.Context, demonID, levelID int64) {
	key := fmt.Sprintf("gd:cooldown:%d", demonID)

	acquired, err := connector.redis.SetNX(ctx, key, "1", cooldown).Result()
	if err != nil {
		connector.logger.Warn("gdconnector_cooldown_check_failed",
			slog.Int64("demon_id", demonID), slog.Any("error", err))
		return
	}
	if !acquired {
		return
	}

	metadata, err := connector.fetcher.Fetch(ctx, levelID)
	if err != nil {
		connector.logger.Warn("gdconnector_fetch_failed",
			slog.Int64("demon_id", demonID), slog.Int64("level_id", levelID), slog.Any("error", err))
		return
	}

	connector.logger.Info("gdconnector_refreshed",
		slog.Int64("demon_id", demonID),
		slog.Int64("level_id", levelID),
		slog.String("level_name", metadata.LevelName),
	)
}
