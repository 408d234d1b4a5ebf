package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lobo-bot/lobo/pkg/dataaccess/monitoring"
	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const guildDalName = "guild_dal"

type GuildDal interface {
	// SaveConfig saves a guild configuration document.
	SaveConfig(ctx context.Context, cfg *entities.GuildConfig) error

	// GetConfigByID gets a guild configuration document by guild ID.
	GetConfigByID(ctx context.Context, id string) (*entities.GuildConfig, error)
}

type guildDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewGuildDal creates a new guild configuration data access layer.
func NewGuildDal() GuildDal {
	l := slog.Default().With(slog.String(logging.KeyDal, guildDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &guildDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (g *guildDalImpl) SaveConfig(ctx context.Context, cfg *entities.GuildConfig) error {
	// Get the guild collection.
	collection := g.client.Database(mongoDatabase).Collection("guild_configs")

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(guildDalName, "save_guild_config", mongoDatabase, "guild_configs").Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildDalName, "save_guild_config", mongoDatabase, "guild_configs"))
	defer t.ObserveDuration()

	// Save the whole document; partial patches are never written.
	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"id": cfg.ID}, bson.M{"$set": cfg}, opts)
	if err != nil {
		return fmt.Errorf("error updating guild config: %w", err)
	}
	return nil
}

// GetConfigByID gets a guild configuration document by guild ID.
func (g *guildDalImpl) GetConfigByID(ctx context.Context, id string) (*entities.GuildConfig, error) {
	// Get the guild collection.
	collection := g.client.Database(mongoDatabase).Collection("guild_configs")

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(guildDalName, "get_guild_config_by_id", mongoDatabase, "guild_configs").Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildDalName, "get_guild_config_by_id", mongoDatabase, "guild_configs"))
	defer t.ObserveDuration()

	cfg := new(entities.GuildConfig)

	err := collection.FindOne(ctx, bson.M{"id": id}).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}
	return cfg, nil
}
