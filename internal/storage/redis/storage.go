package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// History operations

func (s *Storage) AppendHistory(ctx context.Context, scope model.Scope, rec *model.HistoryRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	// LPUSH keeps both lists newest-first; pipeline for atomic dual append
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, scopeHistoryKey(scope), data)
	pipe.LPush(ctx, playerHistoryKey(scope, rec.PlayerRef), data)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayerHistory(ctx context.Context, scope model.Scope, persona model.PersonaID) ([]*model.HistoryRecord, error) {
	return s.readHistoryList(ctx, playerHistoryKey(scope, persona))
}

func (s *Storage) GetScopeHistory(ctx context.Context, scope model.Scope) ([]*model.HistoryRecord, error) {
	return s.readHistoryList(ctx, scopeHistoryKey(scope))
}

func (s *Storage) readHistoryList(ctx context.Context, key string) ([]*model.HistoryRecord, error) {
	values, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.HistoryRecord, 0, len(values))
	for _, val := range values {
		var rec model.HistoryRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &rec)
	}
	return records, nil
}

// Player settings operations

func (s *Storage) SaveSettings(ctx context.Context, settings *model.PlayerSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, settingsKey(settings.PlayerID), data, 0).Err()
}

func (s *Storage) GetSettings(ctx context.Context, playerID model.PlayerID) (*model.PlayerSettings, error) {
	data, err := s.client.Get(ctx, settingsKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSettingsNotFound
		}
		return nil, err
	}

	var settings model.PlayerSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Daily challenge state operations

func (s *Storage) SaveDailyState(ctx context.Context, state *model.DailyState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dailyStateKey(), data, 0).Err()
}

func (s *Storage) GetDailyState(ctx context.Context) (*model.DailyState, error) {
	data, err := s.client.Get(ctx, dailyStateKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDailyStateNotFound
		}
		return nil, err
	}

	var state model.DailyState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Achievement operations

func (s *Storage) GetAchievements(ctx context.Context, playerID model.PlayerID) (model.AchievementRecord, error) {
	data, err := s.client.Get(ctx, achievementsKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.AchievementRecord{}, nil
		}
		return nil, err
	}

	var record model.AchievementRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Storage) SaveAchievements(ctx context.Context, playerID model.PlayerID, record model.AchievementRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, achievementsKey(playerID), data, 0).Err()
}

// Guild configuration operations

func (s *Storage) SaveGuildConfig(ctx context.Context, cfg *model.GuildConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, guildConfigKey(cfg.GuildID), data, 0).Err()
}

func (s *Storage) GetGuildConfig(ctx context.Context, guildID model.GuildID) (*model.GuildConfig, error) {
	data, err := s.client.Get(ctx, guildConfigKey(guildID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGuildNotConfigured
		}
		return nil, err
	}

	var cfg model.GuildConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Word list operations

func (s *Storage) SaveWordList(ctx context.Context, words []string) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, wordListKey(), data, 0).Err()
}

func (s *Storage) GetWordList(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, wordListKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrWordListNotFound
		}
		return nil, err
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	return words, nil
}
