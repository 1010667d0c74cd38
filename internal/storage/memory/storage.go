package memory

import (
	"context"
	"sync"

	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	// history is newest-first per scope
	history      map[model.Scope][]*model.HistoryRecord
	settings     map[model.PlayerID]*model.PlayerSettings
	daily        *model.DailyState
	achievements map[model.PlayerID]model.AchievementRecord
	guilds       map[model.GuildID]*model.GuildConfig
	wordList     []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		history:      make(map[model.Scope][]*model.HistoryRecord),
		settings:     make(map[model.PlayerID]*model.PlayerSettings),
		achievements: make(map[model.PlayerID]model.AchievementRecord),
		guilds:       make(map[model.GuildID]*model.GuildConfig),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// History operations

func (s *Storage) AppendHistory(ctx context.Context, scope model.Scope, rec *model.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[scope] = append([]*model.HistoryRecord{rec}, s.history[scope]...)
	return nil
}

func (s *Storage) GetPlayerHistory(ctx context.Context, scope model.Scope, persona model.PersonaID) ([]*model.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.HistoryRecord
	for _, rec := range s.history[scope] {
		if rec.PlayerRef == persona {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *Storage) GetScopeHistory(ctx context.Context, scope model.Scope) ([]*model.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.HistoryRecord, len(s.history[scope]))
	copy(records, s.history[scope])
	return records, nil
}

// Player settings operations

func (s *Storage) SaveSettings(ctx context.Context, settings *model.PlayerSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.PlayerID] = settings
	return nil
}

func (s *Storage) GetSettings(ctx context.Context, playerID model.PlayerID) (*model.PlayerSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.settings[playerID]
	if !ok {
		return nil, model.ErrSettingsNotFound
	}
	return settings, nil
}

// Daily challenge state operations

func (s *Storage) SaveDailyState(ctx context.Context, state *model.DailyState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily = state
	return nil
}

func (s *Storage) GetDailyState(ctx context.Context) (*model.DailyState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.daily == nil {
		return nil, model.ErrDailyStateNotFound
	}
	return s.daily, nil
}

// Achievement operations

func (s *Storage) GetAchievements(ctx context.Context, playerID model.PlayerID) (model.AchievementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record := make(model.AchievementRecord, len(s.achievements[playerID]))
	for id, ts := range s.achievements[playerID] {
		record[id] = ts
	}
	return record, nil
}

func (s *Storage) SaveAchievements(ctx context.Context, playerID model.PlayerID, record model.AchievementRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make(model.AchievementRecord, len(record))
	for id, ts := range record {
		stored[id] = ts
	}
	s.achievements[playerID] = stored
	return nil
}

// Guild configuration operations

func (s *Storage) SaveGuildConfig(ctx context.Context, cfg *model.GuildConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guilds[cfg.GuildID] = cfg
	return nil
}

func (s *Storage) GetGuildConfig(ctx context.Context, guildID model.GuildID) (*model.GuildConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.guilds[guildID]
	if !ok {
		return nil, model.ErrGuildNotConfigured
	}
	return cfg, nil
}

// Word list operations

func (s *Storage) SaveWordList(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordList = make([]string, len(words))
	copy(s.wordList, words)
	return nil
}

func (s *Storage) GetWordList(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wordList == nil {
		return nil, model.ErrWordListNotFound
	}
	words := make([]string, len(s.wordList))
	copy(words, s.wordList)
	return words, nil
}
