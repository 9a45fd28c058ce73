package settings

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store holds plugin options as strings.
type Store interface {
	Get(name string) (string, bool, error)
	Set(name, value string) error
	// Describe attaches a description to an option that is already set.
	Describe(name, description string) error
}

var (
	_ Store = &MemoryStore{}
	_ Store = &GormStore{}
)

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	descs  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}, descs: map[string]string{}}
}

func (s *MemoryStore) Get(name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok, nil
}

func (s *MemoryStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return nil
}

func (s *MemoryStore) Describe(name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[name]; ok {
		s.descs[name] = description
	}
	return nil
}

func (s *MemoryStore) Description(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.descs[name]
}

// PluginOption is the persisted form of an option.
type PluginOption struct {
	Name        string `gorm:"primaryKey;size:128"`
	Value       string
	Description string
	UpdatedAt   time.Time
}

func (PluginOption) TableName() string {
	return "plugin_options"
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(name string) (string, bool, error) {
	var opts []PluginOption
	res := s.db.Where("name = ?", name).Limit(1).Find(&opts)
	if res.Error != nil {
		return "", false, fmt.Errorf("get option %s: %w", name, res.Error)
	}
	if len(opts) == 0 {
		return "", false, nil
	}
	return opts[0].Value, true, nil
}

func (s *GormStore) Set(name, value string) error {
	opt := PluginOption{Name: name, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&opt).Error
	if err != nil {
		return fmt.Errorf("set option %s: %w", name, err)
	}
	return nil
}

func (s *GormStore) Describe(name, description string) error {
	err := s.db.Model(&PluginOption{}).
		Where("name = ?", name).
		Update("description", description).Error
	if err != nil {
		return fmt.Errorf("describe option %s: %w", name, err)
	}
	return nil
}

func (s *GormStore) Description(name string) (string, error) {
	var opts []PluginOption
	if err := s.db.Where("name = ?", name).Limit(1).Find(&opts).Error; err != nil {
		return "", err
	}
	if len(opts) == 0 {
		return "", nil
	}
	return opts[0].Description, nil
}
