package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandeepkv93/cozy/internal/model"
)

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

type RuntimeConfig struct {
	DataDir              string
	DBPath               string
	Store                string
	CueFile              string
	CuePlayer            string
	DesktopNotifications bool
	Debug                bool
	Categories           []model.Category
	EventBuffer          int
	SchedulerBuffer      int
}

func Default() RuntimeConfig {
	dataDir := ".cozy"
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		dataDir = filepath.Join(dir, "cozy")
	}
	return RuntimeConfig{
		DataDir:         dataDir,
		Store:           StoreSQLite,
		Categories:      model.DefaultCategories(),
		EventBuffer:     32,
		SchedulerBuffer: 64,
	}
}

func FromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("COZY_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("COZY_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("COZY_STORE"); ok && ValidStore(v) {
		cfg.Store = strings.ToLower(v)
	}
	if v, ok := getEnvString("COZY_CUE_FILE"); ok {
		cfg.CueFile = v
	}
	if v, ok := getEnvString("COZY_CUE_PLAYER"); ok {
		cfg.CuePlayer = v
	}
	if v, ok := getEnvBool("COZY_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("COZY_DEBUG"); ok {
		cfg.Debug = v
	}
	names, namesOK := getEnvList("COZY_CATEGORIES")
	timed, timedOK := getEnvList("COZY_TIMED_CATEGORIES")
	if namesOK || timedOK {
		cfg.Categories = buildCategories(cfg.Categories, names, timed, timedOK)
	}
	if v, ok := getEnvInt("COZY_EVENT_BUFFER"); ok && v > 0 {
		cfg.EventBuffer = v
	}
	if v, ok := getEnvInt("COZY_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

// StorePath returns the file backing the configured store, relative to DataDir
// unless DBPath is set.
func (c RuntimeConfig) StorePath() string {
	if strings.TrimSpace(c.DBPath) != "" {
		return c.DBPath
	}
	if c.Store == StoreFile {
		return filepath.Join(c.DataDir, "cozy.json")
	}
	return filepath.Join(c.DataDir, "cozy.db")
}

func (c RuntimeConfig) IsTimed(name string) bool {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat.Timed
		}
	}
	return false
}

func ValidStore(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case StoreSQLite, StoreFile, StoreMemory:
		return true
	default:
		return false
	}
}

func buildCategories(current []model.Category, names, timed []string, timedSet bool) []model.Category {
	isTimed := make(map[string]bool, len(timed))
	for _, n := range timed {
		isTimed[n] = true
	}
	if len(names) == 0 {
		for _, c := range current {
			names = append(names, c.Name)
		}
	}
	out := make([]model.Category, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		cat := model.Category{Name: n}
		switch {
		case timedSet:
			cat.Timed = isTimed[n]
		case n == model.Exercise.Name:
			cat.Timed = true
		}
		out = append(out, cat)
	}
	return out
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvList(name string) ([]string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil, false
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
