package tracker

import (
	"context"
	"strings"

	"github.com/sandeepkv93/cozy/internal/events"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/storage"
)

const (
	ProfileNameKey  = "cozy-username"
	ProfileImageKey = "cozy-profile-img"
	DefaultName     = "Cozy User"
)

// ProfileName returns the saved display name or DefaultName.
func (t *Tracker) ProfileName(ctx context.Context) string {
	name, err := storage.GetString(ctx, t.kv, ProfileNameKey)
	if err != nil {
		logger.Warn("profile name unreadable", "err", err)
	}
	if strings.TrimSpace(name) == "" {
		return DefaultName
	}
	return name
}

func (t *Tracker) SetProfileName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ErrEmptyName
	}
	if err := t.kv.Set(ctx, ProfileNameKey, []byte(name)); err != nil {
		return err
	}
	t.publish(events.KindProfileChanged, "", "")
	return nil
}

// ClearProfile removes the saved name and image. Task data is kept.
func (t *Tracker) ClearProfile(ctx context.Context) error {
	for _, key := range []string{ProfileNameKey, ProfileImageKey} {
		if err := storage.DeleteIfExists(ctx, t.kv, key); err != nil {
			return err
		}
	}
	t.publish(events.KindProfileChanged, "", "")
	return nil
}
