package storage

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// DefaultQuotaBytes is the budget usage is reported against.
const DefaultQuotaBytes int64 = 5 * 1024 * 1024

type UsageEntry struct {
	Key   string
	Bytes int64
}

type Usage struct {
	Entries    []UsageEntry
	TotalBytes int64
	QuotaBytes int64
}

// MeasureUsage sizes every key as two bytes per character of key and value.
func MeasureUsage(ctx context.Context, kv KV, quota int64) (Usage, error) {
	if quota <= 0 {
		quota = DefaultQuotaBytes
	}
	keys, err := kv.Keys(ctx)
	if err != nil {
		return Usage{}, err
	}
	out := Usage{Entries: make([]UsageEntry, 0, len(keys)), QuotaBytes: quota}
	for _, key := range keys {
		value, err := kv.Get(ctx, key)
		if err != nil {
			return Usage{}, err
		}
		size := int64(utf8.RuneCountInString(key)+utf8.RuneCount(value)) * 2
		out.Entries = append(out.Entries, UsageEntry{Key: key, Bytes: size})
		out.TotalBytes += size
	}
	return out, nil
}

// Percent is the share of the quota in use, capped at 100.
func (u Usage) Percent() float64 {
	if u.QuotaBytes <= 0 {
		return 0
	}
	p := float64(u.TotalBytes) / float64(u.QuotaBytes) * 100
	if p > 100 {
		return 100
	}
	return p
}

func (u Usage) String() string {
	return fmt.Sprintf("Approx. %s used of %s", humanize.IBytes(uint64(u.TotalBytes)), humanize.IBytes(uint64(u.QuotaBytes)))
}
