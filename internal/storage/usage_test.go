package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureUsageCountsTwoBytesPerChar(t *testing.T) {
	kv := NewMemoryKV()
	ctx := t.Context()
	require.NoError(t, kv.Set(ctx, "ab", []byte("cde")))
	require.NoError(t, kv.Set(ctx, "k", []byte("é")))

	u, err := MeasureUsage(ctx, kv, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultQuotaBytes, u.QuotaBytes)
	require.Len(t, u.Entries, 2)
	assert.Equal(t, UsageEntry{Key: "ab", Bytes: 10}, u.Entries[0])
	assert.Equal(t, UsageEntry{Key: "k", Bytes: 4}, u.Entries[1])
	assert.Equal(t, int64(14), u.TotalBytes)
	assert.Equal(t, "Approx. 14 B used of 5.0 MiB", u.String())
}

func TestUsagePercentCaps(t *testing.T) {
	assert.InDelta(t, 50.0, Usage{TotalBytes: 5, QuotaBytes: 10}.Percent(), 0.001)
	assert.InDelta(t, 100.0, Usage{TotalBytes: 50, QuotaBytes: 10}.Percent(), 0.001)
	assert.Zero(t, Usage{TotalBytes: 5}.Percent())
}
