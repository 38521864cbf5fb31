// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turath/rdm-ops/pkg/types"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenLedger(filepath.Join(t.TempDir(), "state", "verify.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerRecordAndHistory(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	first := types.VerifyRun{
		Source:       "rest",
		PID:          "7cxkj-kvp29",
		Key:          "001.hocr",
		RestSize:     int64p(2048),
		RestChecksum: "md5:" + helloMD5,
		LocalSize:    2048,
		LocalSHA256:  helloSHA256,
		LocalMD5:     helloMD5,
		Matched:      true,
	}
	id1, err := l.Record(ctx, first)
	require.NoError(t, err)
	assert.Positive(t, id1)

	second := types.VerifyRun{
		Source:      "s3",
		Bucket:      "bkt-1",
		Key:         "DSC_0003.JPG",
		Timestamp:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		LocalSize:   123456,
		LocalSHA256: "abc",
		LocalMD5:    "def",
		Matched:     false,
	}
	_, err = l.Record(ctx, second)
	require.NoError(t, err)

	runs, err := l.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "s3", runs[0].Source)
	assert.Equal(t, "bkt-1", runs[0].Bucket)
	assert.False(t, runs[0].Matched)
	assert.Equal(t, second.Timestamp, runs[0].Timestamp)
	assert.Nil(t, runs[0].RestSize)

	assert.Equal(t, "rest", runs[1].Source)
	assert.Equal(t, "7cxkj-kvp29", runs[1].PID)
	require.NotNil(t, runs[1].RestSize)
	assert.Equal(t, int64(2048), *runs[1].RestSize)
	assert.True(t, runs[1].Matched)
}

func TestLedgerHistoryLimit(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := l.Record(ctx, types.VerifyRun{Source: "rest", Key: "f", Matched: true})
		require.NoError(t, err)
	}

	runs, err := l.History(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestLedgerEmptyHistory(t *testing.T) {
	l := openTestLedger(t)

	runs, err := l.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
