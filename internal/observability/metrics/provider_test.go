package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	require.NoError(t, err)
	require.NotNil(t, provider)

	m, err := New(Config{ServiceName: "fieldscope-test"}, provider)
	require.NoError(t, err)
	require.NotNil(t, m)

	ctx := context.Background()
	m.RecordAccountDelete(ctx)
	m.RecordEmailUpdate(ctx)
	m.RecordRateLimitAllowed(ctx, "/api/admin/delete-user")
	m.RecordRateLimitDenied(ctx, "/api/admin/delete-user")
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordAccountDelete(ctx)
		m.RecordEmailUpdate(ctx)
		m.RecordRateLimitAllowed(ctx, "")
		m.RecordRateLimitDenied(ctx, "")
	})
}
