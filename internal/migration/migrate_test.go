package migration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis-api/internal/store"
)

func TestRun_CreatesSchema(t *testing.T) {
	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, Run(st.DB(), zerolog.Nop()))

	for _, table := range []string{"users", "cameras", "alarms", "issues", "issue_logs", "vehicles"} {
		var name string
		err := st.DB().QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s must exist", table)
	}
}

func TestRun_IsIdempotent(t *testing.T) {
	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, Run(st.DB(), zerolog.Nop()))
	require.NoError(t, Run(st.DB(), zerolog.Nop()))
}
