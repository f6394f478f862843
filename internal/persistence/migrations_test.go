package persistence

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationVersions_Sorted(t *testing.T) {
	versions, err := migrationVersions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "001_init", versions[0])
	assert.True(t, sort.StringsAreSorted(versions))
}

func TestMigrations_CreateSessionTable(t *testing.T) {
	content, err := migrationFiles.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)

	sql := string(content)
	for _, table := range []string{"users", "user_roles", "auth_sessions", "franchises", "stores", "menu", "diner_orders", "order_items"} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" ("), "missing table %s", table)
	}
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.ErrorIs(t, RunMigrations(context.Background(), nil, zap.NewNop()), ErrNoDSN)
}
