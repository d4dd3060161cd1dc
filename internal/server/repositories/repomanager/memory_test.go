package repomanager

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryManager_SharesAccountRecords(t *testing.T) {
	ctx := context.Background()
	var m RepositoryManager = NewInMemoryRepositoryManager()

	require.NoError(t, m.RunMigrations(ctx))

	a, err := m.Accounts().Create(ctx, &models.Account{UserName: "alice", PasswordHash: []byte("h")})
	require.NoError(t, err)

	require.NoError(t, m.RefreshTokens().AppendRefreshToken(ctx, a.ID, "hash"))

	got, err := m.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"hash"}, got.RefreshTokens)

	assert.NotNil(t, m.Tasks())
	assert.NoError(t, m.Close())
}
