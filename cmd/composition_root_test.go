package cmd

import (
	"context"
	"testing"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/accountrepo"
	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRoot(t *testing.T) (CompositionRoot, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(db))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	root, err := NewCompositionRoot(cfg, db, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	return root, db
}

func TestCompositionRoot_ProvisionsSystemActor(t *testing.T) {
	root, db := newTestRoot(t)
	ctx := context.Background()

	cmd, err := commands.NewEnsureSystemActorCommand(root.systemActorID, "Fulfillment System", "system@fulfillment.local")
	require.NoError(t, err)

	handler := root.CreateEnsureSystemActorCommandHandler()
	require.NoError(t, handler.Handle(ctx, cmd))
	require.NoError(t, handler.Handle(ctx, cmd))

	var users int64
	require.NoError(t, db.Model(&accountrepo.UserDTO{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestCompositionRoot_ReplenishmentWithoutStores(t *testing.T) {
	root, _ := newTestRoot(t)

	cmd, err := commands.NewCheckAndGenerateDraftOrdersCommand(nil)
	require.NoError(t, err)

	summary, err := root.CreateCheckAndGenerateDraftOrdersCommandHandler().Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Empty(t, summary.Stores)
}

func TestCompositionRoot_RefreshOverdueWithoutInvoices(t *testing.T) {
	root, _ := newTestRoot(t)

	changed, err := root.CreateRefreshOverdueInvoicesCommandHandler().Handle(context.Background(), commands.NewRefreshOverdueInvoicesCommand())
	require.NoError(t, err)
	assert.Zero(t, changed)
}
