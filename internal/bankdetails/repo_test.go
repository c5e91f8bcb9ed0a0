package bankdetails

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db"
	"github.com/kittohq/kitto-backend/pkg/db/models"
)

func setupBankDetailsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	bankDetails := `
CREATE TABLE IF NOT EXISTS bank_details (
  id TEXT PRIMARY KEY,
  operator_id TEXT NOT NULL UNIQUE,
  bank_name TEXT NOT NULL,
  account_holder_name TEXT NOT NULL,
  account_number TEXT NOT NULL,
  branch_name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, gdb.Exec(`DROP TABLE IF EXISTS bank_details`).Error)
	require.NoError(t, gdb.Exec(bankDetails).Error)
	return gdb
}

func newBankDetails(operatorID uuid.UUID) *models.BankDetails {
	return &models.BankDetails{
		ID:                uuid.New(),
		OperatorID:        operatorID,
		BankName:          "Commercial Bank",
		AccountHolderName: "Nimali Perera",
		AccountNumber:     "8001234567",
		BranchName:        "Negombo",
	}
}

func TestOnlyOneRowPerOperator(t *testing.T) {
	gdb := setupBankDetailsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	operatorID := uuid.New()
	_, err := repo.Create(ctx, newBankDetails(operatorID))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBankDetails(operatorID))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}

func TestFindUpdateExists(t *testing.T) {
	gdb := setupBankDetailsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	operatorID := uuid.New()

	exists, err := repo.ExistsForOperator(ctx, operatorID)
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := repo.Create(ctx, newBankDetails(operatorID))
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, operatorID, map[string]any{"branch_name": "Colombo"}))

	found, err := repo.FindByOperator(ctx, operatorID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Colombo", found.BranchName)

	exists, err = repo.ExistsForOperator(ctx, operatorID)
	require.NoError(t, err)
	assert.True(t, exists)
}
