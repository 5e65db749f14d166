package postgresql_test

import (
	"testing"

	"github.com/cmlabs-hris/payroll-report-engine/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_ListActive(t *testing.T) {
	db := openTestDB(t)
	ctx := txContext(t, db)
	repo := postgresql.NewEmployeeRepository(db)

	dept := "Repo Test Engineering"
	activeID := insertEmployee(t, ctx, db, "RT-001", "Ada", "Lovelace", dept, true)
	insertEmployee(t, ctx, db, "RT-002", "Inactive", "Person", dept, false)
	insertEmployee(t, ctx, db, "RT-003", "Other", "Dept", "Repo Test Sales", true)

	refs, err := repo.ListActive(ctx, &dept)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, activeID, refs[0].ID)
	assert.Equal(t, "Ada Lovelace", refs[0].FullName())
	assert.True(t, refs[0].IsActive)

	missing := "Repo Test Nobody"
	refs, err = repo.ListActive(ctx, &missing)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestEmployeeRepository_GetByIDs(t *testing.T) {
	db := openTestDB(t)
	ctx := txContext(t, db)
	repo := postgresql.NewEmployeeRepository(db)

	a := insertEmployee(t, ctx, db, "RT-010", "A", "One", "Repo Test Ops", true)
	b := insertEmployee(t, ctx, db, "RT-011", "B", "Two", "Repo Test Ops", false)

	refs, err := repo.GetByIDs(ctx, []string{a, b, "0190f0f0-0000-7000-8000-000000000000"})
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	refs, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
