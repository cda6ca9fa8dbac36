package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
)

func TestActivityLogAndList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	studentID := seedStudent(t, db)
	professorID := seedProfessor(t, db)
	proj := seedProject(t, db, professorID, 2)
	app := seedApplication(t, db, studentID, proj.ID, professorID)

	repo := NewActivityRepository(db)

	first := &activity.Entry{
		ProjectID:     proj.ID,
		ApplicationID: app.ID,
		ProfessorID:   professorID,
		ActorID:       studentID,
		Type:          activity.TypeApplied,
		Summary:       "Ana Souza applied",
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Log(ctx, first))
	require.NotZero(t, first.ID)

	second := &activity.Entry{
		ProjectID:     proj.ID,
		ApplicationID: app.ID,
		ProfessorID:   professorID,
		ActorID:       professorID,
		Type:          activity.TypeSelected,
		Summary:       "candidate selected",
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Log(ctx, second))

	entries, err := repo.ListByProfessor(ctx, professorID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeSelected, entries[0].Type, "newest first")
	require.Equal(t, activity.TypeApplied, entries[1].Type)

	entries, err = repo.ListByProfessor(ctx, professorID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.ListByProfessor(ctx, "someone-else", 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}
