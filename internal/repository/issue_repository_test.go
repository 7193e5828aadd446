package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/repository"
)

func testIssue(id string) models.Issue {
	return models.Issue{
		ID:          id,
		Title:       "B区夜间定点巡逻",
		Priority:    models.IssuePriorityMedium,
		DueDate:     "2024-01-02 18:00",
		Category:    models.IssueCategoryPatrol,
		Status:      models.IssueStatusOpen,
		Description: "重点检查停车场角落。",
		Initiator:   "安保主管",
		Assignee:    "张伟",
		CreatedAt:   "2024-01-01 09:00",
		Logs: []models.IssueLog{{
			ID:        id + "-l1",
			Action:    models.LogActionCreate,
			Operator:  "安保主管",
			Timestamp: "2024-01-01 09:00",
			Content:   "任务派发",
		}},
	}
}

func TestIssueRepository_AddAndGet(t *testing.T) {
	repo := repository.NewIssueRepository(newTestDB(t))
	ctx := context.Background()

	added, err := repo.Add(ctx, testIssue("t1"))
	require.NoError(t, err)

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, added, got)
	require.Len(t, got.Logs, 1)
	assert.Equal(t, models.LogActionCreate, got.Logs[0].Action)
}

func TestIssueRepository_DuplicateID(t *testing.T) {
	repo := repository.NewIssueRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, testIssue("t1"))
	require.NoError(t, err)

	dup := testIssue("t1")
	dup.Logs[0].ID = "t1-other"
	_, err = repo.Add(ctx, dup)
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestIssueRepository_GetMissing(t *testing.T) {
	repo := repository.NewIssueRepository(newTestDB(t))
	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIssueRepository_ListNewestFirstWithTrails(t *testing.T) {
	repo := repository.NewIssueRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		issue := testIssue(fmt.Sprintf("t%d", i))
		issue.Logs[0].ID = fmt.Sprintf("t%d-l1", i)
		_, err := repo.Add(ctx, issue)
		require.NoError(t, err)
	}

	issues, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	for i, issue := range issues {
		assert.Equal(t, fmt.Sprintf("t%d", 2-i), issue.ID)
		require.Len(t, issue.Logs, 1)
		assert.Equal(t, issue.ID+"-l1", issue.Logs[0].ID)
	}
}

func TestIssueRepository_TrailKeepsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewIssueRepository(db)
	ctx := context.Background()

	issue := testIssue("t1")
	// Log IDs deliberately out of lexical order; insertion order must win.
	issue.Logs = []models.IssueLog{
		{ID: "z-first", Action: models.LogActionCreate, Operator: "op", Timestamp: "2024-01-01 09:00", Content: "c1"},
		{ID: "m-second", Action: models.LogActionProcess, Operator: "op", Timestamp: "2024-01-01 09:05", Content: "c2"},
		{ID: "a-third", Action: models.LogActionClose, Operator: "op", Timestamp: "2024-01-01 09:10", Content: "c3"},
	}
	_, err := repo.Add(ctx, issue)
	require.NoError(t, err)

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got.Logs, 3)
	assert.Equal(t, "z-first", got.Logs[0].ID)
	assert.Equal(t, "m-second", got.Logs[1].ID)
	assert.Equal(t, "a-third", got.Logs[2].ID)
}
