package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"taskgarden/internal/models/task"
	"taskgarden/internal/repository/inmemory"
	"taskgarden/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService() *service.TaskService {
	return service.NewTaskService(inmemory.NewStore())
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("success with defaults", func(t *testing.T) {
		svc := newTaskService()

		created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{
			Title:    "주간 보고서",
			Category: task.CategoryWork,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, task.PriorityMedium, created.Priority)
		assert.Equal(t, task.StatusPending, created.Status)
		assert.Nil(t, created.CompletedAt)
	})

	t.Run("missing title or category", func(t *testing.T) {
		svc := newTaskService()

		for _, in := range []service.CreateTaskInput{
			{Category: task.CategoryWork},
			{Title: "no category"},
		} {
			_, err := svc.CreateTask(ctx, 1, in)
			require.Error(t, err)
			var bizErr *service.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, service.CodeValidation, bizErr.Code)
			assert.Equal(t, service.MsgMissingTaskFields, bizErr.Message)
		}
	})

	t.Run("title length is counted in runes", func(t *testing.T) {
		svc := newTaskService()

		// 200 Hangul characters are fine even though the byte count is 600
		ok := strings.Repeat("가", task.MaxTitleLen)
		_, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: ok, Category: task.CategoryStudy})
		assert.NoError(t, err)

		tooLong := strings.Repeat("가", task.MaxTitleLen+1)
		_, err = svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: tooLong, Category: task.CategoryStudy})
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.MsgTitleTooLong, bizErr.Message)
	})

	t.Run("due date is kept", func(t *testing.T) {
		svc := newTaskService()

		due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{
			Title:    "발표 준비",
			Category: task.CategorySideProject,
			DueDate:  &due,
		})
		require.NoError(t, err)
		require.NotNil(t, created.DueDate)
		assert.Equal(t, due, *created.DueDate)
	})
}

func TestTaskService_GetTask_Ownership(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: "mine", Category: task.CategoryWork})
	require.NoError(t, err)

	got, err := svc.GetTask(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// a foreign owner sees not-found, not forbidden
	_, err = svc.GetTask(ctx, 2, created.ID)
	require.Error(t, err)
	var bizErr *service.BusinessError
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, service.CodeNotFound, bizErr.Code)
	assert.Equal(t, service.MsgTaskNotFound, bizErr.Message)
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	for _, c := range []task.Category{task.CategoryWork, task.CategoryStudy, task.CategoryStudy} {
		_, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: "t", Category: c})
		require.NoError(t, err)
	}

	all, err := svc.ListTasks(ctx, 1, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	study, err := svc.ListTasks(ctx, 1, string(task.CategoryStudy), "")
	require.NoError(t, err)
	assert.Len(t, study, 2)

	none, err := svc.ListTasks(ctx, 1, string(task.CategorySideProject), "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps the rest", func(t *testing.T) {
		svc := newTaskService()
		created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{
			Title:       "원래 제목",
			Description: "원래 설명",
			Category:    task.CategoryWork,
			Priority:    task.PriorityLow,
		})
		require.NoError(t, err)

		updated, err := svc.UpdateTask(ctx, 1, created.ID,
			task.WithTitle("새 제목"),
			task.WithPriority(task.PriorityHigh),
		)
		require.NoError(t, err)
		assert.Equal(t, "새 제목", updated.Title)
		assert.Equal(t, task.PriorityHigh, updated.Priority)
		assert.Equal(t, "원래 설명", updated.Description)
		assert.Equal(t, task.CategoryWork, updated.Category)
	})

	t.Run("clearing the title is rejected", func(t *testing.T) {
		svc := newTaskService()
		created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: "t", Category: task.CategoryWork})
		require.NoError(t, err)

		_, err = svc.UpdateTask(ctx, 1, created.ID, task.WithTitle(""))
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.CodeValidation, bizErr.Code)
	})

	t.Run("foreign task", func(t *testing.T) {
		svc := newTaskService()
		created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: "t", Category: task.CategoryWork})
		require.NoError(t, err)

		_, err = svc.UpdateTask(ctx, 2, created.ID, task.WithTitle("hijacked"))
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.CodeNotFound, bizErr.Code)
	})
}

func TestTaskService_ToggleTask(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: "toggle me", Category: task.CategoryWork})
	require.NoError(t, err)

	// pending -> completed stamps completed_at
	toggled, err := svc.ToggleTask(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, toggled.Status)
	require.NotNil(t, toggled.CompletedAt)

	// completed -> pending clears it again
	back, err := svc.ToggleTask(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, back.Status)
	assert.Nil(t, back.CompletedAt)

	_, err = svc.ToggleTask(ctx, 2, created.ID)
	assert.Error(t, err)
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, 1, service.CreateTaskInput{Title: "t", Category: task.CategoryWork})
	require.NoError(t, err)

	err = svc.DeleteTask(ctx, 2, created.ID)
	require.Error(t, err)
	var bizErr *service.BusinessError
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, service.CodeNotFound, bizErr.Code)

	require.NoError(t, svc.DeleteTask(ctx, 1, created.ID))

	err = svc.DeleteTask(ctx, 1, created.ID)
	assert.Error(t, err)
}
