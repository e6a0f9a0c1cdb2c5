package service

import (
	"context"
	"testing"

	"tasks/internal/domain/models"
	inmemory "tasks/repository/inmemory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testListUuid = "ae4673a1-58ea-40b7-ba07-ceced404472d"

func newTaskFixture(t *testing.T) (*TaskService, *inmemory.Storage) {
	t.Helper()
	repo := inmemory.NewStorage()
	assert.NoError(t, repo.CreateUser(context.Background(), testOwner))
	_, err := repo.CreateList(context.Background(), testOwner, testListUuid, "Test List")
	assert.NoError(t, err)
	return NewTaskService(repo), repo
}

func TestTaskCreate(t *testing.T) {
	tests := []struct {
		name     string
		listUuid string
		request  models.CreateTaskRequest
		want     struct {
			fails []string
		}
	}{
		{
			name:     "valid task",
			listUuid: testListUuid,
			request: models.CreateTaskRequest{
				Uuid:     "c8075eea-2636-49fb-bb3e-3b0a624d0beb",
				Name:     "Test Task",
				Complete: boolPtr(false),
			},
			want: struct{ fails []string }{fails: nil},
		},
		{
			name:     "missing complete is its own failure",
			listUuid: testListUuid,
			request: models.CreateTaskRequest{
				Uuid: "c8075eea-2636-49fb-bb3e-3b0a624d0beb",
				Name: "Test Task",
			},
			want: struct{ fails []string }{
				fails: []string{"Complete must be provided"},
			},
		},
		{
			name:     "explicit false is not a missing complete",
			listUuid: testListUuid,
			request: models.CreateTaskRequest{
				Uuid:     "11111111-2222-4333-8444-555555555555",
				Name:     "Test Task",
				Complete: boolPtr(false),
			},
			want: struct{ fails []string }{fails: nil},
		},
		{
			name:     "all checks collected",
			listUuid: "not-a-uuid",
			request:  models.CreateTaskRequest{},
			want: struct{ fails []string }{
				fails: []string{
					"Uuid must be provided",
					"Name must be provided",
					"Complete must be provided",
					"List uuid is not in valid v4 format",
					"Uuid is not in valid v4 format",
				},
			},
		},
		{
			name:     "list not owned by caller",
			listUuid: "99999999-9999-4999-8999-999999999999",
			request: models.CreateTaskRequest{
				Uuid:     "c8075eea-2636-49fb-bb3e-3b0a624d0beb",
				Name:     "Test Task",
				Complete: boolPtr(false),
			},
			want: struct{ fails []string }{
				fails: []string{"List does not exist"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTaskFixture(t)

			res, err := svc.Create(context.Background(), testOwner, tt.listUuid, tt.request)

			assert.NoError(t, err)
			assert.Equal(t, tt.want.fails, res.Fails)
			if len(tt.want.fails) == 0 {
				task, ok := res.Data["task"].(*models.Task)
				assert.True(t, ok)
				assert.Equal(t, tt.request.Uuid, task.Uuid)
				assert.Equal(t, tt.request.Name, task.Name)
				assert.Equal(t, *tt.request.Complete, task.Complete)
			}
		})
	}
}

func TestTaskCreateDuplicateUuid(t *testing.T) {
	svc, _ := newTaskFixture(t)
	req := models.CreateTaskRequest{
		Uuid:     uuid.NewString(),
		Name:     "Test Task",
		Complete: boolPtr(false),
	}

	res, err := svc.Create(context.Background(), testOwner, testListUuid, req)
	assert.NoError(t, err)
	assert.False(t, res.Failed())

	res, err = svc.Create(context.Background(), testOwner, testListUuid, req)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Uuid already exists"}, res.Fails)
}

func TestTaskAll(t *testing.T) {
	svc, repo := newTaskFixture(t)

	res, err := svc.All(context.Background(), testOwner, testListUuid)
	assert.NoError(t, err)
	assert.Equal(t, []models.Task{}, res.Data["tasks"])

	first := uuid.NewString()
	second := uuid.NewString()
	_, err = repo.CreateTask(context.Background(), testOwner, testListUuid, first, "First", false)
	assert.NoError(t, err)
	_, err = repo.CreateTask(context.Background(), testOwner, testListUuid, second, "Second", true)
	assert.NoError(t, err)

	res, err = svc.All(context.Background(), testOwner, testListUuid)
	assert.NoError(t, err)
	assert.Equal(t, []models.Task{
		{Uuid: first, Name: "First", Complete: false},
		{Uuid: second, Name: "Second", Complete: true},
	}, res.Data["tasks"], "tasks come back in creation order")
}

func TestTaskAllValidation(t *testing.T) {
	svc, _ := newTaskFixture(t)

	res, err := svc.All(context.Background(), testOwner, "not-a-uuid")
	assert.NoError(t, err)
	assert.Equal(t, []string{"List uuid is not in valid v4 format"}, res.Fails)
}

func TestTaskAllForeignList(t *testing.T) {
	svc, repo := newTaskFixture(t)
	foreign := uuid.NewString()
	assert.NoError(t, repo.CreateUser(context.Background(), "ZZZZZ9"))
	_, err := repo.CreateList(context.Background(), "ZZZZZ9", foreign, "Foreign")
	assert.NoError(t, err)
	_, err = repo.CreateTask(context.Background(), "ZZZZZ9", foreign, uuid.NewString(), "Secret", false)
	assert.NoError(t, err)

	// Someone else's list reads as empty, with no distinct not-found signal.
	res, err := svc.All(context.Background(), testOwner, foreign)
	assert.NoError(t, err)
	assert.False(t, res.Failed())
	assert.Equal(t, []models.Task{}, res.Data["tasks"])
}

func TestTaskUpdate(t *testing.T) {
	existing := "c8075eea-2636-49fb-bb3e-3b0a624d0beb"

	tests := []struct {
		name    string
		uuid    string
		request models.UpdateTaskRequest
		want    struct {
			fails []string
		}
	}{
		{
			name: "merge name and completion",
			uuid: existing,
			request: models.UpdateTaskRequest{
				Name:     "Updated Task",
				Complete: boolPtr(true),
			},
			want: struct{ fails []string }{fails: nil},
		},
		{
			name:    "missing name and complete collected",
			uuid:    existing,
			request: models.UpdateTaskRequest{},
			want: struct{ fails []string }{
				fails: []string{"Name must be provided", "Complete must be provided"},
			},
		},
		{
			name: "malformed uuid",
			uuid: "nope",
			request: models.UpdateTaskRequest{
				Name:     "Updated Task",
				Complete: boolPtr(true),
			},
			want: struct{ fails []string }{
				fails: []string{"Uuid is not in valid v4 format"},
			},
		},
		{
			name: "no matching row is an explicit failure",
			uuid: "99999999-9999-4999-8999-999999999999",
			request: models.UpdateTaskRequest{
				Name:     "Updated Task",
				Complete: boolPtr(true),
			},
			want: struct{ fails []string }{
				fails: []string{"Task does not exist"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTaskFixture(t)
			_, err := repo.CreateTask(context.Background(), testOwner, testListUuid, existing, "Test Task", false)
			assert.NoError(t, err)

			res, err := svc.Update(context.Background(), testOwner, tt.uuid, tt.request)

			assert.NoError(t, err)
			assert.Equal(t, tt.want.fails, res.Fails)
			if len(tt.want.fails) == 0 {
				assert.Equal(t, &models.Task{
					Uuid:     tt.uuid,
					Name:     tt.request.Name,
					Complete: *tt.request.Complete,
				}, res.Data["task"])
			}
		})
	}
}

func TestTaskRemove(t *testing.T) {
	svc, repo := newTaskFixture(t)
	existing := uuid.NewString()
	_, err := repo.CreateTask(context.Background(), testOwner, testListUuid, existing, "Test Task", false)
	assert.NoError(t, err)

	res, err := svc.Remove(context.Background(), testOwner, existing)
	assert.NoError(t, err)
	assert.False(t, res.Failed())
	assert.Nil(t, res.Data)

	res, err = svc.Remove(context.Background(), testOwner, existing)
	assert.NoError(t, err)
	assert.False(t, res.Failed())

	all, err := svc.All(context.Background(), testOwner, testListUuid)
	assert.NoError(t, err)
	assert.Empty(t, all.Data["tasks"])
}
