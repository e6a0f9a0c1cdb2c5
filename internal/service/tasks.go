package service

import (
	"context"
	"errors"

	apperrors "tasks/internal/domain/errors"
	"tasks/internal/domain/ident"
	"tasks/internal/domain/models"
)

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create inserts a task under listUuid. The insert joins through list
// ownership, so a list that does not exist or belongs to someone else
// fails the same way an update would.
func (s *TaskService) Create(ctx context.Context, ownerID, listUuid string, req models.CreateTaskRequest) (models.Result, error) {
	fails := presenceFails(req)
	if !ident.IsValidUuid(listUuid) {
		fails = append(fails, msgInvalidListUuid)
	}
	if !ident.IsValidUuid(req.Uuid) {
		fails = append(fails, msgInvalidUuid)
	}
	if len(fails) > 0 {
		return models.Fail(fails...), nil
	}

	task, err := s.repo.CreateTask(ctx, ownerID, listUuid, req.Uuid, req.Name, *req.Complete)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.Fail(msgListNotFound), nil
	}
	if errors.Is(err, apperrors.ErrDuplicateUuid) {
		return models.Fail(msgUuidTaken), nil
	}
	if err != nil {
		return models.Result{}, err
	}
	return models.Success("task", task), nil
}

// All returns the tasks of the owner's list in creation order. A list
// that is not the caller's yields an empty array, indistinguishable from
// an empty list.
func (s *TaskService) All(ctx context.Context, ownerID, listUuid string) (models.Result, error) {
	if !ident.IsValidUuid(listUuid) {
		return models.Fail(msgInvalidListUuid), nil
	}

	tasks, err := s.repo.GetTasks(ctx, ownerID, listUuid)
	if err != nil {
		return models.Result{}, err
	}
	return models.Success("tasks", tasks), nil
}

// Update rewrites name and completion of the task matched through list
// ownership. No matched row is an explicit failure.
func (s *TaskService) Update(ctx context.Context, ownerID, uuid string, req models.UpdateTaskRequest) (models.Result, error) {
	fails := presenceFails(req)
	if !ident.IsValidUuid(uuid) {
		fails = append(fails, msgInvalidUuid)
	}
	if len(fails) > 0 {
		return models.Fail(fails...), nil
	}

	task, err := s.repo.UpdateTask(ctx, ownerID, uuid, req.Name, *req.Complete)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.Fail(msgTaskNotFound), nil
	}
	if err != nil {
		return models.Result{}, err
	}
	return models.Success("task", task), nil
}

// Remove deletes the task via the ownership join. Idempotent.
func (s *TaskService) Remove(ctx context.Context, ownerID, uuid string) (models.Result, error) {
	if err := s.repo.DeleteTask(ctx, ownerID, uuid); err != nil {
		return models.Result{}, err
	}
	return models.Deleted(), nil
}
