package service

import (
	"context"
	"errors"

	apperrors "tasks/internal/domain/errors"
	"tasks/internal/domain/ident"
	"tasks/internal/domain/models"
)

type ListService struct {
	repo ListRepository
}

func NewListService(repo ListRepository) *ListService {
	return &ListService{repo: repo}
}

// Create inserts a list under ownerID. All validation messages are
// collected before failing, so a missing uuid reports both the presence
// and the format problem.
func (s *ListService) Create(ctx context.Context, ownerID string, req models.CreateListRequest) (models.Result, error) {
	fails := presenceFails(req)
	if !ident.IsValidUuid(req.Uuid) {
		fails = append(fails, msgInvalidUuid)
	}
	if len(fails) > 0 {
		return models.Fail(fails...), nil
	}

	list, err := s.repo.CreateList(ctx, ownerID, req.Uuid, req.Name)
	if errors.Is(err, apperrors.ErrDuplicateUuid) {
		return models.Fail(msgUuidTaken), nil
	}
	if err != nil {
		return models.Result{}, err
	}
	return models.Success("list", list), nil
}

// All returns every list owned by ownerID in creation order. No lists is
// an empty array, not a failure.
func (s *ListService) All(ctx context.Context, ownerID string) (models.Result, error) {
	lists, err := s.repo.GetLists(ctx, ownerID)
	if err != nil {
		return models.Result{}, err
	}
	return models.Success("lists", lists), nil
}

// Update renames the list matching both uuid and ownerID. Format and
// presence problems are reported before existence is consulted.
func (s *ListService) Update(ctx context.Context, ownerID, uuid string, req models.UpdateListRequest) (models.Result, error) {
	fails := presenceFails(req)
	if !ident.IsValidUuid(uuid) {
		fails = append(fails, msgInvalidUuid)
	}
	if len(fails) > 0 {
		return models.Fail(fails...), nil
	}

	list, err := s.repo.UpdateList(ctx, ownerID, uuid, req.Name)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.Fail(msgListNotFound), nil
	}
	if err != nil {
		return models.Result{}, err
	}
	return models.Success("list", list), nil
}

// Remove deletes the list matching ownerID and uuid, cascading its tasks.
// Idempotent: a uuid that matches nothing still succeeds.
func (s *ListService) Remove(ctx context.Context, ownerID, uuid string) (models.Result, error) {
	if err := s.repo.DeleteList(ctx, ownerID, uuid); err != nil {
		return models.Result{}, err
	}
	return models.Deleted(), nil
}
