package service

import (
	"context"

	"tasks/internal/domain/ident"
	"tasks/internal/domain/models"
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register issues a fresh account ID and persists it. Candidates are
// drawn until one does not collide with an existing row; collisions are
// astronomically unlikely but the loop must not assume a first hit.
func (s *UserService) Register(ctx context.Context) (models.Result, error) {
	id := ident.GenerateID()
	for {
		exists, err := s.repo.UserExists(ctx, id)
		if err != nil {
			return models.Result{}, err
		}
		if !exists {
			break
		}
		id = ident.GenerateID()
	}

	if err := s.repo.CreateUser(ctx, id); err != nil {
		return models.Result{}, err
	}
	return models.Success("user", models.User{ID: id}), nil
}

// Find looks an account up by ID. A malformed ID fails on format alone;
// existence is only checked for well-formed IDs.
func (s *UserService) Find(ctx context.Context, id string) (models.Result, error) {
	if !ident.IsValidID(id) {
		return models.Fail(msgInvalidID), nil
	}

	exists, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return models.Result{}, err
	}
	if !exists {
		return models.Fail(msgAccountNotFound), nil
	}
	return models.Success("user", models.User{ID: id}), nil
}

// Remove deletes an account and, through the storage cascade, every list
// and task it owns. Deleting an ID that never existed is still success.
func (s *UserService) Remove(ctx context.Context, id string) (models.Result, error) {
	if !ident.IsValidID(id) {
		return models.Fail(msgInvalidID), nil
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return models.Result{}, err
	}
	return models.Deleted(), nil
}

// Exists is the storage check behind the authentication gate.
func (s *UserService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.UserExists(ctx, id)
}
