package service

import (
	"context"

	"tasks/internal/domain/models"

	"github.com/go-playground/validator"
)

// Client-facing validation messages. Wording is part of the API contract.
const (
	msgInvalidID        = "ID is not a valid format"
	msgAccountNotFound  = "Account does not exist with ID"
	msgUuidRequired     = "Uuid must be provided"
	msgNameRequired     = "Name must be provided"
	msgCompleteRequired = "Complete must be provided"
	msgInvalidUuid      = "Uuid is not in valid v4 format"
	msgInvalidListUuid  = "List uuid is not in valid v4 format"
	msgListNotFound     = "List does not exist"
	msgTaskNotFound     = "Task does not exist"
	msgUuidTaken        = "Uuid already exists"
)

type UserRepository interface {
	UserExists(ctx context.Context, id string) (bool, error)
	CreateUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

type ListRepository interface {
	CreateList(ctx context.Context, ownerID, uuid, name string) (*models.List, error)
	GetLists(ctx context.Context, ownerID string) ([]models.List, error)
	UpdateList(ctx context.Context, ownerID, uuid, name string) (*models.List, error)
	DeleteList(ctx context.Context, ownerID, uuid string) error
}

type TaskRepository interface {
	CreateTask(ctx context.Context, ownerID, listUuid, uuid, name string, complete bool) (*models.Task, error)
	GetTasks(ctx context.Context, ownerID, listUuid string) ([]models.Task, error)
	UpdateTask(ctx context.Context, ownerID, uuid, name string, complete bool) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, uuid string) error
}

// presenceFails runs the required-field checks on a request struct and
// maps each failing field to its contract message. validator reports
// fields in declaration order, which fixes the message order.
func presenceFails(req any) []string {
	valid := validator.New()
	err := valid.Struct(req)
	if err == nil {
		return nil
	}

	var fails []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			switch verr.Field() {
			case "Uuid":
				fails = append(fails, msgUuidRequired)
			case "Name":
				fails = append(fails, msgNameRequired)
			case "Complete":
				fails = append(fails, msgCompleteRequired)
			}
		}
	}
	return fails
}
