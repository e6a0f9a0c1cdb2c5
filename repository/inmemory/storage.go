package storage

import (
	"context"
	"sort"
	"sync"

	apperrors "tasks/internal/domain/errors"
	"tasks/internal/domain/models"
)

type listRow struct {
	owner string
	name  string
	seq   int
}

type taskRow struct {
	list     string
	name     string
	complete bool
	seq      int
}

// Storage is the map-backed repository used when Postgres is unreachable
// and as the concrete repository in tests. The seq counter stands in for
// created_at so that reads come back in insertion order.
type Storage struct {
	mu    sync.Mutex
	users map[string]struct{}
	lists map[string]listRow
	tasks map[string]taskRow
	seq   int
}

func NewStorage() *Storage {
	return &Storage{
		users: make(map[string]struct{}),
		lists: make(map[string]listRow),
		tasks: make(map[string]taskRow),
	}
}

func (s *Storage) UserExists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.users[id]
	return exists, nil
}

func (s *Storage) CreateUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = struct{}{}
	return nil
}

func (s *Storage) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	for uuid, list := range s.lists {
		if list.owner == id {
			s.deleteListLocked(uuid)
		}
	}
	return nil
}

func (s *Storage) CreateList(_ context.Context, ownerID, uuid, name string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.lists[uuid]; taken {
		return nil, apperrors.ErrDuplicateUuid
	}
	s.seq++
	s.lists[uuid] = listRow{owner: ownerID, name: name, seq: s.seq}
	return &models.List{Uuid: uuid, Name: name}, nil
}

func (s *Storage) GetLists(_ context.Context, ownerID string) ([]models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	type ordered struct {
		list models.List
		seq  int
	}
	rows := []ordered{}
	for uuid, list := range s.lists {
		if list.owner == ownerID {
			rows = append(rows, ordered{list: models.List{Uuid: uuid, Name: list.name}, seq: list.seq})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	lists := make([]models.List, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, row.list)
	}
	return lists, nil
}

func (s *Storage) UpdateList(_ context.Context, ownerID, uuid, name string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, exists := s.lists[uuid]
	if !exists || list.owner != ownerID {
		return nil, apperrors.ErrNotFound
	}
	list.name = name
	s.lists[uuid] = list
	return &models.List{Uuid: uuid, Name: name}, nil
}

func (s *Storage) DeleteList(_ context.Context, ownerID, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, exists := s.lists[uuid]
	if !exists || list.owner != ownerID {
		return nil
	}
	s.deleteListLocked(uuid)
	return nil
}

func (s *Storage) deleteListLocked(uuid string) {
	delete(s.lists, uuid)
	for taskUuid, task := range s.tasks {
		if task.list == uuid {
			delete(s.tasks, taskUuid)
		}
	}
}

func (s *Storage) CreateTask(_ context.Context, ownerID, listUuid, uuid, name string, complete bool) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, exists := s.lists[listUuid]
	if !exists || list.owner != ownerID {
		return nil, apperrors.ErrNotFound
	}
	if _, taken := s.tasks[uuid]; taken {
		return nil, apperrors.ErrDuplicateUuid
	}
	s.seq++
	s.tasks[uuid] = taskRow{list: listUuid, name: name, complete: complete, seq: s.seq}
	return &models.Task{Uuid: uuid, Name: name, Complete: complete}, nil
}

func (s *Storage) GetTasks(_ context.Context, ownerID, listUuid string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	type ordered struct {
		task models.Task
		seq  int
	}
	rows := []ordered{}
	list, exists := s.lists[listUuid]
	if exists && list.owner == ownerID {
		for uuid, task := range s.tasks {
			if task.list == listUuid {
				rows = append(rows, ordered{
					task: models.Task{Uuid: uuid, Name: task.name, Complete: task.complete},
					seq:  task.seq,
				})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.task)
	}
	return tasks, nil
}

func (s *Storage) UpdateTask(_ context.Context, ownerID, uuid, name string, complete bool) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, exists := s.tasks[uuid]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	if list, ok := s.lists[task.list]; !ok || list.owner != ownerID {
		return nil, apperrors.ErrNotFound
	}
	task.name = name
	task.complete = complete
	s.tasks[uuid] = task
	return &models.Task{Uuid: uuid, Name: name, Complete: complete}, nil
}

func (s *Storage) DeleteTask(_ context.Context, ownerID, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, exists := s.tasks[uuid]
	if !exists {
		return nil
	}
	if list, ok := s.lists[task.list]; !ok || list.owner != ownerID {
		return nil
	}
	delete(s.tasks, uuid)
	return nil
}
