package db

import (
	"context"
	"errors"
	"log"
	"time"

	apperrors "tasks/internal/domain/errors"
	"tasks/internal/domain/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 15 * time.Second

type Storage struct {
	pool *pgxpool.Pool

	queryUserExists string
	queryCreateUser string
	queryDeleteUser string
	queryCreateList string
	queryGetLists   string
	queryUpdateList string
	queryDeleteList string
	queryCreateTask string
	queryGetTasks   string
	queryUpdateTask string
	queryDeleteTask string
}

func NewStorage(connStr string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Println("[ERROR] Failed to parse database connection string:", err)
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Println("[ERROR] Failed to create connection pool:", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Println("[ERROR] Failed to reach database:", err)
		return nil, apperrors.ErrDatabaseConnection
	}

	s := &Storage{
		pool:            pool,
		queryUserExists: `SELECT id FROM "user" WHERE id=$1 LIMIT 1`,
		queryCreateUser: `INSERT INTO "user" (id) VALUES ($1) RETURNING id`,
		queryDeleteUser: `DELETE FROM "user" WHERE id=$1`,
		queryCreateList: `INSERT INTO list ("user", name, uuid) VALUES ($1, $2, $3) RETURNING uuid, name`,
		queryGetLists:   `SELECT uuid, name FROM list WHERE "user"=$1 ORDER BY created_at ASC`,
		queryUpdateList: `UPDATE list SET name=$3 WHERE "user"=$1 AND uuid=$2 RETURNING uuid, name`,
		queryDeleteList: `DELETE FROM list WHERE "user"=$1 AND uuid=$2`,
		queryCreateTask: `INSERT INTO task (list, name, complete, uuid)
			SELECT list.uuid, $3, $4, $5 FROM list WHERE list."user"=$1 AND list.uuid=$2
			RETURNING uuid, name, complete`,
		queryGetTasks: `SELECT task.uuid, task.name, task.complete FROM task
			LEFT JOIN list ON list.uuid=task.list
			WHERE list."user"=$1 AND list.uuid=$2 ORDER BY task.created_at ASC`,
		queryUpdateTask: `UPDATE task SET name=$3, complete=$4 FROM list
			WHERE list.uuid=task.list AND list."user"=$1 AND task.uuid=$2
			RETURNING task.uuid, task.name, task.complete`,
		queryDeleteTask: `DELETE FROM task USING list
			WHERE task.list=list.uuid AND list."user"=$1 AND task.uuid=$2`,
	}
	log.Println("[SUCCESS] Database connection established")
	return s, nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

// withTx runs fn inside a single begin/commit. The transaction is rolled
// back on any error and the pooled connection is released on every exit
// path.
func (s *Storage) withTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		log.Println("[ERROR] Failed to begin transaction:", err)
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Storage) UserExists(ctx context.Context, id string) (bool, error) {
	exists := false
	err := s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var found string
		err := tx.QueryRow(ctx, s.queryUserExists, id).Scan(&found)
		if err == nil {
			exists = true
			return nil
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		log.Println("[ERROR] Failed to look up user:", err)
		return err
	})
	return exists, err
}

func (s *Storage) CreateUser(ctx context.Context, id string) error {
	return s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var created string
		if err := tx.QueryRow(ctx, s.queryCreateUser, id).Scan(&created); err != nil {
			log.Println("[ERROR] Failed to create user:", err)
			return err
		}
		log.Println("[SUCCESS] User created:", created)
		return nil
	})
}

func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	return s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, s.queryDeleteUser, id); err != nil {
			log.Println("[ERROR] Failed to delete user:", err)
			return err
		}
		return nil
	})
}

func (s *Storage) CreateList(ctx context.Context, ownerID, uuid, name string) (*models.List, error) {
	list := &models.List{}
	err := s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, s.queryCreateList, ownerID, name, uuid).Scan(&list.Uuid, &list.Name)
		if err != nil {
			if isDuplicateKey(err) {
				return apperrors.ErrDuplicateUuid
			}
			log.Println("[ERROR] Failed to create list:", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Storage) GetLists(ctx context.Context, ownerID string) ([]models.List, error) {
	lists := []models.List{}
	err := s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, s.queryGetLists, ownerID)
		if err != nil {
			log.Println("[ERROR] Failed to query lists:", err)
			return err
		}
		defer rows.Close()

		for rows.Next() {
			list := models.List{}
			if err := rows.Scan(&list.Uuid, &list.Name); err != nil {
				log.Println("[ERROR] Failed to read list row:", err)
				return err
			}
			lists = append(lists, list)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *Storage) UpdateList(ctx context.Context, ownerID, uuid, name string) (*models.List, error) {
	list := &models.List{}
	err := s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, s.queryUpdateList, ownerID, uuid, name).Scan(&list.Uuid, &list.Name)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			log.Println("[ERROR] Failed to update list:", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Storage) DeleteList(ctx context.Context, ownerID, uuid string) error {
	return s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, s.queryDeleteList, ownerID, uuid); err != nil {
			log.Println("[ERROR] Failed to delete list:", err)
			return err
		}
		return nil
	})
}

func (s *Storage) CreateTask(ctx context.Context, ownerID, listUuid, uuid, name string, complete bool) (*models.Task, error) {
	task := &models.Task{}
	err := s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, s.queryCreateTask, ownerID, listUuid, name, complete, uuid).
			Scan(&task.Uuid, &task.Name, &task.Complete)
		if errors.Is(err, pgx.ErrNoRows) {
			// The ownership join matched no list.
			return apperrors.ErrNotFound
		}
		if err != nil {
			if isDuplicateKey(err) {
				return apperrors.ErrDuplicateUuid
			}
			log.Println("[ERROR] Failed to create task:", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Storage) GetTasks(ctx context.Context, ownerID, listUuid string) ([]models.Task, error) {
	tasks := []models.Task{}
	err := s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, s.queryGetTasks, ownerID, listUuid)
		if err != nil {
			log.Println("[ERROR] Failed to query tasks:", err)
			return err
		}
		defer rows.Close()

		for rows.Next() {
			task := models.Task{}
			if err := rows.Scan(&task.Uuid, &task.Name, &task.Complete); err != nil {
				log.Println("[ERROR] Failed to read task row:", err)
				return err
			}
			tasks = append(tasks, task)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, ownerID, uuid, name string, complete bool) (*models.Task, error) {
	task := &models.Task{}
	err := s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, s.queryUpdateTask, ownerID, uuid, name, complete).
			Scan(&task.Uuid, &task.Name, &task.Complete)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			log.Println("[ERROR] Failed to update task:", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Storage) DeleteTask(ctx context.Context, ownerID, uuid string) error {
	return s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, s.queryDeleteTask, ownerID, uuid); err != nil {
			log.Println("[ERROR] Failed to delete task:", err)
			return err
		}
		return nil
	})
}
