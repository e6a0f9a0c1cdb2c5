package db

import (
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migration applies all pending migrations from migratePath against dbDSN.
// An already up-to-date schema is not an error.
func Migration(dbDSN, migratePath string) error {
	if dbDSN == "" {
		return errors.New("database connection string is empty")
	}
	if migratePath == "" {
		return errors.New("migrate path is empty")
	}

	m, err := migrate.New("file://"+migratePath, dbDSN)
	if err != nil {
		log.Println("[ERROR] Failed to initialize migrations:", err)
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Println("[WARN] Failed to close migration source:", srcErr)
		}
		if dbErr != nil {
			log.Println("[WARN] Failed to close migration database:", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Println("[ERROR] Failed to apply migrations:", err)
		return err
	}
	return nil
}
