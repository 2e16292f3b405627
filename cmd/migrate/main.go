// Command migrate applies the embedded database migrations and exits. It
// shares the configuration and migration source with the server binary, for
// deployments that migrate as a separate step instead of on startup.
package main

import (
	"github.com/guestbook-hq/guestbook-backend/config"
	"github.com/guestbook-hq/guestbook-backend/db"
	"github.com/guestbook-hq/guestbook-backend/logger"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Migrations complete")
}
