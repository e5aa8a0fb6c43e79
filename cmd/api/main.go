package main

import (
	"github.com/sirupsen/logrus"

	"github.com/karouieya6/enrollmentservice/internal/config"
	httpapi "github.com/karouieya6/enrollmentservice/internal/http"
	"github.com/karouieya6/enrollmentservice/internal/repo/postgres"
)

func main() {
	cfg := config.FromEnv()

	store, err := postgres.NewStore(cfg)
	if err != nil {
		logrus.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	srv, err := httpapi.NewServer(cfg, store)
	if err != nil {
		logrus.Fatalf("failed to init server: %v", err)
	}
	if err := srv.Run(); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
