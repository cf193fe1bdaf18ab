// Command devserver runs an in-memory backend honouring the REST contract, for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jogaaurora/aurora/apps/devserver/echo"
	"github.com/jogaaurora/aurora/core"
	logsvc "github.com/jogaaurora/aurora/services/logger"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.New(log.New(os.Stdout, "DEVSERVER : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	db := inmemdb.Open()
	if conf.DevServer.Seed {
		if err = inmemdb.Seed(db); err != nil {
			logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
		}
		logger.Info(fmt.Sprintf("seeded accounts %q and %q (password %q)",
			inmemdb.SeedAdminUsername, inmemdb.SeedTeacherUsername, inmemdb.SeedPassword))
	}

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q build %q", conf.Version, conf.Build))
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(conf.DevServer.Address, shutdown, &echoapi.Deps{
		Conf:      conf,
		Logger:    logger,
		DB:        db,
		Validator: core.NewValidator(),
	})
	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
