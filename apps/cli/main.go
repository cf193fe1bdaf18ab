// Command aurora is the terminal client of the Joga Aurora backend.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jogaaurora/aurora/core"
	logsvc "github.com/jogaaurora/aurora/services/logger"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	conf, err := core.NewConfig()
	if err != nil {
		log.Printf("loading config: %v", err)
		return 1
	}
	logger := logsvc.New(log.New(os.Stderr, "AURORA : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	if closer, ok := logger.(interface{ Close() }); ok {
		defer closer.Close()
	}

	a, err := newApp(conf, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("starting: %v", err), err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// start CLI
	cli := commandLine{app: a, ctx: ctx, out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp && err != errCrashed {
			logger.Debug("command failed", err)
			fmt.Fprintf(os.Stderr, "\nerro: %s\n", core.Notify(err, err.Error()))
		}
		return 1
	}
	return 0
}
