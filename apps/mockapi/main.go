package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mockapi "github.com/springreviewer/admin/apps/mockapi/echo"
	"github.com/springreviewer/admin/core"
	logsvc "github.com/springreviewer/admin/services/logger"
	inmemdb "github.com/springreviewer/admin/storage/inmem"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	seed := flag.Bool("seed", true, "load demo data")
	flag.Parse()

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "MOCKAPI : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(false)

	db := inmemdb.Open()
	if *seed {
		if err := inmemdb.Seed(context.Background(), db); err != nil {
			logger.Fatal(fmt.Sprintf("seeding: %v", err), err)
		}
	}

	server := mockapi.NewServer(
		&mockapi.Options{
			Address:        *addr,
			DisableReqLogs: conf.Server.DisableReqLogs,
			Debug:          conf.Debug,
			Token:          conf.API.Token,
		},
		mockapi.NewDeps(db, logger),
	)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("mock server of record listening on %s", *addr))
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
