package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/migeprof/fehub/apps/web/echo"
	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
	emailsvc "github.com/migeprof/fehub/services/email"
	logsvc "github.com/migeprof/fehub/services/logger"
)

func main() {
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(core.Conf.IsDeployed())

	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	client, err := backend.NewClient(core.Conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up backend client: %v", err), err)
	}

	app := echoweb.NewServer(&echoweb.Options{
		Address: fmt.Sprintf("%s:%d", core.Conf.Server.Host, core.Conf.Server.Port),
		Client:  client,
		Mail:    mailSvc,
		Logger:  logger,
	})

	go app.Start()
	logger.Info(fmt.Sprintf("%s started on %s:%d", core.Conf.AppName, core.Conf.Server.Host, core.Conf.Server.Port))

	// graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: start shutdown", sig))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("stopping server: %v", err), err)
	}
	logger.Info("server stopped")
}
