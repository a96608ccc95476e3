package main

import (
	"log"
	"os"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	client, err := backend.NewClient(core.Conf)
	if err != nil {
		logger.Fatal(err)
	}

	cli := commandLine{client: client}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
