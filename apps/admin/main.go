package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/springreviewer/admin/core"
	logsvc "github.com/springreviewer/admin/services/logger"
	"github.com/springreviewer/admin/services/notify"
	"github.com/springreviewer/admin/storage/restapi"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	client := restapi.New(conf, logger)

	// start CLI
	cli := commandLine{
		conf:     conf,
		deps:     core.NewDeps(notify.NewConsole(os.Stdout), logger),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		users:    client.Users(),
		subjects: client.Subjects(),
		teachers: client.Teachers(),
		linker:   client.TeacherSubjects(),
		reviews:  client.Reviews(),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
