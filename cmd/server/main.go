package main

import (
	"github.com/procurewatch/backend/internal/server"
	"github.com/procurewatch/backend/internal/util"
	"github.com/procurewatch/backend/pkg/logger"
	"github.com/procurewatch/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
