package main

import (
	"os"

	"github.com/itemlab/itemlab/internal/config"
	"github.com/itemlab/itemlab/internal/inspect"
	"github.com/itemlab/itemlab/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger("dbinspect", cfg.LogLevel)
	defer log.Sync()

	inspector := inspect.New(os.Stdout)

	// Engine errors are reported, never propagated; the inspector always
	// exits cleanly.
	if err := inspector.DumpFile(cfg.DBDSN); err != nil {
		log.Error("Database inspection failed", zap.Error(err))
	}
}
