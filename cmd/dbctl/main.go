// Command dbctl manages the schema and reference data.
package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}
