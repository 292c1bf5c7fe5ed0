// Command wxdata is a small command line client for the watsonx.data API.
//
// Usage:
//
//	wxdata [flags] <command>
//
// Commands:
//
//	buckets list|get ID        Registered object storage buckets
//	databases list             Registered databases
//	engines list [--type T]    Engines (presto, prestissimo, spark, milvus, db2, netezza, other)
//	catalogs list              Catalogs
//	schemas list CATALOG       Schemas of a catalog (--engine required)
//	tables list CATALOG SCHEMA Tables of a schema (--engine required)
//	ingestion list|get JOB     Ingestion jobs
//	query SQL                  Run a statement (--engine required)
//
// Flags are also read from WXDATA_* environment variables (e.g. WXDATA_APIKEY)
// and from a .env file in the working directory. Without --apikey or
// --bearer-token, credentials come from the WATSONX_DATA_* variables.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := newApp(os.Stdout)
	err := a.rootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		a.logger.Error("command failed", zap.Error(err))
		_ = a.logger.Sync()
		os.Exit(1)
	}
}
