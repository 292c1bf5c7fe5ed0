package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	watsonxdata "github.com/DrewBradfordXYZ/watsonxdata-go"
	"github.com/DrewBradfordXYZ/watsonxdata-go/auth"
)

const envPrefix = "WXDATA"

// app carries the state shared by all commands.
type app struct {
	v      *viper.Viper
	out    io.Writer
	logger *zap.Logger
}

func newApp(out io.Writer) *app {
	return &app{
		v:      viper.New(),
		out:    out,
		logger: newLogger(false),
	}
}

// newLogger writes human readable logs to stderr. Only warnings and errors are
// shown unless debug is set.
func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wxdata",
		Short:         "A CLI for the watsonx.data API",
		Long:          "wxdata lists and inspects watsonx.data buckets, databases, engines, catalogs and ingestion jobs, and runs SQL statements.",
		Version:       watsonxdata.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.v.SetEnvPrefix(envPrefix)
			a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			a.v.AutomaticEnv()
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("could not bind flags: %w", err)
			}

			if a.v.GetBool("debug") {
				a.logger = newLogger(true)
			}
			switch a.v.GetString("output") {
			case "table", "json":
			default:
				return fmt.Errorf("--output must be table or json, got %q", a.v.GetString("output"))
			}
			return nil
		},
	}

	root.PersistentFlags().String("url", "", "The watsonx.data service URL (defaults to WATSONX_DATA_URL, then the us-south endpoint)")
	root.PersistentFlags().String("auth-instance-id", "", "The instance CRN or ID sent as the AuthInstanceId header")
	root.PersistentFlags().String("apikey", "", "An IBM Cloud API key")
	root.PersistentFlags().String("iam-url", "", "The IAM token service URL (defaults to https://iam.cloud.ibm.com)")
	root.PersistentFlags().String("bearer-token", "", "A bearer token to use instead of an API key")
	root.PersistentFlags().StringP("output", "o", "table", "Output format: table or json")
	root.PersistentFlags().Bool("debug", false, "Log requests and retries")
	root.PersistentFlags().Duration("timeout", 0, "Timeout for each API call, retries included (0 means none)")

	root.AddCommand(
		a.bucketsCmd(),
		a.databasesCmd(),
		a.enginesCmd(),
		a.catalogsCmd(),
		a.schemasCmd(),
		a.tablesCmd(),
		a.ingestionCmd(),
		a.queryCmd(),
	)
	return root
}

// newClient builds an API client from the bound flags.
func (a *app) newClient() (*watsonxdata.Client, error) {
	opts := []watsonxdata.Option{
		watsonxdata.WithLogger(a.logger),
		watsonxdata.WithDebug(a.v.GetBool("debug")),
	}
	if d := a.v.GetDuration("timeout"); d > 0 {
		opts = append(opts, watsonxdata.WithTimeout(d))
	}
	if id := a.v.GetString("auth-instance-id"); id != "" {
		opts = append(opts, watsonxdata.WithAuthInstanceID(id))
	}

	switch {
	case a.v.GetString("bearer-token") != "":
		opts = append(opts, watsonxdata.WithBearerToken(a.v.GetString("bearer-token")))
	case a.v.GetString("apikey") != "":
		var iamOpts []auth.IAMOption
		if u := a.v.GetString("iam-url"); u != "" {
			iamOpts = append(iamOpts, auth.WithIAMURL(u))
		}
		opts = append(opts, watsonxdata.WithIAMAPIKey(a.v.GetString("apikey"), iamOpts...))
	default:
		a.logger.Debug("no credentials flags set, reading service configuration", zap.String("service", watsonxdata.DefaultServiceName))
		opts = append(opts, watsonxdata.WithAuthenticatorFromEnvironment(watsonxdata.DefaultServiceName))
	}

	c, err := watsonxdata.New(a.v.GetString("url"), opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create client: %w", err)
	}
	return c, nil
}
