package kvsecret

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/reddit/automate.go/configbp"
	"github.com/reddit/automate.go/log"
	"github.com/reddit/automate.go/logconf"
	"github.com/reddit/automate.go/secrets"
)

const defaultTimeout = 30 * time.Second

// Config is the layout of the config file.
type Config struct {
	// Log, when set, configures logging through logconf.
	// Otherwise logs go to stderr at info level.
	Log *logconf.Config `yaml:"log"`

	Secrets secrets.Config `yaml:"secrets"`
}

// Run runs kvsecret.
//
// It returns 0 to indicate success,
// and non-zero to indicate failure.
func Run() (ret int) {
	if err := RunArgs(os.Args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	return 0
}

// Whether to use managed identity.
var authMethods = map[string]bool{
	"managed": true,
	"sp":      false,
}

// RunArgs is the more customizable/testable version of Run.
//
// In production code it expects you to pass in os.Args as the arg,
// the secret value is written to stdout.
func RunArgs(args []string, stdout io.Writer) error {
	return runArgs(args, stdout, secrets.InitFromConfig)
}

type initFetcher func(cfg secrets.Config) (*secrets.Fetcher, secrets.Auth)

func runArgs(args []string, stdout io.Writer, newFetcher initFetcher) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	path := fs.String(
		"config",
		configbp.DefaultConfigPath(),
		fmt.Sprintf("The yaml config file, defaults to $%s.", configbp.ConfigPathEnv),
	)
	name := fs.String(
		"secret",
		"",
		"The name of the secret to fetch.",
	)
	vault := fs.String(
		"vault",
		"",
		"The Key Vault URL, overrides secrets.vaultURL of the config file.",
	)
	timeout := fs.Duration(
		"timeout",
		defaultTimeout,
		"The timeout for fetching the secret.",
	)
	auth := oneof[bool]{
		choices: authMethods,
	}
	fs.Var(
		&auth,
		"auth",
		fmt.Sprintf("The authentication method, one of %s. Defaults to secrets.managedIdentity of the config file, or managed when unset.", auth.choicesString()),
	)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	if *name == "" {
		return errors.New("-secret is required")
	}

	var cfg Config
	if *path != "" {
		if err := configbp.ParseStrictFile(*path, &cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if *vault != "" {
		cfg.Secrets.VaultURL = *vault
	}
	if v, ok := auth.get(); ok {
		cfg.Secrets.ManagedIdentity = &v
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if cfg.Log != nil {
		c, logger, err := logconf.InitFromConfig(*cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}
		defer c.Close()
		ctx = log.AttachLogger(ctx, logger)
	} else {
		log.InitLogger(log.InfoLevel)
	}
	defer log.Sync()
	ctx = log.Attach(ctx, log.AttachArgs{
		AdditionalPairs: map[string]interface{}{
			"secret": *name,
		},
	})

	fetcher, secretAuth := newFetcher(cfg.Secrets)
	value, err := fetcher.GetSecret(ctx, cfg.Secrets.VaultURL, *name, secretAuth)
	if err != nil {
		if secrets.IsSecretNotFound(err) {
			return fmt.Errorf("secret %q does not exist in %s: %w", *name, cfg.Secrets.VaultURL, err)
		}
		return fmt.Errorf("failed to fetch secret %q: %w", *name, err)
	}
	_, err = fmt.Fprintln(stdout, value)
	return err
}
