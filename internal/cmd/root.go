// Package cmd implements the taxjar command-line interface.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/bodrovis/taxjar/client"
	"github.com/bodrovis/taxjar/internal/config"
	"github.com/bodrovis/taxjar/internal/outfmt"
)

type rootFlags struct {
	Token           string
	APIURL          string
	Sandbox         bool
	Timeout         time.Duration
	Headers         map[string]string
	Output          string
	Query           string
	Debug           bool
	Async           bool
	RateLimit       float64
	RequestIDHeader string
}

// app carries per-invocation state shared by all subcommands.
type app struct {
	flags   rootFlags
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	logger  *slog.Logger
	printer *outfmt.Printer

	// newClient can be replaced in tests.
	newClient func(token string, opts ...client.Option) (*client.Client, error)
}

// Execute runs the CLI with args against the process's standard streams.
func Execute(ctx context.Context, args []string) error {
	return execute(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	a := &app{in: in, out: out, errOut: errOut, newClient: client.NewClient}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taxjar",
		Short:         "Command-line client for the TaxJar sales tax API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := outfmt.Parse(a.flags.Output)
			if err != nil {
				return usageErrorf("%v", err)
			}
			a.printer = &outfmt.Printer{Out: a.out, Mode: mode, Query: a.flags.Query}

			level := slog.LevelWarn
			if a.flags.Debug {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Token, "token", "", "API token (overrides "+config.EnvToken+" and the keyring)")
	pf.StringVar(&a.flags.APIURL, "api-url", "", "API root URL (overrides "+config.EnvAPIURL+")")
	pf.BoolVar(&a.flags.Sandbox, "sandbox", false, "use the sandbox environment")
	pf.DurationVar(&a.flags.Timeout, "timeout", 0, "per-attempt timeout (default 10s)")
	pf.StringToStringVar(&a.flags.Headers, "header", nil, "extra request header as name=value (repeatable)")
	pf.StringVarP(&a.flags.Output, "output", "o", "json", "output format: json or table")
	pf.StringVarP(&a.flags.Query, "query", "q", "", "jq expression applied to the JSON result")
	pf.BoolVar(&a.flags.Debug, "debug", false, "log every request to stderr")
	pf.BoolVar(&a.flags.Async, "async", false, "use the retrying asynchronous executor")
	pf.Float64Var(&a.flags.RateLimit, "rate-limit", 0, "max requests per second (0 means unlimited)")
	pf.StringVar(&a.flags.RequestIDHeader, "request-id-header", "", "send a fresh UUID under this header on every call")

	root.AddCommand(
		a.authCmd(),
		a.categoriesCmd(),
		a.ratesCmd(),
		a.taxCmd(),
		transactionsCmd(a, ordersResource),
		transactionsCmd(a, refundsResource),
		a.customersCmd(),
		a.nexusCmd(),
		a.validateCmd(),
		a.summaryRatesCmd(),
		a.versionCmd(),
	)
	return root
}

// client resolves credentials and builds an API client from the global flags.
func (a *app) client() (*client.Client, error) {
	s, err := config.Resolve(config.Overrides{
		Token:   a.flags.Token,
		APIURL:  a.flags.APIURL,
		Sandbox: a.flags.Sandbox,
		Timeout: a.flags.Timeout,
	})
	if err != nil {
		return nil, err
	}
	a.logger.Debug("resolved credentials", "source", s.TokenSource, "sandbox", s.Sandbox)

	opts := s.ClientOptions()
	opts = append(opts, client.WithLogger(a.logger), client.WithHeaders(a.flags.Headers))
	if a.flags.RateLimit > 0 {
		opts = append(opts, client.WithRateLimiter(rate.NewLimiter(rate.Limit(a.flags.RateLimit), 1)))
	}
	if a.flags.RequestIDHeader != "" {
		opts = append(opts, client.WithRequestIDHeader(a.flags.RequestIDHeader))
	}
	return a.newClient(s.Token, opts...)
}

// invoke runs a call on the executor picked by --async.
func invoke[T any](ctx context.Context, a *app, sync func(context.Context) (T, error), async func(context.Context) *client.Future[T]) (T, error) {
	if a.flags.Async {
		return async(ctx).Await(ctx)
	}
	return sync(ctx)
}

func invoke1[A, T any](ctx context.Context, a *app, arg A, sync func(context.Context, A) (T, error), async func(context.Context, A) *client.Future[T]) (T, error) {
	if a.flags.Async {
		return async(ctx, arg).Await(ctx)
	}
	return sync(ctx, arg)
}

func invoke2[A, B, T any](ctx context.Context, a *app, arg1 A, arg2 B, sync func(context.Context, A, B) (T, error), async func(context.Context, A, B) *client.Future[T]) (T, error) {
	if a.flags.Async {
		return async(ctx, arg1, arg2).Await(ctx)
	}
	return sync(ctx, arg1, arg2)
}

// readParams decodes a JSON document from path ("-" for stdin) into v.
func (a *app) readParams(path string, v any) error {
	if strings.TrimSpace(path) == "" {
		return usageErrorf("--file is required")
	}
	var r io.Reader
	if path == "-" {
		r = a.in
	} else {
		f, err := os.Open(path)
		if err != nil {
			return usageErrorf("open params file: %v", err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return usageErrorf("decode params %s: %v", path, err)
	}
	return nil
}
