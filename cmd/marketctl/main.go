// marketctl drives the marketplace through the relay from a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"github.com/wichananm65/upj-marketplace/internal/config"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/logger"
	"github.com/wichananm65/upj-marketplace/internal/market"
	"github.com/wichananm65/upj-marketplace/internal/query"
	"github.com/wichananm65/upj-marketplace/internal/session"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage")

type command struct {
	summary string
	// signedIn commands log in with --email and --password first.
	signedIn bool
	run      func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"register":       {summary: "create an account and sign in", run: runRegister},
	"categories":     {summary: "list product categories", run: runCategories},
	"catalog":        {summary: "browse products from other sellers", signedIn: true, run: runCatalog},
	"orders":         {summary: "list your orders as a buyer", signedIn: true, run: runOrders},
	"order":          {summary: "order a product: order <product-id> [--qty n]", signedIn: true, run: runOrder},
	"seller":         {summary: "seller overview: products, incoming orders, figures", signedIn: true, run: runSeller},
	"add-product":    {summary: "list a new product", signedIn: true, run: runAddProduct},
	"edit-product":   {summary: "edit a product: edit-product <product-id> [flags]", signedIn: true, run: runEditProduct},
	"delete-product": {summary: "delete a product: delete-product <product-id>", signedIn: true, run: runDeleteProduct},
	"confirm":        {summary: "confirm a pending order: confirm <order-id>", signedIn: true, run: runConfirm},
	"reject":         {summary: "reject a pending order: reject <order-id>", signedIn: true, run: runReject},
}

// env is what every command runs against.
type env struct {
	client   *market.Client
	owns     identity.Matcher
	relayURL string
	email    string
	password string
	timeout  time.Duration
	out      io.Writer
}

func main() {
	_ = godotenv.Load()
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "marketctl:", envelope.Message(err, err.Error()))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	cfg := config.Load()

	fs := pflag.NewFlagSet("marketctl", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.SetInterspersed(false)
	relayURL := fs.String("relay", cfg.MarketRelayURL, "relay base URL")
	email := fs.String("email", os.Getenv("MARKET_EMAIL"), "account email")
	password := fs.String("password", os.Getenv("MARKET_PASSWORD"), "account password")
	redisAddr := fs.String("redis", cfg.RedisAddr, "redis address for the read cache (empty keeps it in process)")
	cacheTTL := fs.Duration("cache-ttl", cfg.CacheTTL, "how long cached reads are served")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")
	logLevel := fs.String("log-level", "warn", "log level")
	fs.Usage = func() { usage(errOut, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(errOut, "unknown command %q\n", rest[0])
		fs.Usage()
		return errUsage
	}

	log, err := logger.New(*logLevel, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	aliases, err := identity.ParseAliases(cfg.LegacyIdentities)
	if err != nil {
		return err
	}

	store := query.Store(query.NewMemoryStore())
	if *redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer rdb.Close()
		store = query.NewRedisStore(rdb)
	}
	cache := query.New(store, query.WithTTL(*cacheTTL), query.WithLogger(log.Named("cache")))

	sess := session.New()
	e := &env{
		client:   market.New(market.NewRelayTransport(*relayURL, sess, *timeout), sess, cache, log),
		owns:     aliases.Matcher(),
		relayURL: strings.TrimRight(*relayURL, "/"),
		email:    *email,
		password: *password,
		timeout:  *timeout,
		out:      out,
	}
	if cmd.signedIn {
		if e.email == "" || e.password == "" {
			return errors.New("--email and --password are required")
		}
		if _, err := e.client.Login(ctx, e.email, e.password); err != nil {
			return err
		}
		log.Debug("signed in", zap.String("email", e.email))
	}
	return cmd.run(ctx, e, rest[1:])
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: marketctl [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-15s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "\nflags:")
	fmt.Fprint(w, fs.FlagUsages())
}
