// Command shop is the storefront client: browse the catalog, keep a cart,
// submit tailoring measurements, place and track orders, and run the admin
// screen.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/logger"
)

const usage = `usage: shop <command> [flags]

commands:
  products [-category mens|womens]
  cart list|add|qty|rm|note|move|clear
  tailor   submit measurements and add the custom suit to the cart
  order    place an order for the cart (or -items)
  track    look up an order by id and email or phone
  subscribe <email>
  contact  send a message to the shop
  admin    manage orders (admin hash-password prints a password hash)
`

// errUsage marks argument errors; main prints the usage text for them.
var errUsage = errors.New("invalid usage")

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "shop",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Output:      os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		os.Exit(1)
	}
}

// app carries what every subcommand needs.
type app struct {
	cfg    *config.ClientConfig
	logg   *logger.Logger
	client *storefront.Client
	in     io.Reader
	out    io.Writer
}

func newApp(cfg *config.ClientConfig, logg *logger.Logger, in io.Reader, out io.Writer) (*app, error) {
	client, err := storefront.NewClient(cfg.APIBaseURL,
		storefront.WithOrderTimeout(cfg.OrderTimeout),
		storefront.WithShortTimeout(cfg.SubscribeTimeout),
		storefront.WithAdminToken(cfg.AdminToken),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logg: logg, client: client, in: in, out: out}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.products(ctx, rest)
	case "cart":
		return a.cart(ctx, rest)
	case "tailor":
		return a.tailor(ctx, rest)
	case "order":
		return a.order(ctx, rest)
	case "track":
		return a.track(ctx, rest)
	case "subscribe":
		return a.subscribe(ctx, rest)
	case "contact":
		return a.contact(ctx, rest)
	case "admin":
		return a.admin(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// describe prefers the message the server sent over transport detail.
func describe(err error) string {
	if msg := storefront.ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
