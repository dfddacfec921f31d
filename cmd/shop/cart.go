package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tailorline/storefront/internal/cart"
	"github.com/tailorline/storefront/internal/pricing"
	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/enums"
	"github.com/tailorline/storefront/pkg/redis"
)

// openCart loads the cart from the configured backend. The returned close
// function releases the redis connection when one was opened.
func (a *app) openCart(ctx context.Context) (*cart.Store, func() error, error) {
	switch a.cfg.CartBackend {
	case config.CartBackendRedis:
		client, err := redis.New(ctx, config.RedisConfig{
			URL:          a.cfg.RedisURL,
			PoolSize:     2,
			MinIdleConns: 0,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}, a.logg)
		if err != nil {
			return nil, nil, err
		}
		store := cart.NewStore(ctx, cart.NewRedisStorage(client, 0), a.cfg.CartKey, a.logg)
		return store, client.Close, nil
	default:
		store := cart.NewStore(ctx, cart.NewFileStorage(a.cfg.CartDir), a.cfg.CartKey, a.logg)
		return store, func() error { return nil }, nil
	}
}

func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	store, closeFn, err := a.openCart(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		printCart(a.out, store.Lines(), time.Now())
		return nil

	case "add":
		if len(rest) < 1 || len(rest) > 2 {
			return fmt.Errorf("%w: cart add <productId> [qty]", errUsage)
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: product id must be a number", errUsage)
		}
		qty := 1
		if len(rest) == 2 {
			if qty, err = parseQuantity(rest[1]); err != nil {
				return err
			}
		}
		products, err := a.client.ListProducts(ctx, "")
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ID == id {
				store.AddLine(ctx, cart.ProductLine(p, qty))
				fmt.Fprintf(a.out, "Added %d × %s to cart\n", qty, p.Name)
				return nil
			}
		}
		return fmt.Errorf("product %d not found", id)

	case "qty":
		if len(rest) != 2 {
			return fmt.Errorf("%w: cart qty <key> <quantity>", errUsage)
		}
		key, err := parseKey(rest[0])
		if err != nil {
			return err
		}
		qty, err := parseQuantity(rest[1])
		if err != nil {
			return err
		}
		if !store.SetQuantity(ctx, key, qty) {
			return fmt.Errorf("%s is not in the cart", key)
		}
		return nil

	case "rm":
		if len(rest) == 0 {
			return fmt.Errorf("%w: cart rm <key>...", errUsage)
		}
		keys := make([]cart.Key, 0, len(rest))
		for _, raw := range rest {
			key, err := parseKey(raw)
			if err != nil {
				return err
			}
			keys = append(keys, key)
		}
		fmt.Fprintf(a.out, "Removed %d item(s)\n", store.RemoveLines(ctx, keys))
		return nil

	case "note":
		if len(rest) < 1 {
			return fmt.Errorf("%w: cart note <key> [text]", errUsage)
		}
		key, err := parseKey(rest[0])
		if err != nil {
			return err
		}
		if !store.SetCustomDescription(ctx, key, strings.Join(rest[1:], " ")) {
			return fmt.Errorf("%s is not in the cart", key)
		}
		return nil

	case "move":
		if len(rest) != 2 {
			return fmt.Errorf("%w: cart move <from> <to>", errUsage)
		}
		from, errFrom := strconv.Atoi(rest[0])
		to, errTo := strconv.Atoi(rest[1])
		if errFrom != nil || errTo != nil {
			return fmt.Errorf("%w: positions must be numbers", errUsage)
		}
		if !store.Move(ctx, from-1, to-1) {
			return fmt.Errorf("positions must be between 1 and %d", store.Len())
		}
		return nil

	case "clear":
		store.Clear(ctx)
		fmt.Fprintln(a.out, "Cart cleared")
		return nil

	default:
		return fmt.Errorf("%w: unknown cart command %q", errUsage, sub)
	}
}

// parseKey accepts "custom:12", "standard:3" or a bare product id.
func parseKey(raw string) (cart.Key, error) {
	kind, id, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		id, kind = kind, enums.ItemTypeStandard.String()
	}
	itemType, err := enums.ParseItemType(kind)
	if err != nil {
		return cart.Key{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return cart.Key{}, fmt.Errorf("%w: invalid item id %q", errUsage, id)
	}
	return cart.Key{ID: n, ItemType: itemType}, nil
}

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 1 {
		return 0, fmt.Errorf("%w: quantity must be a positive number", errUsage)
	}
	return qty, nil
}

func printCart(w io.Writer, lines []cart.Line, now time.Time) {
	if len(lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}
	t := newTable("#", "KEY", "ITEM", "QTY", "PRICE", "SUBTOTAL")
	fabrics := make([]string, 0, len(lines))
	for i, l := range lines {
		name := l.Name
		if l.Fabric != "" {
			name += " (" + l.Fabric + ")"
			fabrics = append(fabrics, l.Fabric)
		}
		if l.CustomDescription != "" {
			name += "\nnote: " + l.CustomDescription
		}
		t.Row(strconv.Itoa(i+1), l.Key().String(), name, strconv.Itoa(l.Quantity),
			pricing.FormatCurrency(l.Price), pricing.FormatCurrency(pricing.LineTotal(l)))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Total: %s\n", pricing.FormatCurrency(pricing.CartTotal(lines)))
	fmt.Fprintf(w, "Estimated delivery: %s\n", pricing.FormatLongDate(pricing.DeliveryDateFor(now, fabrics...)))
}

// newFlagSet returns a flag set whose parse errors come back as usage errors.
func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}
