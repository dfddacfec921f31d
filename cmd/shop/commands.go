package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/tailorline/storefront/internal/cart"
	"github.com/tailorline/storefront/internal/checkout"
	"github.com/tailorline/storefront/internal/pricing"
	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/internal/tracking"
	"github.com/tailorline/storefront/pkg/enums"
)

func (a *app) products(ctx context.Context, args []string) error {
	fs := newFlagSet("products", a.out)
	category := fs.String("category", "", "mens or womens")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	products, err := a.client.ListProducts(ctx, *category)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found")
		return nil
	}
	t := newTable("ID", "NAME", "CATEGORY", "PRICE", "SIZES", "STOCK")
	for _, p := range products {
		t.Row(strconv.FormatInt(p.ID, 10), p.Name, p.Category.String(), pricing.FormatCurrency(p.Price),
			strings.Join(p.Sizes, " "), strconv.Itoa(p.Stock))
	}
	fmt.Fprintln(a.out, t.Render())
	return nil
}

func (a *app) tailor(ctx context.Context, args []string) error {
	fs := newFlagSet("tailor", a.out)
	var req storefront.TailoringRequest
	var size, fit, bottom, fabric, lapels, image string
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.Float64Var(&req.Chest, "chest", 0, "chest in inches")
	fs.Float64Var(&req.Waist, "waist", 0, "waist in inches")
	fs.Float64Var(&req.ArmLength, "arm", 0, "arm length in inches")
	fs.Float64Var(&req.Shoulder, "shoulder", 0, "shoulder width in inches")
	fs.StringVar(&size, "size", "", "XS, S, M, L or XL")
	fs.StringVar(&req.Color, "color", "", "suit color")
	fs.StringVar(&fit, "fit", string(enums.FitStyleRegular), "Slim, Regular, Tailored or Loose")
	fs.StringVar(&bottom, "bottom", "", "trouser or skirt (women's suits)")
	fs.StringVar(&fabric, "fabric", string(enums.FabricNormalPlain), "fabric grade")
	fs.StringVar(&lapels, "lapels", string(enums.LapelsNotch), "Notch, Peak or Shawl")
	fs.BoolVar(&req.IsWomensSuit, "womens", false, "women's suit")
	fs.StringVar(&req.AdditionalDescription, "notes", "", "anything else the tailor should know")
	fs.StringVar(&image, "image", "", "reference photo (JPEG or PNG, up to 5MB)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	req.Size = enums.SuitSize(size)
	req.FitStyle = enums.FitStyle(fit)
	req.BottomStyle = enums.BottomStyle(bottom)
	req.Fabric = enums.Fabric(fabric)
	req.Lapels = enums.Lapels(lapels)
	if image != "" {
		data, err := os.ReadFile(image)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		req.Image = data
		req.ImageName = filepath.Base(image)
	}

	rec, err := a.client.SubmitTailoring(ctx, req)
	if err != nil {
		printFieldErrors(a, err)
		return err
	}

	store, closeFn, err := a.openCart(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	line := cart.TailoringLine(*rec)
	store.Reconcile(ctx, cart.NewSelection(line))

	fmt.Fprintln(a.out, okStyle.Render("Measurements saved"))
	fmt.Fprintf(a.out, "Added %s (%s) to cart at %s\n", line.Name, line.Fabric, pricing.FormatCurrency(line.Price))
	fmt.Fprintf(a.out, "Estimated delivery: %s\n", pricing.NewEstimator(nil).EstimatedDeliveryLabel(line.Fabric))
	return nil
}

func (a *app) order(ctx context.Context, args []string) error {
	fs := newFlagSet("order", a.out)
	var form checkout.OrderForm
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Phone, "phone", "", "phone number")
	items := fs.String("items", "", "comma separated cart keys to order (default: whole cart)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sel := checkout.SelectAll()
	if strings.TrimSpace(*items) != "" {
		var keys []cart.Key
		for _, raw := range strings.Split(*items, ",") {
			key, err := parseKey(raw)
			if err != nil {
				return err
			}
			keys = append(keys, key)
		}
		sel = checkout.Select(keys...)
	}

	store, closeFn, err := a.openCart(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	wf, err := checkout.NewWorkflow(store, a.client, a.logg)
	if err != nil {
		return err
	}
	wf.SetForm(form)
	res := wf.Submit(ctx, sel)
	if !res.OK() {
		for field, msg := range res.FieldErrors {
			fmt.Fprintf(a.out, "  %s: %s\n", field, failStyle.Render(msg))
		}
		return fmt.Errorf("%s", res.Message)
	}

	conf := res.Confirmation
	fmt.Fprintln(a.out, okStyle.Render(res.Message))
	fabrics := make([]string, 0, len(conf.Items))
	for _, l := range conf.Items {
		fmt.Fprintf(a.out, "  %d × %s\n", l.Quantity, l.Name)
		if l.Fabric != "" {
			fabrics = append(fabrics, l.Fabric)
		}
	}
	fmt.Fprintf(a.out, "Total: %s\n", pricing.FormatCurrency(conf.Total))
	fmt.Fprintf(a.out, "Status: %s\n", conf.Status)
	fmt.Fprintln(a.out, mutedStyle.Render("Estimated delivery: "+pricing.FormatLongDate(pricing.DeliveryDateFor(time.Now(), fabrics...))))
	return nil
}

func (a *app) track(ctx context.Context, args []string) error {
	fs := newFlagSet("track", a.out)
	var q tracking.Query
	fs.StringVar(&q.OrderID, "id", "", "order id")
	fs.StringVar(&q.EmailOrPhone, "contact", "", "email or phone used for the order")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	wf, err := tracking.NewWorkflow(a.client, a.logg)
	if err != nil {
		return err
	}
	res := wf.Track(ctx, q)
	if res.Outcome != tracking.OutcomeFound {
		return fmt.Errorf("%s", res.Message)
	}

	o := res.Order
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	fmt.Fprintln(a.out, okStyle.Render(res.Message))
	fmt.Fprintf(a.out, "Order #%d: %s\n", o.OrderID, o.Status)
	fmt.Fprintln(a.out, bar.ViewAs(float64(res.Progress())/100))
	for _, it := range o.Items {
		fmt.Fprintf(a.out, "  %d × %s\n", it.Quantity, it.Name)
	}
	fmt.Fprintf(a.out, "Placed: %s\n", pricing.FormatLongDate(o.CreatedAt))
	if o.EstimatedDelivery != "" {
		fmt.Fprintf(a.out, "Estimated delivery: %s\n", o.EstimatedDelivery)
	}
	return nil
}

func (a *app) subscribe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: subscribe <email>", errUsage)
	}
	msg, err := a.client.Subscribe(ctx, strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render(msg))
	return nil
}

func (a *app) contact(ctx context.Context, args []string) error {
	fs := newFlagSet("contact", a.out)
	var req storefront.ContactRequest
	fs.StringVar(&req.Name, "name", "", "your name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Message, "message", "", "message")
	fs.BoolVar(&req.IsTailoringRequest, "tailoring", false, "the message is about a tailoring request")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	msg, err := a.client.Contact(ctx, req)
	if err != nil {
		printFieldErrors(a, err)
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render(msg))
	return nil
}

// printFieldErrors lists the per-field messages of a validation failure.
func printFieldErrors(a *app, err error) {
	var apiErr *storefront.APIError
	if !errors.As(err, &apiErr) {
		return
	}
	for field, msgs := range apiErr.Fields {
		for _, m := range msgs {
			fmt.Fprintf(a.out, "  %s: %s\n", field, failStyle.Render(m))
		}
	}
}
