package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"takeout/pkg/config"
	"takeout/pkg/logger"
	"takeout/pkg/order"
	"takeout/pkg/order/memory"
	"takeout/pkg/otel"
	"takeout/pkg/restaurant"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "takeout:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, rest, err := config.Parse(args, stderr)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	log := logger.New(stderr, level, "takeout", otel.GetTraceID).With("run_id", uuid.NewString())
	defer log.Sync()

	var spanOut io.Writer
	if cfg.Trace {
		spanOut = stderr
	}
	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "takeout",
		Host:        cfg.OTLPEndpoint,
		Writer:      spanOut,
		Probability: cfg.TraceRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Error(ctx, "shutdown tracing", "error", err)
		}
	}()
	ctx = otel.InjectTracing(ctx, tp.Tracer("takeout"))

	cmd, cmdArgs := "demo", []string(nil)
	if len(rest) > 0 {
		cmd, cmdArgs = rest[0], rest[1:]
	}
	r := restaurant.New(cfg.Restaurant, memory.New(), log)

	switch cmd {
	case "demo":
		return demo(ctx, r, cfg.OrdersFile, stdout)
	case "list":
		if err := load(ctx, r, cfg.OrdersFile); err != nil {
			return err
		}
		return r.DisplayOrders(ctx, stdout)
	case "add":
		return add(ctx, r, cfg.OrdersFile, cmdArgs, stderr)
	case "modify":
		return modify(ctx, r, cfg.OrdersFile, cmdArgs, stderr)
	case "delete":
		return remove(ctx, r, cfg.OrdersFile, cmdArgs, stderr)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// load reads path into r. A file that cannot be read or parsed leaves r
// empty and is not an error; an unknown order variant is.
func load(ctx context.Context, r *restaurant.Restaurant, path string) error {
	err := r.LoadOrdersFromFile(ctx, path)
	if err != nil && !errors.Is(err, order.ErrIO) {
		return err
	}
	return nil
}

// save writes r to path. A file that cannot be written has already been
// logged and is not an error.
func save(ctx context.Context, r *restaurant.Restaurant, path string) error {
	err := r.SaveOrdersToFile(ctx, path)
	if err != nil && !errors.Is(err, order.ErrIO) {
		return err
	}
	return nil
}

func demo(ctx context.Context, r *restaurant.Restaurant, path string, stdout io.Writer) error {
	if err := load(ctx, r, path); err != nil {
		return err
	}

	for _, o := range []order.Order{
		order.NewDineIn("John Doe", "Burger", 2, decimal.RequireFromString("20.00")),
		order.NewTakeout("Jane Smith", "Pasta", 1, decimal.RequireFromString("15.00"), "123 Main St"),
		order.NewDelivery("Mike Johnson", "Pizza", 3, decimal.RequireFromString("30.00"), "456 Elm St", "Mike's Pizza"),
	} {
		if err := r.AddOrder(ctx, o); err != nil {
			return err
		}
	}
	if err := r.DisplayOrders(ctx, stdout); err != nil {
		return err
	}

	updated := order.NewTakeout("Jane Smith", "Pasta", 2, decimal.RequireFromString("30.00"), "123 Main St")
	if _, err := r.ModifyOrder(ctx, "Jane Smith", "Pasta", updated); err != nil {
		return err
	}
	if _, err := r.DeleteOrder(ctx, "John Doe", "Burger"); err != nil {
		return err
	}
	if err := r.DisplayOrders(ctx, stdout); err != nil {
		return err
	}
	return save(ctx, r, path)
}

func add(ctx context.Context, r *restaurant.Restaurant, path string, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var of orderFlags
	of.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	o, err := of.build()
	if err != nil {
		return err
	}

	if err := load(ctx, r, path); err != nil {
		return err
	}
	if err := r.AddOrder(ctx, o); err != nil {
		return err
	}
	return save(ctx, r, path)
}

func modify(ctx context.Context, r *restaurant.Restaurant, path string, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("modify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var of orderFlags
	of.register(fs)
	matchCustomer := fs.String("match-customer", "", "customer of the order to replace (default: -customer)")
	matchItem := fs.String("match-item", "", "item of the order to replace (default: -item)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	o, err := of.build()
	if err != nil {
		return err
	}
	if *matchCustomer == "" {
		*matchCustomer = o.CustomerName
	}
	if *matchItem == "" {
		*matchItem = o.ItemName
	}

	if err := load(ctx, r, path); err != nil {
		return err
	}
	if _, err := r.ModifyOrder(ctx, *matchCustomer, *matchItem, o); err != nil {
		return err
	}
	return save(ctx, r, path)
}

func remove(ctx context.Context, r *restaurant.Restaurant, path string, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(stderr)
	customer := fs.String("customer", "", "customer name")
	item := fs.String("item", "", "item name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *customer == "" || *item == "" {
		return errors.New("delete: -customer and -item are required")
	}

	if err := load(ctx, r, path); err != nil {
		return err
	}
	if _, err := r.DeleteOrder(ctx, *customer, *item); err != nil {
		return err
	}
	return save(ctx, r, path)
}

type orderFlags struct {
	kind     string
	customer string
	item     string
	quantity int
	price    string
	address  string
	company  string
}

func (f *orderFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.kind, "type", "dinein", "order type: dinein, takeout, delivery")
	fs.StringVar(&f.customer, "customer", "", "customer name")
	fs.StringVar(&f.item, "item", "", "item name")
	fs.IntVar(&f.quantity, "quantity", 1, "quantity")
	fs.StringVar(&f.price, "price", "0", "total price")
	fs.StringVar(&f.address, "address", "", "pickup or delivery address")
	fs.StringVar(&f.company, "company", "", "delivery company")
}

func (f *orderFlags) build() (order.Order, error) {
	if f.customer == "" || f.item == "" {
		return order.Order{}, errors.New("-customer and -item are required")
	}
	kind, err := order.ParseKind(f.kind)
	if err != nil {
		return order.Order{}, err
	}
	price, err := decimal.NewFromString(f.price)
	if err != nil {
		return order.Order{}, fmt.Errorf("price: %w", err)
	}

	switch kind {
	case order.KindTakeout:
		return order.NewTakeout(f.customer, f.item, f.quantity, price, f.address), nil
	case order.KindDelivery:
		return order.NewDelivery(f.customer, f.item, f.quantity, price, f.address, f.company), nil
	}
	return order.NewDineIn(f.customer, f.item, f.quantity, price), nil
}
