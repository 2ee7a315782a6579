// Команда loadtest гоняет сценарии покупателей против gRPC API витрины и
// печатает сводку по задержкам и кодам ответов.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	storefrontv1 "github.com/vladislavdragonenkov/storefront/api/storefront/v1"
)

const idempotencyHeader = "idempotency-key"

type loadMode string

const (
	modeBrowse        loadMode = "browse"
	modeCheckout      loadMode = "checkout"
	modeCheckoutPromo loadMode = "checkout-promo"
)

var errReplayMismatch = errors.New("replayed PlaceOrder returned a different order")

type config struct {
	addr        string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	connections int
	timeout     time.Duration
	mode        loadMode
	productID   string
	quantity    int
	promoCode   string
	replayRate  int
	sessionTag  string
	outputPath  string
}

func parseConfig(args []string) (config, error) {
	var cfg config
	var modeValue string

	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios to execute in count mode; in duration mode only used when explicitly set")
	fs.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 10m, 15m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 20, "number of gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.StringVar(&modeValue, "mode", string(modeCheckout), "load mode: browse | checkout | checkout-promo")
	fs.StringVar(&cfg.productID, "product", "p1", "product id added to every cart")
	fs.IntVar(&cfg.quantity, "quantity", 1, "quantity of the product per cart")
	fs.StringVar(&cfg.promoCode, "promo", "SAVE10", "promo code for checkout-promo mode")
	fs.IntVar(&cfg.replayRate, "replay-rate", 0, "percent of checkouts that resend PlaceOrder with the same idempotency key (0..100)")
	fs.StringVar(&cfg.sessionTag, "session-tag", "load", "session id prefix")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return cfg, err
	}
	cfg.mode = mode
	cfg.productID = strings.TrimSpace(cfg.productID)
	cfg.promoCode = strings.TrimSpace(cfg.promoCode)
	cfg.sessionTag = strings.TrimSpace(cfg.sessionTag)

	if cfg.duration < 0 {
		return cfg, errors.New("duration must be >= 0")
	}
	if cfg.duration == 0 && cfg.total <= 0 {
		return cfg, errors.New("total must be > 0 when duration is not set")
	}
	if cfg.duration > 0 && cfg.totalSet && cfg.total <= 0 {
		return cfg, errors.New("total must be > 0 when explicitly set with duration")
	}
	if cfg.concurrency <= 0 {
		return cfg, errors.New("concurrency must be > 0")
	}
	if cfg.connections <= 0 {
		return cfg, errors.New("connections must be > 0")
	}
	if cfg.timeout <= 0 {
		return cfg, errors.New("timeout must be > 0")
	}
	if cfg.quantity <= 0 {
		return cfg, errors.New("quantity must be > 0")
	}
	if cfg.replayRate < 0 || cfg.replayRate > 100 {
		return cfg, errors.New("replay-rate must be between 0 and 100")
	}
	if cfg.productID == "" {
		return cfg, errors.New("product is required")
	}
	if cfg.mode == modeCheckoutPromo && cfg.promoCode == "" {
		return cfg, errors.New("promo is required in checkout-promo mode")
	}
	if cfg.sessionTag == "" {
		return cfg, errors.New("session-tag is required")
	}

	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch mode := loadMode(strings.TrimSpace(value)); mode {
	case modeBrowse, modeCheckout, modeCheckoutPromo:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]storefrontv1.StorefrontServiceClient, 0, cfg.connections)
	for i := 0; i < cfg.connections; i++ {
		conn, dialErr := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if dialErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to create grpc client connection: %v\n", dialErr)
			os.Exit(1)
		}
		conns = append(conns, conn)
		clients = append(clients, storefrontv1.NewStorefrontServiceClient(conn))
	}
	defer func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	}()

	result := runLoad(clients, cfg)
	printReport(os.Stdout, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}

	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

func runLoad(clients []storefrontv1.StorefrontServiceClient, cfg config) report {
	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var failures int64
	var wg sync.WaitGroup

	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func(cli storefrontv1.StorefrontServiceClient) {
			defer wg.Done()
			for id := range jobs {
				if runErr := runScenario(cli, cfg, id, runID, col); runErr != nil {
					atomic.AddInt64(&failures, 1)
				}
			}
		}(clients[workerID%len(clients)])
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()

	result := col.buildReport(startedAt, time.Since(startedAt))
	if result.FailedScenarios == 0 && failures > 0 {
		result.FailedScenarios = failures
		result.ErrorRate = ratio(result.FailedScenarios, result.TotalScenarios)
	}
	return result
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()

	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}

		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

// runScenario проходит путь одного покупателя. Каждая итерация работает в
// своей сессии, поэтому сценарии не делят корзины.
func runScenario(
	client storefrontv1.StorefrontServiceClient,
	cfg config,
	index int,
	runID string,
	col *collector,
) (err error) {
	scenarioStart := time.Now()
	defer func() {
		col.record(scenarioMethod, time.Since(scenarioStart), grpcCode(err))
	}()

	sessionID := fmt.Sprintf("%s-%s-%d", cfg.sessionTag, runID, index)

	if cfg.mode == modeBrowse {
		if err := call(col, "ListProducts", cfg.timeout, func(ctx context.Context) error {
			_, err := client.ListProducts(ctx, &storefrontv1.ListProductsRequest{})
			return err
		}); err != nil {
			return err
		}
		return call(col, "GetCart", cfg.timeout, func(ctx context.Context) error {
			_, err := client.GetCart(ctx, &storefrontv1.GetCartRequest{SessionID: sessionID})
			return err
		})
	}

	if err := call(col, "AddItem", cfg.timeout, func(ctx context.Context) error {
		_, err := client.AddItem(ctx, &storefrontv1.AddItemRequest{
			SessionID: sessionID,
			ProductID: cfg.productID,
			Quantity:  storefrontv1.Quantity(cfg.quantity),
		})
		return err
	}); err != nil {
		return err
	}

	if cfg.mode == modeCheckoutPromo {
		if err := call(col, "ApplyPromo", cfg.timeout, func(ctx context.Context) error {
			_, err := client.ApplyPromo(ctx, &storefrontv1.ApplyPromoRequest{
				SessionID: sessionID,
				Code:      cfg.promoCode,
			})
			return err
		}); err != nil {
			return err
		}
	}

	req := &storefrontv1.PlaceOrderRequest{
		SessionID: sessionID,
		Customer:  loadCustomer(sessionID),
	}
	key := fmt.Sprintf("lt-order-%s-%d", runID, index)

	orderID, err := callPlaceOrder(client, cfg.timeout, req, key, col)
	if err != nil {
		return err
	}
	if orderID == "" {
		return status.Error(codes.Internal, "place order returned empty order id")
	}

	if !shouldReplay(index, cfg.replayRate) {
		return nil
	}
	replayedID, err := callPlaceOrder(client, cfg.timeout, req, key, col)
	if err != nil {
		return err
	}
	if replayedID != orderID {
		return status.Error(codes.Internal, errReplayMismatch.Error())
	}
	return nil
}

func loadCustomer(sessionID string) storefrontv1.Customer {
	return storefrontv1.Customer{
		Name:  "Load Test",
		Email: sessionID + "@load.test",
		Address: storefrontv1.Address{
			Street:  "1 Bench St",
			City:    "Loadville",
			Pincode: "000000",
		},
	}
}

func callPlaceOrder(
	client storefrontv1.StorefrontServiceClient,
	timeout time.Duration,
	req *storefrontv1.PlaceOrderRequest,
	key string,
	col *collector,
) (string, error) {
	var orderID string
	err := call(col, "PlaceOrder", timeout, func(ctx context.Context) error {
		ctx = metadata.AppendToOutgoingContext(ctx, idempotencyHeader, key)
		resp, err := client.PlaceOrder(ctx, req)
		if err != nil {
			return err
		}
		orderID = resp.Order.ID
		return nil
	})
	return orderID, err
}

// call выполняет один RPC с таймаутом и записывает его результат.
func call(col *collector, method string, timeout time.Duration, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := fn(ctx)
	col.record(method, time.Since(start), grpcCode(err))
	return err
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	return status.Code(err)
}

func shouldReplay(index, replayRate int) bool {
	if replayRate <= 0 {
		return false
	}
	if replayRate >= 100 {
		return true
	}
	return index%100 < replayRate
}
