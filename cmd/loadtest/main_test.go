package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	storefrontv1 "github.com/vladislavdragonenkov/storefront/api/storefront/v1"
	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/pricing"
	"github.com/vladislavdragonenkov/storefront/internal/promo"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	grpcsvc "github.com/vladislavdragonenkov/storefront/internal/service/grpc"
	"github.com/vladislavdragonenkov/storefront/internal/service/idempotency"
	"github.com/vladislavdragonenkov/storefront/internal/sessionlock"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

// fakeClient переопределяет только нужные сценарию методы. Вызов
// остальных паникует на nil-интерфейсе.
type fakeClient struct {
	storefrontv1.StorefrontServiceClient

	addFn   func(context.Context, *storefrontv1.AddItemRequest) (*storefrontv1.CartResponse, error)
	promoFn func(context.Context, *storefrontv1.ApplyPromoRequest) (*storefrontv1.CartResponse, error)
	placeFn func(context.Context, *storefrontv1.PlaceOrderRequest) (*storefrontv1.OrderResponse, error)
}

func (f *fakeClient) AddItem(ctx context.Context, req *storefrontv1.AddItemRequest, _ ...grpc.CallOption) (*storefrontv1.CartResponse, error) {
	return f.addFn(ctx, req)
}

func (f *fakeClient) ApplyPromo(ctx context.Context, req *storefrontv1.ApplyPromoRequest, _ ...grpc.CallOption) (*storefrontv1.CartResponse, error) {
	return f.promoFn(ctx, req)
}

func (f *fakeClient) PlaceOrder(ctx context.Context, req *storefrontv1.PlaceOrderRequest, _ ...grpc.CallOption) (*storefrontv1.OrderResponse, error) {
	return f.placeFn(ctx, req)
}

func okCart(context.Context, *storefrontv1.AddItemRequest) (*storefrontv1.CartResponse, error) {
	return &storefrontv1.CartResponse{}, nil
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    loadMode
		wantErr string
	}{
		{name: "browse", input: "browse", want: modeBrowse},
		{name: "checkout", input: " checkout ", want: modeCheckout},
		{name: "checkout-promo", input: "checkout-promo", want: modeCheckoutPromo},
		{name: "unsupported", input: "bad", wantErr: "unsupported mode"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseMode(tc.input)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected mode: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("count mode", func(t *testing.T) {
		cfg, err := parseConfig([]string{
			"-addr=127.0.0.1:50051",
			"-mode=checkout-promo",
			"-total=12",
			"-concurrency=3",
			"-connections=2",
			"-timeout=2s",
			"-product=p3",
			"-quantity=2",
			"-promo=COMBO25",
			"-replay-rate=10",
			"-session-tag=stage",
			"-output=/tmp/out.json",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.totalSet {
			t.Fatalf("expected totalSet=true")
		}
		if cfg.mode != modeCheckoutPromo || cfg.promoCode != "COMBO25" {
			t.Fatalf("unexpected mode config: %+v", cfg)
		}
		if cfg.total != 12 || cfg.concurrency != 3 || cfg.connections != 2 || cfg.quantity != 2 {
			t.Fatalf("unexpected numeric config: %+v", cfg)
		}
		if cfg.timeout != 2*time.Second {
			t.Fatalf("unexpected timeout: %s", cfg.timeout)
		}
	})

	t.Run("duration mode", func(t *testing.T) {
		cfg, err := parseConfig([]string{"-duration=3s", "-concurrency=2", "-connections=1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.duration != 3*time.Second {
			t.Fatalf("unexpected duration: %s", cfg.duration)
		}
		if cfg.totalSet {
			t.Fatalf("expected totalSet=false when -total was not provided")
		}
		if cfg.mode != modeCheckout || cfg.productID != "p1" {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name    string
			args    []string
			wantErr string
		}{
			{name: "invalid duration", args: []string{"-duration=bad"}, wantErr: "invalid value"},
			{name: "negative duration", args: []string{"-duration=-1s"}, wantErr: "duration must be >= 0"},
			{name: "invalid replay rate", args: []string{"-replay-rate=101"}, wantErr: "replay-rate must be between 0 and 100"},
			{name: "empty total", args: []string{"-total=0"}, wantErr: "total must be > 0"},
			{name: "zero quantity", args: []string{"-quantity=0"}, wantErr: "quantity must be > 0"},
			{name: "empty product", args: []string{"-product= "}, wantErr: "product is required"},
			{name: "promo mode without code", args: []string{"-mode=checkout-promo", "-promo="}, wantErr: "promo is required"},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := parseConfig(tc.args)
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
			})
		}
	})
}

func TestDispatchJobs(t *testing.T) {
	t.Run("count mode", func(t *testing.T) {
		jobs := make(chan int, 16)
		dispatchJobs(jobs, config{total: 5})

		var got []int
		for v := range jobs {
			got = append(got, v)
		}
		if !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
			t.Fatalf("unexpected jobs sequence: %v", got)
		}
	})

	t.Run("duration with explicit max total", func(t *testing.T) {
		jobs := make(chan int, 16)
		dispatchJobs(jobs, config{duration: time.Second, total: 3, totalSet: true})
		count := 0
		for range jobs {
			count++
		}
		if count != 3 {
			t.Fatalf("expected 3 jobs, got %d", count)
		}
	})
}

func TestCollectorAndReport(t *testing.T) {
	c := newCollector()
	c.record(scenarioMethod, 10*time.Millisecond, codes.OK)
	c.record(scenarioMethod, 20*time.Millisecond, codes.FailedPrecondition)
	c.record("PlaceOrder", 15*time.Millisecond, codes.OK)

	snap, ok := c.snapshot(scenarioMethod)
	if !ok {
		t.Fatalf("scenario snapshot missing")
	}
	if snap.Calls != 2 || snap.Success != 1 || snap.Failed != 1 {
		t.Fatalf("unexpected scenario snapshot: %+v", snap)
	}
	if snap.Codes[codes.FailedPrecondition.String()] != 1 {
		t.Fatalf("unexpected codes: %+v", snap.Codes)
	}

	r := c.buildReport(time.Now(), 2*time.Second)
	if r.TotalScenarios != 2 || r.FailedScenarios != 1 || r.OrdersPlaced != 1 {
		t.Fatalf("unexpected report totals: %+v", r)
	}
	if r.RPS != 1 {
		t.Fatalf("expected rps 1, got %f", r.RPS)
	}
}

func TestUtilityFunctions(t *testing.T) {
	if got := grpcCode(nil); got != codes.OK {
		t.Fatalf("grpcCode(nil) = %s, want OK", got)
	}
	if got := grpcCode(status.Error(codes.Unavailable, "down")); got != codes.Unavailable {
		t.Fatalf("unexpected grpc code: %s", got)
	}
	if got := ratio(1, 4); got != 0.25 {
		t.Fatalf("ratio mismatch: %f", got)
	}

	summary := buildLatencySummary([]float64{10, 20, 30, 40})
	if summary.Min != 10 || summary.Max != 40 || summary.Avg != 25 || summary.P50 != 25 {
		t.Fatalf("unexpected latency summary: %+v", summary)
	}

	if !shouldReplay(5, 10) || shouldReplay(15, 10) || shouldReplay(0, 0) || !shouldReplay(99, 100) {
		t.Fatal("unexpected replay selection")
	}

	if got := runTarget(config{duration: 2 * time.Second, total: 10, totalSet: true}); got != "duration:2s,max-total:10" {
		t.Fatalf("unexpected capped duration run target: %s", got)
	}
}

func TestWriteJSONReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := writeJSONReport(path, report{TotalScenarios: 2, OrdersPlaced: 2}); err != nil {
		t.Fatalf("writeJSONReport error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.TotalScenarios != 2 || decoded.OrdersPlaced != 2 {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}

	if err := writeJSONReport("../escape.json", report{}); err == nil {
		t.Fatal("expected error for path outside current directory")
	}
}

func TestRunScenario_PromoCheckoutWithReplay(t *testing.T) {
	c := newCollector()
	cfg := config{mode: modeCheckoutPromo, timeout: time.Second, productID: "p2", quantity: 3, promoCode: "SAVE10", replayRate: 100, sessionTag: "load"}

	placed := 0
	client := &fakeClient{
		addFn: func(_ context.Context, req *storefrontv1.AddItemRequest) (*storefrontv1.CartResponse, error) {
			if req.SessionID != "load-run-1-7" || req.ProductID != "p2" || req.GetQuantity() != 3 {
				t.Fatalf("unexpected add request: %+v", req)
			}
			return &storefrontv1.CartResponse{}, nil
		},
		promoFn: func(_ context.Context, req *storefrontv1.ApplyPromoRequest) (*storefrontv1.CartResponse, error) {
			if req.Code != "SAVE10" {
				t.Fatalf("unexpected promo code: %s", req.Code)
			}
			return &storefrontv1.CartResponse{}, nil
		},
		placeFn: func(ctx context.Context, req *storefrontv1.PlaceOrderRequest) (*storefrontv1.OrderResponse, error) {
			mustHaveIdempotencyKey(t, ctx, "lt-order-run-1-7")
			if req.Customer.Email != "load-run-1-7@load.test" {
				t.Fatalf("unexpected customer: %+v", req.Customer)
			}
			placed++
			return &storefrontv1.OrderResponse{Order: storefrontv1.Order{ID: "order-1"}}, nil
		},
	}

	if err := runScenario(client, cfg, 7, "run-1", c); err != nil {
		t.Fatalf("runScenario failed: %v", err)
	}
	if placed != 2 {
		t.Fatalf("expected original and replayed PlaceOrder, got %d", placed)
	}
	if snap, _ := c.snapshot("ApplyPromo"); snap.Success != 1 {
		t.Fatalf("unexpected ApplyPromo stats: %+v", snap)
	}
}

func TestRunScenario_Failures(t *testing.T) {
	cfg := config{mode: modeCheckout, timeout: time.Second, productID: "p1", quantity: 1, replayRate: 100, sessionTag: "load"}

	t.Run("add item rejected", func(t *testing.T) {
		c := newCollector()
		client := &fakeClient{
			addFn: func(context.Context, *storefrontv1.AddItemRequest) (*storefrontv1.CartResponse, error) {
				return nil, status.Error(codes.NotFound, "product not found")
			},
		}
		if err := runScenario(client, cfg, 1, "run", c); status.Code(err) != codes.NotFound {
			t.Fatalf("expected NotFound, got %v", err)
		}
		if snap, _ := c.snapshot(scenarioMethod); snap.Codes[codes.NotFound.String()] != 1 {
			t.Fatalf("scenario code must follow the failed call: %+v", snap.Codes)
		}
	})

	t.Run("empty order id", func(t *testing.T) {
		client := &fakeClient{
			addFn: okCart,
			placeFn: func(context.Context, *storefrontv1.PlaceOrderRequest) (*storefrontv1.OrderResponse, error) {
				return &storefrontv1.OrderResponse{}, nil
			},
		}
		err := runScenario(client, cfg, 2, "run", newCollector())
		if err == nil || !strings.Contains(err.Error(), "empty order id") {
			t.Fatalf("expected empty id error, got %v", err)
		}
	})

	t.Run("replay mismatch", func(t *testing.T) {
		next := 0
		client := &fakeClient{
			addFn: okCart,
			placeFn: func(context.Context, *storefrontv1.PlaceOrderRequest) (*storefrontv1.OrderResponse, error) {
				next++
				return &storefrontv1.OrderResponse{Order: storefrontv1.Order{ID: "order-" + string(rune('0'+next))}}, nil
			},
		}
		err := runScenario(client, cfg, 3, "run", newCollector())
		if err == nil || !strings.Contains(err.Error(), errReplayMismatch.Error()) {
			t.Fatalf("expected replay mismatch, got %v", err)
		}
	})
}

func TestPrintReport(t *testing.T) {
	r := report{
		TotalScenarios:   2,
		SuccessScenarios: 2,
		OrdersPlaced:     2,
		Methods: map[string]methodReport{
			scenarioMethod: {Calls: 2, Success: 2},
			"PlaceOrder":   {Calls: 2, Success: 2},
		},
	}

	var out bytes.Buffer
	printReport(&out, r, config{mode: modeCheckout, total: 2})

	if !strings.Contains(out.String(), "Load test summary") {
		t.Fatalf("expected summary header, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "PlaceOrder: calls=2") {
		t.Fatalf("expected method section, got: %s", out.String())
	}
	if strings.Contains(out.String(), scenarioMethod+": ") {
		t.Fatalf("scenario must not be printed as a method: %s", out.String())
	}
}

func TestRunLoad_AgainstStorefront(t *testing.T) {
	client := newStorefrontClient(t)

	cfg := config{
		total:       20,
		concurrency: 4,
		timeout:     2 * time.Second,
		mode:        modeCheckoutPromo,
		productID:   "p1",
		quantity:    2,
		promoCode:   "SAVE10",
		replayRate:  10,
		sessionTag:  "lt",
	}
	result := runLoad([]storefrontv1.StorefrontServiceClient{client}, cfg)

	if result.TotalScenarios != 20 || result.FailedScenarios != 0 {
		t.Fatalf("unexpected scenario totals: %+v", result)
	}
	if result.OrdersPlaced != 30 {
		t.Fatalf("expected 20 orders plus 10 replays, got %d", result.OrdersPlaced)
	}

	orders, err := client.ListOrders(context.Background(), &storefrontv1.ListOrdersRequest{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders.Orders) != 20 {
		t.Fatalf("replays must not create orders, got %d", len(orders.Orders))
	}
}

func newStorefrontClient(t *testing.T) storefrontv1.StorefrontServiceClient {
	t.Helper()

	logger := log.NewEntry(log.New())
	logger.Logger.SetOutput(&bytes.Buffer{})

	products, err := memory.NewProductCatalog(
		domain.Product{ID: "p1", Name: "Load Product", Category: "test", UnitPrice: decimal.NewFromInt(100)},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	promos := promo.NewDefaultRegistry()
	carts := memory.NewCartRepository()
	engine := pricing.NewEngine(products, promos, pricing.DefaultRules())
	locks := sessionlock.New()

	service := grpcsvc.NewStorefrontService(
		cart.NewService(carts, products, promos, engine, cart.WithLocker(locks)),
		checkout.NewService(carts, memory.NewOrderRepository(), engine, checkout.WithLocker(locks)),
		catalog.NewService(products, logger),
		promos,
		grpcsvc.WithLogger(logger),
		grpcsvc.WithIdempotencyGuard(idempotency.NewGuard(memory.NewIdempotencyRepository(), 0, logger)),
	)

	listener := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	storefrontv1.RegisterStorefrontServiceServer(server, service)
	go func() {
		_ = server.Serve(listener)
	}()

	dialer := func(context.Context, string) (net.Conn, error) {
		return listener.Dial()
	}
	//nolint:staticcheck // grpc.Dial is required for bufconn testing
	conn, err := grpc.Dial("bufnet", grpc.WithContextDialer(dialer), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
	})

	return storefrontv1.NewStorefrontServiceClient(conn)
}

func mustHaveIdempotencyKey(t *testing.T, ctx context.Context, want string) {
	t.Helper()

	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		t.Fatalf("missing outgoing metadata")
	}
	values := md.Get(idempotencyHeader)
	if len(values) != 1 || values[0] != want {
		t.Fatalf("unexpected idempotency key: got=%v want=%q", values, want)
	}
}
