package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/config"
	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/presenter"
	"github.com/NetLive5/weblarek/internal/shopapi"
	"github.com/NetLive5/weblarek/internal/view"
)

// place-order walks the storefront checkout headlessly: it selects and buys
// each item, fills both forms and prints the shop's answer.
func main() {
	itemsFlag := flag.String("items", "", "Comma-separated item IDs to buy")
	paymentFlag := flag.String("payment", "card", "Payment method: card or cash")
	addressFlag := flag.String("address", "", "Delivery address")
	emailFlag := flag.String("email", "", "Buyer email")
	phoneFlag := flag.String("phone", "", "Buyer phone")
	flag.Parse()

	var ids []string
	for _, id := range strings.Split(*itemsFlag, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 || *addressFlag == "" || *emailFlag == "" || *phoneFlag == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/place-order/main.go --items \"id1,id2\" --payment card --address \"Street 1\" --email buyer@example.com --phone \"+70000000000\"")
		fmt.Println("Item IDs can be listed with: go run cmd/list-products/main.go")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopapi.NewClient(cfg.Shop.APIURL, cfg.Shop.CDNURL, cfg.Shop.HTTPTimeout, logger)
	store, err := presenter.Build(client, presenter.Inline{Ctx: context.Background()}, presenter.Options{}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build storefront: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	store.LoadCatalog()
	if len(store.Screen().Page.Catalog) == 0 {
		fmt.Fprintln(os.Stderr, "Catalog is empty or could not be loaded")
		os.Exit(1)
	}

	for _, id := range ids {
		if err := store.SelectCard(id); err != nil {
			fail("select "+id, err)
		}
		if err := store.BuyPreview(); err != nil {
			fail("buy "+id, err)
		}
		fmt.Printf("🛒 Added %s (basket: %d)\n", id, store.Screen().Page.Counter)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"open basket", store.OpenBasket},
		{"checkout", store.Checkout},
		{"payment", func() error { return store.SelectPayment(domain.PaymentMethod(*paymentFlag)) }},
		{"address", func() error { return store.Input(domain.FormOrder, domain.FieldAddress, *addressFlag) }},
		{"submit order form", func() error { return store.Submit(domain.FormOrder) }},
		{"email", func() error { return store.Input(domain.FormContacts, domain.FieldEmail, *emailFlag) }},
		{"phone", func() error { return store.Input(domain.FormContacts, domain.FieldPhone, *phoneFlag) }},
		{"submit contacts form", func() error { return store.Submit(domain.FormContacts) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			fail(step.name, err)
		}
	}

	result, ok := store.LastResult()
	if !ok {
		msg := "order was not accepted"
		if form, isForm := store.Screen().Modal.Content.(view.FormSnapshot); isForm && form.Errors != "" {
			msg = form.Errors
		}
		fmt.Fprintf(os.Stderr, "❌ %s\n", msg)
		os.Exit(1)
	}

	fmt.Println("✅ Order placed")
	fmt.Printf("   ID:    %s\n", result.ID)
	fmt.Printf("   Total: %s\n", view.SynapsesLabel(result.Total))
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", step, err)
	os.Exit(1)
}
