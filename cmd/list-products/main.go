package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/config"
	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/shopapi"
	"github.com/NetLive5/weblarek/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	dimStyle    = lipgloss.NewStyle().Faint(true)

	categoryColors = map[string]lipgloss.Color{
		"soft":       lipgloss.Color("120"),
		"hard":       lipgloss.Color("214"),
		"other":      lipgloss.Color("141"),
		"additional": lipgloss.Color("81"),
		"button":     lipgloss.Color("255"),
	}
)

func main() {
	searchFlag := flag.String("search", "", "Only show items whose title contains this text")
	detailsFlag := flag.Bool("details", false, "Fetch each item and print its description")
	flag.Parse()

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
	ctx := context.Background()

	fmt.Println("🔍 Fetching catalog from", cfg.Shop.APIURL)

	items, err := client.GetLotList(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch catalog: %v\n", err)
		os.Exit(1)
	}

	search := strings.TrimSpace(*searchFlag)
	rows := []string{renderRow(headerStyle, "ID", "TITLE", "CATEGORY", "PRICE")}
	shown := 0
	for _, item := range items {
		if search != "" && !containsIgnoreCase(item.Title, search) {
			continue
		}
		shown++
		rows = append(rows, renderItem(item))

		if *detailsFlag {
			full, err := client.GetLotItem(ctx, item.ID)
			if err != nil {
				rows = append(rows, dimStyle.Render("    failed to fetch details: "+err.Error()))
				continue
			}
			for _, line := range full.DescriptionLines() {
				rows = append(rows, dimStyle.Render("    "+line))
			}
		}
	}

	fmt.Println(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	fmt.Printf("✅ %d of %d items\n", shown, len(items))
}

func renderItem(item domain.Item) string {
	category := lipgloss.NewStyle()
	if color, ok := categoryColors[domain.CategoryModifier(item.Category)]; ok {
		category = category.Foreground(color)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Width(38).Render(item.ID),
		lipgloss.NewStyle().Width(32).Render(item.Title),
		category.Width(18).Render(item.Category),
		lipgloss.NewStyle().Width(16).Align(lipgloss.Right).Render(view.PriceLabel(item.Price)),
	)
}

func renderRow(style lipgloss.Style, id, title, category, price string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.Width(38).Render(id),
		style.Width(32).Render(title),
		style.Width(18).Render(category),
		style.Width(16).Align(lipgloss.Right).Render(price),
	)
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
