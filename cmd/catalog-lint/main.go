package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"routine-advisor-be/internal/config"
	"routine-advisor-be/pkg/catalog"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	source := flag.String("source", cfg.Catalog.Source, "catalog file path or http(s) URL")
	flag.Parse()

	os.Exit(run(*source))
}

func run(source string) int {
	color.Cyan("🔍 Linting catalog %s\n", source)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := catalog.NewLoader(source).Load(ctx)
	if err != nil {
		color.Red("Failed to load catalog: %v", err)
		return 2
	}

	categories := catalog.Categories(products)
	fmt.Printf("Products:   %d\n", len(products))
	fmt.Printf("Categories: %d %v\n", len(categories), categories)

	problems := catalog.Validate(products)
	if len(problems) == 0 {
		color.Green("✅ Catalog is valid")
		return 0
	}

	color.Yellow("\n%d problem(s):", len(problems))
	for _, p := range problems {
		color.Red("  - %s", p)
	}
	return 1
}
