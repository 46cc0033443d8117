package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goliatone/go-wishlist-console/pkg/config"
	"github.com/goliatone/go-wishlist-console/pkg/orchestrator"
	"github.com/goliatone/go-wishlist-console/pkg/renderers/tui"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

// fieldFlags maps flag names to page elements for --once runs.
var fieldFlags = []struct {
	name    string
	element string
}{
	{"id", surface.FieldWishlistID},
	{"name", surface.FieldWishlistName},
	{"enabled", surface.FieldWishlistEnabled},
	{"uid", surface.FieldWishlistUID},
	{"item-id", surface.FieldItemID},
	{"item-name", surface.FieldItemName},
	{"category", surface.FieldItemCategory},
	{"price", surface.FieldItemPrice},
	{"description", surface.FieldItemDescription},
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	envFile := flag.String("env", ".env", "dotenv file loaded before reading the environment")
	apiURL := flag.String("api", "", "wishlist service base URL (overrides api.base_url)")
	once := flag.String("once", "", "run a single action non-interactively ("+actionNames()+")")

	values := make(map[string]*string, len(fieldFlags))
	for _, f := range fieldFlags {
		values[f.element] = flag.String(f.name, "", surface.Label(f.element)+" for --once")
	}

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(out, "Terminal console for the wishlist service. Without --once an interactive session starts.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}

	console, err := orchestrator.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build console: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once != "" {
		action, err := surface.ParseAction(*once)
		if err != nil {
			log.Fatalf("%v", err)
		}
		page := surface.NewPage()
		for element, value := range values {
			page.Set(element, *value)
		}
		out, err := console.Generate(ctx, orchestrator.Request{
			Action:   action,
			Page:     page,
			Renderer: "tui",
		})
		if err != nil {
			log.Fatalf("Failed to run %s: %v", action, err)
		}
		os.Stdout.Write(out)
		if page.Flash != "" && page.Flash != surface.FlashSuccess && page.Flash != surface.FlashDeleted {
			os.Exit(1)
		}
		return
	}

	session, err := console.Session(tui.WithTheme(tui.Theme{FlashPrefix: "» "}))
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	if err := session.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) && !errors.Is(err, context.Canceled) {
		log.Fatalf("Session failed: %v", err)
	}
}

func actionNames() string {
	actions := surface.Actions()
	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, string(action))
	}
	return strings.Join(names, ", ")
}
