package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/nkootstra/things-mcp/internal/config"
	"github.com/nkootstra/things-mcp/internal/launcher"
	"github.com/nkootstra/things-mcp/internal/server"
	"github.com/nkootstra/things-mcp/internal/store"
)

func main() {
	// Stdout carries the MCP wire; everything else goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	configPath := flag.String("config", config.DefaultConfigPath(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	dbPath, err := cfg.ResolveDatabasePath()
	if err != nil {
		log.Fatal(err)
	}

	st, err := store.OpenLive(dbPath)
	if err != nil {
		log.Fatal(err)
	}

	l := launcher.New(
		launcher.WithXcallPath(cfg.XcallPath),
		launcher.WithOpenPath(cfg.OpenPath),
		launcher.WithTimeout(time.Duration(cfg.TimeoutSec)*time.Second),
	)

	s := server.New(st, l, nil)

	log.Printf("things-mcp %s serving on stdio (database: %s)", server.Version, dbPath)
	serveErr := server.ServeStdio(s)

	if err := st.Close(); err != nil {
		log.Printf("closing store: %v", err)
	}
	if serveErr != nil {
		log.Fatalf("server error: %v", serveErr)
	}
}
