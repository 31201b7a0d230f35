package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/creatordir/internal/config"
	"github.com/jask/creatordir/internal/database"
	"github.com/jask/creatordir/internal/database/repository"
	"github.com/jask/creatordir/internal/logging"
	"github.com/jask/creatordir/internal/remote"
	"github.com/jask/creatordir/internal/tui"
)

func main() {
	offline := flag.Bool("offline", false, "browse the latest local snapshot instead of the API")
	baseURL := flag.String("api", "", "directory API base URL (overrides config)")
	purge := flag.Bool("purge-snapshots", false, "delete every saved snapshot and exit")
	listSnapshots := flag.Bool("list-snapshots", false, "print the saved snapshots and exit")
	writeConfig := flag.Bool("write-config", false, "write the effective config to the config file and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *offline {
		cfg.Snapshot.Offline = true
	}

	if *writeConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("config: %v", err)
		}
		fmt.Printf("wrote %s\n", config.Path())
		return
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	deps := tui.Deps{
		Source:     remote.New(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout}, logger),
		SourceName: cfg.API.BaseURL,
		Log:        logger,
	}

	if *listSnapshots {
		db, err := database.Open(ctx, cfg.Snapshot.Path)
		if err != nil {
			log.Fatalf("open snapshots: %v", err)
		}
		snaps, err := repository.NewSnapshotRepo(db, cfg.Snapshot.Keep).List(ctx)
		_ = db.Close()
		if err != nil {
			log.Fatalf("list snapshots: %v", err)
		}
		for _, s := range snaps {
			fmt.Printf("%s  %s  %4d  %s\n", s.ID, s.TakenAt.Local().Format(time.DateTime), s.Count, s.Source)
		}
		return
	}

	if *purge {
		db, err := database.Open(ctx, cfg.Snapshot.Path)
		if err != nil {
			log.Fatalf("open snapshots: %v", err)
		}
		n, err := repository.NewSnapshotRepo(db, cfg.Snapshot.Keep).Purge(ctx)
		_ = db.Close()
		if err != nil {
			log.Fatalf("purge: %v", err)
		}
		logger.Info().Int("snapshots", n).Msg("purged snapshots")
		fmt.Printf("purged %d snapshots\n", n)
		return
	}

	if cfg.Snapshot.Enabled || cfg.Snapshot.Offline {
		db, err := database.Open(ctx, cfg.Snapshot.Path)
		if err != nil {
			log.Fatalf("open snapshots: %v", err)
		}
		defer db.Close()
		snapshots := repository.NewSnapshotRepo(db, cfg.Snapshot.Keep)
		if cfg.Snapshot.Offline {
			deps.Source = snapshots
			deps.SourceName = "snapshot:" + cfg.Snapshot.Path
		} else {
			deps.Snapshots = snapshots
		}
	}

	logger.Info().Str("source", deps.SourceName).Msg("starting")
	p := tea.NewProgram(tui.New(ctx, cfg, deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
