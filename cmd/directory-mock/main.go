package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jask/creatordir/internal/directory"
	"github.com/jask/creatordir/internal/logging"
	"github.com/jask/creatordir/internal/mockapi"
	"github.com/jask/creatordir/internal/testdata"
)

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	prefix := flag.String("prefix", "/api", "route prefix")
	fixture := flag.String("fixture", "", "TOML participants fixture, reloaded on SIGHUP (built-in sample when empty)")
	generate := flag.Int("generate", 0, "serve this many synthetic participants instead of a fixture")
	seed := flag.Uint64("seed", 1, "seed for -generate")
	fail := flag.String("fail", "", "answer GET /participants with 500 and this error message")
	delay := flag.Duration("delay", 0, "hold every participants response this long")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := logging.NewConsole(os.Stderr, *level)

	var (
		participants []directory.Participant
		err          error
	)
	switch {
	case *generate > 0:
		participants = testdata.Participants(*generate, *seed)
	case *fixture != "":
		participants, err = mockapi.LoadFixture(*fixture)
	default:
		participants, err = mockapi.ParseFixture([]byte(mockapi.DefaultFixture))
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("load fixture")
	}

	srv := mockapi.New(participants, logger)
	srv.SetFailure(*fail)
	srv.SetDelay(*delay)

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(*prefix),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *fixture != "" && *generate == 0 {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		go func() {
			for range hup {
				next, err := mockapi.LoadFixture(*fixture)
				if err != nil {
					logger.Error().Err(err).Str("fixture", *fixture).Msg("reload fixture")
					continue
				}
				srv.SetParticipants(next)
				logger.Info().Int("participants", len(next)).Msg("fixture reloaded")
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("addr", *addr).Str("prefix", *prefix).Int("participants", len(participants)).Msg("mock directory API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("serve")
	}
}
