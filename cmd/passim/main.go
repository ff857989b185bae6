package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rhodesepass/passim/internal/app"
	"github.com/rhodesepass/passim/internal/config"
	"github.com/rhodesepass/passim/internal/ipc"
)

func main() {
	// ---- Flags (firmware.yaml can override the timing table) ----
	var (
		firmwarePath = flag.String("firmware", "firmware.yaml", "path to the firmware timing table")
		passPath     = flag.String("pass", "", "pass config to load at startup (optional)")
		addr         = flag.String("addr", "", "websocket listen address (empty disables)")
		videoFPS     = flag.Float64("video-fps", 30, "nominal frame rate of attached video streams")
		noStdio      = flag.Bool("no-stdio", false, "disable the stdio control channel")
	)
	flag.Parse()

	// ---- Logging ----
	// Stdout carries the protocol; logs go to stderr.
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// ---- Timing table ----
	fw := config.DefaultFirmware()
	if loaded, err := config.LoadFirmware(*firmwarePath); err != nil {
		log.Warn().Err(err).Str("path", *firmwarePath).Msg("firmware config load failed; using defaults")
	} else {
		fw = *loaded
	}

	// ---- Core ----
	queue := ipc.NewQueue()
	runner := app.NewRunner(fw, queue, *videoFPS)

	if *passPath != "" {
		if p, err := config.LoadPass(*passPath); err != nil {
			log.Warn().Err(err).Str("path", *passPath).Msg("pass config load failed")
		} else {
			queue.Push(ipc.Message{Type: ipc.TypeLoadConfig, LoadConfig: &ipc.LoadConfig{Config: *p}})
		}
	}

	// ---- Control channels ----
	var stdio *ipc.StdioServer
	if !*noStdio {
		stdio = ipc.NewStdioServer(queue, os.Stdout)
		runner.AddSender(stdio)
	}

	var srv *http.Server
	if *addr != "" {
		hub := ipc.NewWSHub(queue)
		runner.AddSender(hub)

		mux := http.NewServeMux()
		mux.HandleFunc("/control", hub.HandleControlWS)
		mux.HandleFunc("/health", hub.HandleHealth)

		srv = &http.Server{
			Addr:         *addr,
			Handler:      withCORS(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", *addr).Msg("websocket server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("websocket server crashed")
			}
		}()
	}

	if stdio != nil {
		go stdio.Run(os.Stdin)
	}

	// ---- Tick loop ----
	done := make(chan struct{})
	go func() {
		runner.Run()
		close(done)
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-ch:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		runner.Stop()
		<-done
	case <-done:
	}

	if srv != nil {
		_ = srv.Close()
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
