// server runs the multiplayer minesweeper service: one shared board,
// a line-oriented TCP protocol, and an optional WebSocket endpoint
// speaking the same protocol.
//
// Usage:
//
//	go run ./cmd/server/ [flags]
//
// Flags override the config file:
//
//	--config FILE   TOML config file
//	--port N        TCP listen port
//	--debug         keep sessions alive after a BOOM
//	--file FILE     board definition file
//	--size X,Y      random board dimensions
//	--preset NAME   named difficulty (beginner, intermediate, expert)
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	stdnet "net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/minesweep/server/internal/config"
	"github.com/minesweep/server/internal/data"
	"github.com/minesweep/server/internal/game"
	"github.com/minesweep/server/internal/handler"
	"github.com/minesweep/server/internal/net"
	"github.com/minesweep/server/internal/protocol"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		port       = flag.Int("port", 0, "TCP listen port")
		debug      = flag.Bool("debug", false, "keep sessions alive after a BOOM")
		file       = flag.String("file", "", "board definition file")
		size       = flag.String("size", "", "random board dimensions as X,Y")
		preset     = flag.String("preset", "", "named difficulty")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := applyFlags(cfg, *port, *debug, *file, *size, *preset); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	def, source, err := resolveBoard(cfg)
	if err != nil {
		logger.Fatal("board definition rejected", zap.Error(err))
	}
	board, err := game.NewBoard(def.Width, def.Height, def.Bombs)
	if err != nil {
		logger.Fatal("board definition rejected", zap.Error(err))
	}

	reg := protocol.NewRegistry()
	handler.RegisterAll(reg, &handler.Deps{
		Board:  board,
		Config: cfg,
		Log:    logger,
	})
	srv := net.NewServer(board.Width(), board.Height(), cfg.Network.MaxLineBytes, reg, logger)

	listener, err := stdnet.Listen("tcp", cfg.Server.BindAddress)
	if err != nil {
		logger.Fatal("listen failed", zap.String("addr", cfg.Server.BindAddress), zap.Error(err))
	}

	logger.Info("server listening",
		zap.String("addr", cfg.Server.BindAddress),
		zap.String("board", source),
		zap.Int("width", board.Width()),
		zap.Int("height", board.Height()),
		zap.Int("bombs", board.BombCount()),
		zap.Bool("debug", cfg.Server.Debug))

	errc := make(chan error, 2)
	go func() { errc <- srv.Serve(listener) }()

	var httpSrv *http.Server
	if cfg.WebSocket.Enabled {
		mux := http.NewServeMux()
		mux.HandleFunc(cfg.WebSocket.Path, srv.ServeWS)
		httpSrv = &http.Server{Addr: cfg.WebSocket.BindAddress, Handler: mux}
		logger.Info("websocket listening",
			zap.String("addr", cfg.WebSocket.BindAddress),
			zap.String("path", cfg.WebSocket.Path))
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errc <- err
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-errc:
		if err != nil {
			logger.Error("serve failed", zap.Error(err))
		}
	}

	if httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		httpSrv.Shutdown(ctx)
		cancel()
	}
	srv.Stop()
	logger.Info("server stopped")
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cfg *config.Config, port int, debug bool, file, size, preset string) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Server.BindAddress = fmt.Sprintf(":%d", port)
		case "debug":
			cfg.Server.Debug = debug
		case "file":
			cfg.Board.File = file
			cfg.Board.Preset = ""
		case "preset":
			cfg.Board.Preset = preset
			cfg.Board.File = ""
		case "size":
			w, h, perr := parseSize(size)
			if perr != nil {
				err = perr
				return
			}
			cfg.Board.Width = w
			cfg.Board.Height = h
			cfg.Board.File = ""
			cfg.Board.Preset = ""
		}
	})
	return err
}

func parseSize(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("size must be X,Y, got %q", s)
	}
	w, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("bad size width %q", xs)
	}
	h, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("bad size height %q", ys)
	}
	return w, h, nil
}

// resolveBoard picks the board source: a definition file wins, then a
// named preset, then a random board at the configured density.
func resolveBoard(cfg *config.Config) (*data.BoardDef, string, error) {
	switch {
	case cfg.Board.File != "":
		def, err := data.LoadBoardFile(cfg.Board.File)
		if err != nil {
			return nil, "", err
		}
		return def, "file " + cfg.Board.File, nil

	case cfg.Board.Preset != "":
		table := data.DefaultPresets()
		if cfg.Board.PresetFile != "" {
			var err error
			table, err = data.LoadPresetTable(cfg.Board.PresetFile)
			if err != nil {
				return nil, "", err
			}
		}
		p := table.Get(cfg.Board.Preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset %q", cfg.Board.Preset)
		}
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return data.GenerateCount(p.Width, p.Height, p.Bombs, rng), "preset " + p.Name, nil

	default:
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		def := data.Generate(cfg.Board.Width, cfg.Board.Height, cfg.Board.BombDensity, rng)
		return def, fmt.Sprintf("random %dx%d", def.Width, def.Height), nil
	}
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging level %q: %w", cfg.Level, err)
	}
	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
