package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ruraljobs/portal/app/auth"
	"github.com/ruraljobs/portal/app/portal"
	"github.com/ruraljobs/portal/app/store"
	"github.com/ruraljobs/portal/app/web"
)

var opts struct {
	Listen   string        `short:"l" long:"listen" env:"PORTAL_LISTEN" default:"localhost:8080" description:"address to serve the API on"`
	SeedFile string        `short:"s" long:"seed" env:"PORTAL_SEED" description:"custom seed dataset (yaml), built-in demo data if not set"`
	LoginTTL time.Duration `long:"login-ttl" env:"PORTAL_LOGIN_TTL" default:"24h" description:"session time to live"`

	Store struct {
		Type    string `long:"type" env:"TYPE" default:"file" choice:"file" choice:"sqlite" choice:"redis" choice:"memory" description:"storage backend"`
		Path    string `long:"path" env:"PATH" default:"./var/portal" description:"directory for file store"`
		SQLite  string `long:"sqlite" env:"SQLITE" default:"./var/portal.db" description:"database file for sqlite store"`
		Redis   string `long:"redis" env:"REDIS" default:"localhost:6379" description:"address or url for redis store"`
		RedisNS string `long:"redis-ns" env:"REDIS_NS" default:"portal:" description:"key prefix for redis store"`
	} `group:"store" namespace:"store" env-namespace:"PORTAL_STORE"`

	Log struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable logging"`
		File       string `long:"file" env:"FILE" description:"log file, stdout if not set"`
		MaxSize    int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"PORTAL_LOG"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	fmt.Printf("portal %s\n", revision)

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	setupLogs(opts.Log.Enabled, opts.Dbg)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT and SIGTERM

	if err := run(ctx); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run(ctx context.Context) error {
	st, err := makeStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to make store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	repo := portal.NewRepository(st)
	if err := seed(repo); err != nil {
		return fmt.Errorf("failed to initialize collections: %w", err)
	}

	srv, err := web.New(web.Config{
		Repo:     repo,
		Auth:     auth.NewService(repo),
		Version:  revision,
		LoginTTL: opts.LoginTTL,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx, opts.Listen)
}

// makeStore creates the storage backend per options
func makeStore(ctx context.Context) (store.Store, error) {
	log.Printf("[INFO] using %s store", opts.Store.Type)
	switch opts.Store.Type {
	case "file":
		return store.NewFile(opts.Store.Path)
	case "sqlite":
		return store.NewSQLite(opts.Store.SQLite)
	case "redis":
		return store.NewRedis(ctx, opts.Store.Redis, opts.Store.RedisNS)
	case "memory":
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported store type %q", opts.Store.Type)
}

// seed initializes absent collections, from the seed file if one is given
func seed(repo *portal.Repository) error {
	if opts.SeedFile == "" {
		return repo.EnsureInitialized()
	}
	data, err := portal.LoadSeedFile(opts.SeedFile)
	if err != nil {
		return err
	}
	log.Printf("[INFO] using seed dataset from %s", opts.SeedFile)
	return repo.EnsureInitializedFrom(data)
}

func setupLogs(enabled, dbg bool) {
	if !enabled {
		log.Setup(log.Out(io.Discard), log.Err(io.Discard))
		return
	}

	logOpts := []log.Option{log.Msec}
	if dbg {
		logOpts = []log.Option{log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile}
	}
	if opts.Log.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   opts.Log.File,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			Compress:   true,
		}
		logOpts = append(logOpts, log.Out(fileWriter))
	}
	log.Setup(logOpts...)
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGTERM
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM)
}
