package replay

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/api"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/cache"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/config"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/db/postgres"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/fetch"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/utils"
)

var appConfig config.Config // holds processed config values

//nolint:funlen // by design
func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay sessionKey",
		Short: "replay the telemetry of a session",
		Long: `replay the telemetry of a session
The session data is resolved via durable store, cache and live API (in that
order) and replayed on a virtual clock. An active session is detected by its
date range and switches the engine into live tracking mode.
		`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			appConfig = config.Config{PrintSnapshots: printSnapshots}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionKey, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return startReplay(sessionKey)
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(),
		"Year in which the session took place")
	cmd.Flags().IntSliceVar(&trackedDrivers, "drivers", []int{},
		"Driver numbers to track (first two form the gap pairing)")
	cmd.Flags().Float64Var(&speed, "speed", 1,
		"Replay speed factor (ignored for live sessions)")
	cmd.Flags().BoolVar(&forceLive, "live", false,
		"Force live tracking mode regardless of the session date range")
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"json",
		"controls the log output format")
	cmd.Flags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules to mute noisy namespaces")
	cmd.Flags().BoolVar(&printSnapshots,
		"print-snapshots",
		false,
		"if true and log level is debug, every assembled snapshot is printed")
	return cmd
}

var (
	year           int
	trackedDrivers []int
	speed          float64
	forceLive      bool
	printSnapshots bool
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogFilter != "" {
		logger = logger.WithFilters(config.LogFilter)
	}
	log.ResetDefault(logger)
}

// waitForRequiredServices blocks until the optional backing services are
// reachable. An unreachable service disables the matching tier instead of
// aborting; the engine still works straight off the API.
func waitForRequiredServices() {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	if config.DB != "" {
		if err = utils.WaitForTCP(utils.ExtractFromDBURL(config.DB), timeout); err != nil {
			log.Warn("database not ready, durable tier disabled", log.ErrorField(err))
			config.DB = ""
		}
	}
	if config.NatsURL != "" {
		addr := utils.ExtractFromNatsURL(config.NatsURL)
		if err = utils.WaitForTCP(addr, timeout); err != nil {
			log.Warn("nats not ready, using in-process cache", log.ErrorField(err))
			config.NatsURL = ""
		}
	}
}

func setupCache() cache.Cache {
	if config.NatsURL != "" {
		conn, err := nats.Connect(config.NatsURL)
		if err == nil {
			var natsCache cache.Cache
			natsCache, err = cache.NewNatsCache(conn, config.CacheBucket)
			if err == nil {
				return natsCache
			}
		}
		log.Warn("could not setup nats cache, using in-process cache",
			log.ErrorField(err))
	}
	return cache.NewMemoryCache()
}

//nolint:funlen // by design
func startReplay(sessionKey int) error {
	setupLogger()

	log.Debug("Config:",
		log.String("db", config.DB),
		log.String("api-url", config.APIBaseURL),
		log.String("nats-url", config.NatsURL),
		log.String("cache-bucket", config.CacheBucket),
	)

	waitForRequiredServices()

	fetchOpts := []fetch.Option{
		fetch.WithClient(api.NewClient(config.APIBaseURL, api.WithQueue(api.NewQueue()))),
		fetch.WithCache(setupCache()),
	}
	if config.DB != "" {
		pool, err := postgres.InitWithURL(config.DB)
		if err != nil {
			log.Warn("could not connect database, durable tier disabled",
				log.ErrorField(err))
		} else {
			defer pool.Close()
			fetchOpts = append(fetchOpts, fetch.WithQuerier(pool))
		}
	}

	// a probe service resolves the session so we know whether it is live
	// before the real pipeline is assembled
	probe := fetch.NewService(fetchOpts...)
	session, found := probe.SessionByKey(context.Background(), year, sessionKey)
	if !found {
		log.Error("session not found",
			log.Int("sessionKey", sessionKey), log.Int("year", year))
		return ErrSessionNotFound
	}
	live := forceLive || session.IsLive(time.Now())
	log.Info("session resolved",
		log.String("name", session.SessionName),
		log.String("circuit", session.CircuitShortName),
		log.String("status", string(session.Status(time.Now()))),
		log.Bool("live", live))

	fetchOpts = append(fetchOpts, fetch.WithLiveSession(live))
	task := newReplayTask(session, fetch.NewService(fetchOpts...), live)
	return task.Run()
}
