package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"browsarr/internal/buildinfo"
	"browsarr/internal/config"
	"browsarr/internal/domain"
	"browsarr/internal/logger"
	"browsarr/internal/sanitize"
	"browsarr/internal/source"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type watchedEntry struct {
	name    string
	series  string
	adapter domain.Adapter

	mu   sync.Mutex
	seen map[string]struct{}
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the configured series for new chapters",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		// read config
		cfg := config.New(configPath, buildinfo.Version)

		// init new logger
		log := logger.New(cfg.Config)

		if err := cfg.UpdateConfig(); err != nil {
			log.Error().Err(err).Msgf("error updating config")
		}

		// init dynamic config
		cfg.DynamicReload(log)

		var entries []*watchedEntry

		for seriesName, watched := range cfg.Config.WatchedSeries {
			adapter, err := source.New(watched.Source)
			if err != nil {
				log.Error().Err(err).Msgf("unknown watched series source for %s", seriesName)
				continue
			}

			entries = append(entries, &watchedEntry{
				name:    seriesName,
				series:  watched.Series,
				adapter: adapter,
			})
		}

		if len(entries) == 0 {
			log.Fatal().Msg("no watched series configured")
		}

		log.Info().Msg("starting to watch configured series")

		ticker := time.NewTicker(time.Duration(cfg.Config.CheckInterval)*time.Minute - 40*time.Second)
		defer ticker.Stop()

		wg := sync.WaitGroup{}
		quit := make(chan bool, 1)

		go func() {
			for {
				select {
				case <-quit:
					return
				case <-ticker.C:
					runID := uuid.New().String()

					for _, entry := range entries {
						entry := entry
						wg.Add(1)

						go func() {
							defer wg.Done()

							wLog := log.With().Str("series", entry.name).Str("source", entry.adapter.String()).Str("run", runID).Logger()

							chapters, err := entry.adapter.FetchChapterList(ctx, entry.series)
							if err != nil {
								wLog.Error().Err(err).Msg("error getting chapter list")
								return
							}

							entry.mu.Lock()
							defer entry.mu.Unlock()

							// first pass only establishes the baseline
							if entry.seen == nil {
								entry.seen = make(map[string]struct{}, len(chapters))
								for _, chapter := range chapters {
									entry.seen[chapter.ID] = struct{}{}
								}
								wLog.Debug().Msgf("tracking %d existing chapters", len(chapters))
								return
							}

							for _, chapter := range chapters {
								if _, ok := entry.seen[chapter.ID]; ok {
									continue
								}
								entry.seen[chapter.ID] = struct{}{}

								wLog.Info().Msgf("new chapter %q", sanitize.Filename(chapter.DisplayName))
							}
						}()
					}

					wg.Wait()
				}
			}
		}()

		// set up a channel to catch signals for graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

		fmt.Printf("received signal: %s, stopping watch.\n", <-sigCh)
		quit <- true
		wg.Wait()
	},
}
