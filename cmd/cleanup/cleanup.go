package main

import (
	"errors"
	"os"
	"os/signal"
	"path"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/enersim/simprof/internal/logutil"
)

// cleanup removes dataset files older than timeLimit, walking into the
// per-scenario and per-cell subdirectories.
func cleanup(datasetsPath string, timeLimit time.Time) error {
	dirEntries, err := os.ReadDir(datasetsPath)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			if err := cleanup(path.Join(datasetsPath, entry.Name()), timeLimit); err != nil {
				return err
			}
			continue
		}

		fileInfo, err := entry.Info()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}

		if timeLimit.After(fileInfo.ModTime()) {
			err = os.Remove(path.Join(datasetsPath, entry.Name()))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func main() {
	datasetsPath, ok := os.LookupEnv("SIMPROF_DATASETS_PATH")
	if !ok {
		datasetsPath = "/var/lib/simprof-datasets"
	}

	rawRetentionDays, ok := os.LookupEnv("SIMPROF_RETENTION_DAYS")
	if !ok {
		rawRetentionDays = "90"
	}

	logutil.ConfigureLogger()

	err := sentry.Init(sentry.ClientOptions{})
	if err != nil {
		log.Fatal().Err(err).Msg("can't initialize sentry")
	}

	retentionDays, err := strconv.ParseInt(rawRetentionDays, 10, 64)
	if err != nil {
		log.Fatal().Err(err).Msg("can't parse retention days")
	}

	retention := time.Hour * 24 * time.Duration(retentionDays)

	c := cron.New()
	_, err = c.AddFunc("@daily", func() {
		err := cleanup(datasetsPath, time.Now().Add(-retention))
		if err != nil {
			sentry.CaptureException(err)
			log.Error().Err(err).Msg("error cleaning up directories")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("can't set up cron function")
	}

	exitSignal := make(chan os.Signal, 1)
	signal.Notify(exitSignal, os.Interrupt)

	go func() {
		<-exitSignal

		c.Stop()
	}()

	c.Run()
}
