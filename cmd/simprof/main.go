package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/dgraph-io/badger/v4"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/enersim/simprof/internal/fetch"
	"github.com/enersim/simprof/internal/httputil"
	"github.com/enersim/simprof/internal/logutil"
	"github.com/enersim/simprof/internal/storageprovider"
	"github.com/enersim/simprof/internal/storageutil"
)

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type environment struct {
	config ServiceConfig

	store  storageutil.ObjectHandler
	bucket *blob.Bucket
	badger *badger.DB

	datasetsWriter KafkaWriter
	fetch          *fetch.Client

	readJobs chan storageutil.ReadJob
}

var release string

func newEnvironment() (*environment, error) {
	var e environment
	if err := loadServiceConfig(&e.config); err != nil {
		return nil, err
	}

	ctx := context.Background()
	var err error
	if e.config.BadgerPath != "" {
		e.badger, err = badger.Open(badger.DefaultOptions(e.config.BadgerPath))
		if err != nil {
			return nil, err
		}
		e.store = &storageprovider.Badger{DB: e.badger}
	} else {
		e.bucket, err = blob.OpenBucket(ctx, e.config.BucketURL)
		if err != nil {
			return nil, err
		}
		e.store = &storageprovider.Blob{Bucket: e.bucket}
	}

	e.datasetsWriter = &kafka.Writer{
		Addr:         kafka.TCP(e.config.DatasetsKafkaBrokers...),
		Async:        true,
		Balancer:     kafka.CRC32Balancer{},
		BatchSize:    10,
		Compression:  kafka.Lz4,
		ReadTimeout:  3 * time.Second,
		Topic:        e.config.DatasetsKafkaTopic,
		WriteTimeout: 3 * time.Second,
	}
	e.fetch = fetch.NewClient()

	e.readJobs = make(chan storageutil.ReadJob)
	for i := 0; i < e.config.ReadWorkers; i++ {
		go func() {
			for job := range e.readJobs {
				job.Read()
			}
		}()
	}
	return &e, nil
}

func (e *environment) shutdown() {
	close(e.readJobs)
	if e.bucket != nil {
		if err := e.bucket.Close(); err != nil {
			sentry.CaptureException(err)
		}
	}
	if e.badger != nil {
		if err := e.badger.Close(); err != nil {
			sentry.CaptureException(err)
		}
	}
	if err := e.datasetsWriter.Close(); err != nil {
		sentry.CaptureException(err)
	}
	sentry.Flush(5 * time.Second)
}

func (e *environment) newRouter() (*httprouter.Router, error) {
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, err
	}

	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/health", e.getHealth},
		{http.MethodPost, "/datasets", e.postDataset},
		{http.MethodPost, "/datasets/import", e.postDatasetImport},
		{http.MethodPost, "/datasets/generate/:scenario", e.postGenerateDataset},
		{http.MethodGet, "/datasets/:scenario/:dataset_id", e.getDataset},
		{http.MethodGet, "/datasets/:scenario/:dataset_id/summary", e.getDatasetSummary},
		{http.MethodPost, "/compare", e.postCompare},
		{http.MethodPost, "/compare/chart", e.postCompareChart},
		{http.MethodGet, "/matrix", e.getMatrix},
		{http.MethodPost, "/matrix/:sims/:threads", e.postMatrixCell},
		{http.MethodGet, "/matrix/:sims/:threads", e.getMatrixCell},
	}

	router := httprouter.New()

	for _, route := range routes {
		handlerFunc := httputil.DecompressPayload(route.handler)
		handler := compress(handlerFunc)

		router.Handler(route.method, route.path, handler)
	}

	return router, nil
}

func main() {
	logutil.ConfigureLogger()

	env, err := newEnvironment()
	if err != nil {
		log.Fatal().Err(err).Msg("error setting up environment")
	}

	err = sentry.Init(sentry.ClientOptions{
		BeforeSendTransaction: httputil.SetHTTPStatusCodeTag,
		Dsn:                   env.config.SentryDSN,
		EnableTracing:         true,
		Environment:           env.config.Environment,
		Release:               release,
		TracesSampleRate:      1.0,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("can't initialize sentry")
	}

	router, err := env.newRouter()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal().Err(err).Msg("error setting up the router")
	}

	server := http.Server{
		Addr:    ":" + strconv.Itoa(env.config.Port),
		Handler: sentryhttp.New(sentryhttp.Options{}).Handle(router),
	}

	waitForShutdown := make(chan os.Signal)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		cctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(cctx); err != nil {
			sentry.CaptureException(err)
			log.Err(err).Msg("error shutting down server")
		}

		close(waitForShutdown)
	}()

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		sentry.CaptureException(err)
		log.Err(err).Msg("server failed")
	}

	<-waitForShutdown

	// Shutdown the rest of the environment after the HTTP connections are closed
	env.shutdown()
}

func (e *environment) getHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
