package main

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type (
	ServiceConfig struct {
		Environment string `env:"SIMPROF_ENVIRONMENT" env-default:"development"`
		Port        int    `env:"PORT" env-default:"8080"`

		SentryDSN string `env:"SENTRY_DSN"`

		// BucketURL is a gocloud.dev bucket URL, such as
		// file:///var/lib/simprof/datasets or gs://simprof-datasets.
		BucketURL string `env:"SIMPROF_BUCKET_URL" env-default:"file://./datasets?create_dir=1"`
		// BadgerPath switches dataset storage to an embedded Badger
		// database at the given path instead of a bucket.
		BadgerPath string `env:"SIMPROF_BADGER_PATH"`

		DatasetsKafkaBrokers []string `env:"SIMPROF_KAFKA_BROKERS" env-default:"localhost:9092"`
		DatasetsKafkaTopic   string   `env:"SIMPROF_KAFKA_TOPIC" env-default:"profiling-datasets"`

		ReadWorkers int `env:"SIMPROF_READ_WORKERS" env-default:"16"`
	}
)

func loadServiceConfig(config *ServiceConfig) error {
	return cleanenv.ReadEnv(config)
}
