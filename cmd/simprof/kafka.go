package main

import (
	"time"

	"github.com/enersim/simprof/internal/dataset"
)

type (
	// DatasetKafkaMessage announces a stored dataset to downstream
	// consumers indexing fabricated runs.
	DatasetKafkaMessage struct {
		DatasetID           string  `json:"dataset_id"`
		Scenario            string  `json:"scenario"`
		FunctionCount       int     `json:"function_count"`
		TotalSimulationTime float64 `json:"total_simulation_time"`
		Timestamp           int64   `json:"timestamp"`
		Received            int64   `json:"received"`
	}
)

func buildDatasetKafkaMessage(d dataset.Dataset, received time.Time) DatasetKafkaMessage {
	return DatasetKafkaMessage{
		DatasetID:           d.ID,
		Scenario:            d.Scenario,
		FunctionCount:       len(d.Functions),
		TotalSimulationTime: d.Metadata.TotalSimulationTime,
		Timestamp:           d.Timestamp.Time().Unix(),
		Received:            received.Unix(),
	}
}
