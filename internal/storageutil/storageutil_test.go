package storageutil_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	jsoniter "github.com/json-iterator/go"

	"github.com/enersim/simprof/internal/storageprovider"
	"github.com/enersim/simprof/internal/storageutil"
)

var (
	bucket   *blob.Bucket
	badgerDB *badger.DB
)

type payload struct {
	Functions map[string]float64 `json:"functions"`
	Total     float64            `json:"total"`
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "simprof-storage-test")
	if err != nil {
		log.Fatalf("couldn't create a temporary directory: %s", err.Error())
	}

	bucket, err = fileblob.OpenBucket(dir, nil)
	if err != nil {
		log.Fatalf("couldn't open a file bucket: %s", err.Error())
	}

	badgerDB, err = badger.Open(badger.DefaultOptions("").WithInMemory(true))
	if err != nil {
		log.Fatalf("couldn't create an in-memory badgerdb: %s", err.Error())
	}

	code := m.Run()

	if err := bucket.Close(); err != nil {
		log.Printf("closing the file bucket: %s", err.Error())
	}
	if err := badgerDB.Close(); err != nil {
		log.Printf("closing in-memory badgerdb: %s", err.Error())
	}
	os.RemoveAll(dir)

	os.Exit(code)
}

func handlers() map[string]storageutil.ObjectHandler {
	return map[string]storageutil.ObjectHandler{
		"Blob":   &storageprovider.Blob{Bucket: bucket},
		"Badger": &storageprovider.Badger{DB: badgerDB},
	}
}

func TestCompressedWrite(t *testing.T) {
	ctx := context.Background()
	originalData := payload{
		Functions: map[string]float64{"SimulateHVAC": 45.2, "CalcZoneAirLoads": 22.1},
		Total:     67.3,
	}

	for name, handler := range handlers() {
		t.Run(name, func(t *testing.T) {
			objectName := uuid.New().String()
			if err := storageutil.CompressedWrite(ctx, handler, objectName, originalData); err != nil {
				t.Fatalf("we should be able to write: %s", err.Error())
			}

			or, err := handler.Get(ctx, objectName)
			if err != nil {
				t.Fatalf("we should be able to read the object: %s", err.Error())
			}
			defer or.Close()
			uncompressedData, err := io.ReadAll(lz4.NewReader(or))
			if err != nil {
				t.Fatalf("we should be able to uncompress the data: %s", err.Error())
			}

			b, err := json.Marshal(originalData)
			if err != nil {
				t.Fatalf("we should be able to marshal this: %s", err.Error())
			}
			if !bytes.Equal(b, bytes.TrimSpace(uncompressedData)) {
				t.Fatal("data should be identical")
			}

			// The payload must stay decodable by other JSON decoders.
			var decoded payload
			if err := jsoniter.Unmarshal(uncompressedData, &decoded); err != nil {
				t.Fatalf("we should be able to unmarshal the data: %s", err.Error())
			}
			if decoded.Total != originalData.Total {
				t.Fatalf("totals differ: %f != %f", decoded.Total, originalData.Total)
			}
		})
	}
}

func TestUnmarshalCompressed(t *testing.T) {
	ctx := context.Background()
	originalData := payload{
		Functions: map[string]float64{"ManageWeather": 1.8},
		Total:     1.8,
	}

	for name, handler := range handlers() {
		t.Run(name, func(t *testing.T) {
			objectName := uuid.New().String()
			if err := storageutil.CompressedWrite(ctx, handler, objectName, originalData); err != nil {
				t.Fatalf("we should be able to write: %s", err.Error())
			}

			var roundtripped payload
			if err := storageutil.UnmarshalCompressed(ctx, handler, objectName, &roundtripped); err != nil {
				t.Fatalf("we should be able to read: %s", err.Error())
			}
			if roundtripped.Total != originalData.Total {
				t.Fatalf("totals differ: %f != %f", roundtripped.Total, originalData.Total)
			}
		})
	}
}

func TestUnmarshalCompressedNotFound(t *testing.T) {
	ctx := context.Background()
	for name, handler := range handlers() {
		t.Run(name, func(t *testing.T) {
			var d payload
			err := storageutil.UnmarshalCompressed(ctx, handler, uuid.New().String(), &d)
			if !errors.Is(err, storageutil.ErrObjectNotFound) {
				t.Fatalf("expected ErrObjectNotFound, got: %v", err)
			}
		})
	}
}
