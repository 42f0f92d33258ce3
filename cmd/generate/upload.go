package main

import (
	"context"
	"sync"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/storageprovider"
	"github.com/enersim/simprof/internal/storageutil"
)

var (
	bucketURL string

	bucketOnce  sync.Once
	bucketStore storageutil.ObjectHandler
	bucketErr   error
)

// uploadDataset mirrors a generated dataset into the service bucket
// when --bucket is set.
func uploadDataset(ctx context.Context, key string, d dataset.Dataset) error {
	if bucketURL == "" {
		return nil
	}
	bucketOnce.Do(func() {
		var b *blob.Bucket
		b, bucketErr = blob.OpenBucket(ctx, bucketURL)
		if bucketErr != nil {
			return
		}
		bucketStore = &storageprovider.Blob{Bucket: b}
	})
	if bucketErr != nil {
		return bucketErr
	}
	return storageutil.CompressedWrite(ctx, bucketStore, key, d)
}
