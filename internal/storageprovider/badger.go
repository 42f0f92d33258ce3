package storageprovider

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/dgraph-io/badger/v4"

	"github.com/enersim/simprof/internal/storageutil"
)

// Badger implements the storageutil.ObjectHandler interface on top of an
// embedded badger database. It backs single-node deployments where no
// object store is available.
type Badger struct {
	DB *badger.DB
}

// Put writes an object to the database with name being the key.
func (b *Badger) Put(ctx context.Context, name string) (io.WriteCloser, error) {
	return &badgerWriter{
		b:    &bytes.Buffer{},
		txn:  b.DB.NewTransaction(true),
		name: name,
	}, nil
}

// Get reads an object from the database with name being the key.
// If a key was not found, it will return ErrObjectNotFound.
func (b *Badger) Get(ctx context.Context, name string) (storageutil.ReadSizeCloser, error) {
	txn := b.DB.NewTransaction(false)
	item, err := txn.Get([]byte(name))
	if err != nil {
		txn.Discard()
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storageutil.ErrObjectNotFound
		}
		return nil, err
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		txn.Discard()
		return nil, err
	}

	return &badgerReader{
		txn:    txn,
		reader: bytes.NewReader(value),
		size:   item.ValueSize(),
	}, nil
}

// badgerWriter implements io.WriteCloser.
type badgerWriter struct {
	b    *bytes.Buffer
	txn  *badger.Txn
	name string
}

func (bw *badgerWriter) Write(b []byte) (n int, err error) {
	return bw.b.Write(b)
}

func (bw *badgerWriter) Close() error {
	if err := bw.txn.Set([]byte(bw.name), bw.b.Bytes()); err != nil {
		bw.txn.Discard()
		return err
	}
	return bw.txn.Commit()
}

// badgerReader implements storageutil.ReadSizeCloser.
type badgerReader struct {
	txn    *badger.Txn
	reader io.Reader
	size   int64
}

func (br *badgerReader) Read(p []byte) (n int, err error) {
	return br.reader.Read(p)
}

func (br *badgerReader) Close() error {
	br.txn.Discard()
	return nil
}

func (br *badgerReader) Size() int64 {
	return br.size
}
