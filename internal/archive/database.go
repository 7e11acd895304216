package archive

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/drios/docscope/internal/document"
)

const documentsBucket = "documents"

// DB defines the persistence operations the archive needs.
type DB interface {
	// SaveDocument persists a document, assigning a fresh id when ID is zero.
	SaveDocument(doc *document.StoredDocument) error

	// ListDocuments returns all documents in insertion order.
	ListDocuments() ([]document.StoredDocument, error)

	// DeleteDocument removes a document. Deleting an absent id is a no-op.
	DeleteDocument(id int64) error

	// Close closes the database.
	Close() error
}

// BoltDB implements DB using bbolt. Ids come from the bucket's sequence,
// so keys are monotonically increasing and iteration order is insertion
// order.
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB opens (or creates) the database file.
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(documentsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveDocument persists a document, assigning the next sequence id when
// none is set.
func (b *BoltDB) SaveDocument(doc *document.StoredDocument) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentsBucket))
		if doc.ID == 0 {
			seq, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("assigning document id: %w", err)
			}
			doc.ID = int64(seq)
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling document: %w", err)
		}
		return bucket.Put(itob(doc.ID), data)
	})
}

// ListDocuments returns all documents in insertion order.
func (b *BoltDB) ListDocuments() ([]document.StoredDocument, error) {
	docs := make([]document.StoredDocument, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentsBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var doc document.StoredDocument
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshaling document: %w", err)
			}
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument removes a document by id. bbolt's Delete on a missing key
// is a no-op, which gives the idempotent delete the API promises.
func (b *BoltDB) DeleteDocument(id int64) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentsBucket))
		return bucket.Delete(itob(id))
	})
}

// Close closes the database.
func (b *BoltDB) Close() error {
	return b.db.Close()
}

// itob encodes an id big-endian so byte order matches numeric order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
