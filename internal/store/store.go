// Package store implements the graph store: a transactional,
// file-backed node/edge index with MVCC snapshot reads, built on
// go.etcd.io/bbolt, whose single-writer/many-reader transactions give
// the snapshot-isolation guarantee directly rather than something
// hand-rolled over database/sql.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/codepathfinder/depgraph/internal/errs"
)

// SchemaVersion is bumped whenever the on-disk bucket layout changes
// incompatibly. Open rejects a database whose schema.json sidecar
// disagrees, rather than silently reinterpreting its bytes.
const SchemaVersion = 1

type schemaFile struct {
	Version int `json:"version"`
}

var (
	bucketNodes        = []byte("nodes")               // node.ID -> json(Node)
	bucketNodesByIdent = []byte("nodes_by_identifier")  // node.Identifier -> node.ID
	bucketEdges        = []byte("edges")                // edge.ID -> json(Edge)
	bucketEdgesByFrom  = []byte("edges_by_from")        // from\x00edge.ID -> edge.ID
	bucketEdgesByTo    = []byte("edges_by_to")          // to\x00edge.ID -> edge.ID
	bucketEdgesByKey   = []byte("edges_by_from_to_kind") // from\x00to\x00kind -> edge.ID
	bucketFileIndex    = []byte("file_index")           // sourceFile\x00node.ID -> node.ID
)

var allBuckets = [][]byte{
	bucketNodes, bucketNodesByIdent, bucketEdges, bucketEdgesByFrom,
	bucketEdgesByTo, bucketEdgesByKey, bucketFileIndex,
}

// Store is the embedded, file-backed graph store.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the bbolt-backed store at path. A schema.json
// sidecar is written alongside the database file on first open and
// checked on every subsequent open; a mismatch is rejected with
// ErrSchemaVersionMismatch rather than opened against code that
// doesn't understand its layout.
func Open(path string) (*Store, error) {
	if err := checkOrWriteSchemaSidecar(path + ".schema.json"); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func checkOrWriteSchemaSidecar(sidecarPath string) error {
	data, err := os.ReadFile(sidecarPath)
	if os.IsNotExist(err) {
		data, err := json.Marshal(schemaFile{Version: SchemaVersion})
		if err != nil {
			return err
		}
		return os.WriteFile(sidecarPath, data, 0o644)
	}
	if err != nil {
		return fmt.Errorf("store: read schema sidecar %s: %w", sidecarPath, err)
	}
	var sf schemaFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("store: parse schema sidecar %s: %w", sidecarPath, err)
	}
	if sf.Version != SchemaVersion {
		return fmt.Errorf("%w: sidecar has schema %d, binary expects %d", errs.ErrSchemaVersionMismatch, sf.Version, SchemaVersion)
	}
	return nil
}

func (s *Store) init() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
