package store

import (
	"bytes"

	bolt "go.etcd.io/bbolt"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// DeleteFile removes every node sourced from file, every edge incident
// on one of those nodes, and the corresponding secondary-index
// entries. Re-analysis of a changed file calls this before the new
// extraction results are upserted, so stale declarations left behind
// by a shrinking file don't linger in the graph.
func (s *Store) DeleteFile(file string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deleteFileTx(tx, file)
	})
}

func deleteFileTx(tx *bolt.Tx, file string) error {
	nodeIDs, err := nodeIDsForFile(tx, file)
	if err != nil {
		return err
	}
	identBucket := tx.Bucket(bucketNodesByIdent)
	nodesBucket := tx.Bucket(bucketNodes)
	fileIdx := tx.Bucket(bucketFileIndex)

	for _, id := range nodeIDs {
		n, err := getNodeByIDTx(tx, id)
		if err != nil {
			continue
		}
		if err := deleteEdgesForNodeTx(tx, n.Identifier); err != nil {
			return err
		}
		if err := identBucket.Delete([]byte(n.Identifier)); err != nil {
			return err
		}
		if err := nodesBucket.Delete([]byte(id)); err != nil {
			return err
		}
		if err := fileIdx.Delete(fileIndexKey(file, id)); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceFile atomically replaces everything derived from file: the
// stale nodes and edges DeleteFile would remove, and the new node and
// edge set a re-analysis produced, all inside one bbolt write
// transaction. A mid-batch failure (a dangling edge endpoint, a
// marshal error) rolls the whole file's writes back rather than
// leaving the graph with half of one file's declarations upserted and
// the old ones already deleted.
func (s *Store) ReplaceFile(file string, nodes []*graphmodel.Node, edges []*graphmodel.Edge) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := deleteFileTx(tx, file); err != nil {
			return err
		}
		for _, n := range nodes {
			if err := upsertNodeTx(tx, n); err != nil {
				return err
			}
		}
		for _, e := range edges {
			if err := upsertEdgeTx(tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func nodeIDsForFile(tx *bolt.Tx, file string) ([]string, error) {
	var ids []string
	prefix := append([]byte(file), 0)
	c := tx.Bucket(bucketFileIndex).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		ids = append(ids, string(v))
	}
	return ids, nil
}

// deleteEdgesForNodeTx removes every edge touching nodeIdentifier as
// either endpoint, along with its secondary-index entries.
func deleteEdgesForNodeTx(tx *bolt.Tx, nodeIdentifier string) error {
	edges := tx.Bucket(bucketEdges)
	byFrom := tx.Bucket(bucketEdgesByFrom)
	byTo := tx.Bucket(bucketEdgesByTo)
	byKey := tx.Bucket(bucketEdgesByKey)

	outgoing, err := collectIndexedEdgeIDsTx(tx, bucketEdgesByFrom, nodeIdentifier)
	if err != nil {
		return err
	}
	incoming, err := collectIndexedEdgeIDsTx(tx, bucketEdgesByTo, nodeIdentifier)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(outgoing)+len(incoming))
	for _, id := range append(outgoing, incoming...) {
		if seen[id] {
			continue
		}
		seen[id] = true

		data := edges.Get([]byte(id))
		if data == nil {
			continue
		}
		var e struct {
			From string
			To   string
			Kind string
		}
		if err := unmarshal(data, &e); err != nil {
			return err
		}
		if err := byKey.Delete(edgeDedupKey(e.From, e.To, graphmodel.EdgeKind(e.Kind))); err != nil {
			return err
		}
		if err := byFrom.Delete(edgeIndexKey(e.From, id)); err != nil {
			return err
		}
		if err := byTo.Delete(edgeIndexKey(e.To, id)); err != nil {
			return err
		}
		if err := edges.Delete([]byte(id)); err != nil {
			return err
		}
	}
	return nil
}

func collectIndexedEdgeIDsTx(tx *bolt.Tx, indexBucket []byte, nodeIdentifier string) ([]string, error) {
	var ids []string
	prefix := append([]byte(nodeIdentifier), 0)
	c := tx.Bucket(indexBucket).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		ids = append(ids, string(v))
	}
	return ids, nil
}
