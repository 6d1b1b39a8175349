package store

import (
	"bytes"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// UpsertNode inserts n, or merges its metadata into an existing node
// sharing the same Identifier (union-with-overwrite — MergeMetadata
// already implements that union). The stable storage ID of the
// existing node is preserved across the merge so outstanding edges
// referencing it by Identifier remain valid.
func (s *Store) UpsertNode(n *graphmodel.Node) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return upsertNodeTx(tx, n)
	})
}

func upsertNodeTx(tx *bolt.Tx, n *graphmodel.Node) error {
	identIdx := tx.Bucket(bucketNodesByIdent)
	nodes := tx.Bucket(bucketNodes)
	fileIdx := tx.Bucket(bucketFileIndex)

	if existingID := identIdx.Get([]byte(n.Identifier)); existingID != nil {
		existing, err := getNodeByIDTx(tx, string(existingID))
		if err != nil {
			return err
		}
		if existing.SourceFile != "" && n.SourceFile != "" && existing.SourceFile != n.SourceFile {
			return fmt.Errorf("%w: identifier %q claimed by both %q and %q", errs.ErrIdentifierClash, n.Identifier, existing.SourceFile, n.SourceFile)
		}
		existing.MergeMetadata(n.Metadata)
		if n.Location != nil {
			existing.Location = n.Location
		}
		if n.Name != "" {
			existing.Name = n.Name
		}
		data, err := marshal(existing)
		if err != nil {
			return err
		}
		return nodes.Put(existingID, data)
	}

	data, err := marshal(n)
	if err != nil {
		return err
	}
	if err := nodes.Put([]byte(n.ID), data); err != nil {
		return err
	}
	if err := identIdx.Put([]byte(n.Identifier), []byte(n.ID)); err != nil {
		return err
	}
	return fileIdx.Put(fileIndexKey(n.SourceFile, n.ID), []byte(n.ID))
}

func fileIndexKey(file, nodeID string) []byte {
	var b bytes.Buffer
	b.WriteString(file)
	b.WriteByte(0)
	b.WriteString(nodeID)
	return b.Bytes()
}

// GetNodeByID returns the node stored under its internal storage key.
func (s *Store) GetNodeByID(id string) (*graphmodel.Node, error) {
	var n *graphmodel.Node
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		n, err = getNodeByIDTx(tx, id)
		return err
	})
	return n, err
}

func getNodeByIDTx(tx *bolt.Tx, id string) (*graphmodel.Node, error) {
	data := tx.Bucket(bucketNodes).Get([]byte(id))
	if data == nil {
		return nil, fmt.Errorf("store: no node with id %q", id)
	}
	var n graphmodel.Node
	if err := unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetNodeByIdentifier looks a node up by its RDF address.
func (s *Store) GetNodeByIdentifier(identifier string) (*graphmodel.Node, error) {
	var n *graphmodel.Node
	err := s.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketNodesByIdent).Get([]byte(identifier))
		if id == nil {
			return fmt.Errorf("store: no node with identifier %q", identifier)
		}
		var err error
		n, err = getNodeByIDTx(tx, string(id))
		return err
	})
	return n, err
}

// FindByKind returns every node of the given kind. Intended for the
// query surface's findByKind operation, not for hot-path lookups.
func (s *Store) FindByKind(kind graphmodel.NodeKind) ([]*graphmodel.Node, error) {
	var out []*graphmodel.Node
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketNodes).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var n graphmodel.Node
			if err := unmarshal(v, &n); err != nil {
				return err
			}
			if n.Kind == kind {
				cp := n
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

// AllNodes returns every stored node. Used by whole-graph scans
// (inheritable propagation, statistics) that can't key off a single
// identifier or kind.
func (s *Store) AllNodes() ([]*graphmodel.Node, error) {
	var out []*graphmodel.Node
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketNodes).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var n graphmodel.Node
			if err := unmarshal(v, &n); err != nil {
				return err
			}
			cp := n
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}
