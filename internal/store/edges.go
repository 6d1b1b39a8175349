package store

import (
	"bytes"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// UpsertEdge inserts e, keyed by (From, To, Kind): a second upsert
// naming the same triple merges metadata into the existing edge
// (union-with-overwrite) instead of creating a duplicate. Rejected
// with ErrDanglingEndpoint if either endpoint doesn't resolve to a
// known node identifier — external/unresolved targets must be
// represented as an explicit external-resource node first, as the
// Dependency extractor does, never as a bare dangling reference.
func (s *Store) UpsertEdge(e *graphmodel.Edge) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return upsertEdgeTx(tx, e)
	})
}

func upsertEdgeTx(tx *bolt.Tx, e *graphmodel.Edge) error {
	identIdx := tx.Bucket(bucketNodesByIdent)
	if identIdx.Get([]byte(e.From)) == nil {
		return fmt.Errorf("%w: edge %s has unknown From %q", errs.ErrDanglingEndpoint, e.ID, e.From)
	}
	if identIdx.Get([]byte(e.To)) == nil {
		return fmt.Errorf("%w: edge %s has unknown To %q", errs.ErrDanglingEndpoint, e.ID, e.To)
	}

	edges := tx.Bucket(bucketEdges)
	dedupKey := edgeDedupKey(e.From, e.To, e.Kind)
	byKey := tx.Bucket(bucketEdgesByKey)

	if existingID := byKey.Get(dedupKey); existingID != nil {
		data := edges.Get(existingID)
		if data == nil {
			return fmt.Errorf("store: edge index points at missing edge %q", existingID)
		}
		var existing graphmodel.Edge
		if err := unmarshal(data, &existing); err != nil {
			return err
		}
		existing.MergeMetadata(e.Metadata)
		out, err := marshal(&existing)
		if err != nil {
			return err
		}
		return edges.Put(existingID, out)
	}

	data, err := marshal(e)
	if err != nil {
		return err
	}
	if err := edges.Put([]byte(e.ID), data); err != nil {
		return err
	}
	if err := byKey.Put(dedupKey, []byte(e.ID)); err != nil {
		return err
	}
	if err := tx.Bucket(bucketEdgesByFrom).Put(edgeIndexKey(e.From, e.ID), []byte(e.ID)); err != nil {
		return err
	}
	return tx.Bucket(bucketEdgesByTo).Put(edgeIndexKey(e.To, e.ID), []byte(e.ID))
}

func edgeDedupKey(from, to string, kind graphmodel.EdgeKind) []byte {
	var b bytes.Buffer
	b.WriteString(from)
	b.WriteByte(0)
	b.WriteString(to)
	b.WriteByte(0)
	b.WriteString(string(kind))
	return b.Bytes()
}

func edgeIndexKey(endpoint, edgeID string) []byte {
	var b bytes.Buffer
	b.WriteString(endpoint)
	b.WriteByte(0)
	b.WriteString(edgeID)
	return b.Bytes()
}

// OutgoingEdges returns edges whose From matches nodeIdentifier,
// optionally filtered to a single kind ("" matches every kind).
func (s *Store) OutgoingEdges(nodeIdentifier string, kind graphmodel.EdgeKind) ([]*graphmodel.Edge, error) {
	return s.edgesByIndex(bucketEdgesByFrom, nodeIdentifier, kind)
}

// IncomingEdges returns edges whose To matches nodeIdentifier,
// optionally filtered to a single kind ("" matches every kind).
func (s *Store) IncomingEdges(nodeIdentifier string, kind graphmodel.EdgeKind) ([]*graphmodel.Edge, error) {
	return s.edgesByIndex(bucketEdgesByTo, nodeIdentifier, kind)
}

// Direction picks which index GetEdges scans.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// GetEdges returns the edges incident on nodeIdentifier in the given
// direction, optionally filtered to a single kind ("" matches every
// kind).
func (s *Store) GetEdges(nodeIdentifier string, kind graphmodel.EdgeKind, dir Direction) ([]*graphmodel.Edge, error) {
	if dir == Incoming {
		return s.IncomingEdges(nodeIdentifier, kind)
	}
	return s.OutgoingEdges(nodeIdentifier, kind)
}

func (s *Store) edgesByIndex(indexBucket []byte, nodeIdentifier string, kind graphmodel.EdgeKind) ([]*graphmodel.Edge, error) {
	var out []*graphmodel.Edge
	prefix := append([]byte(nodeIdentifier), 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(indexBucket).Cursor()
		edges := tx.Bucket(bucketEdges)
		for k, edgeID := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, edgeID = c.Next() {
			data := edges.Get(edgeID)
			if data == nil {
				continue
			}
			var e graphmodel.Edge
			if err := unmarshal(data, &e); err != nil {
				return err
			}
			if kind == "" || e.Kind == kind {
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

// AllEdges returns every stored edge. Used by whole-graph scans
// (cross-namespace queries, statistics) that can't key off a single
// node identifier or kind.
func (s *Store) AllEdges() ([]*graphmodel.Edge, error) {
	var out []*graphmodel.Edge
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketEdges).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var e graphmodel.Edge
			if err := unmarshal(v, &e); err != nil {
				return err
			}
			cp := e
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

// GetEdge looks an edge up by its internal storage key.
func (s *Store) GetEdge(id string) (*graphmodel.Edge, error) {
	var e *graphmodel.Edge
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketEdges).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("store: no edge with id %q", id)
		}
		var v graphmodel.Edge
		if err := unmarshal(data, &v); err != nil {
			return err
		}
		e = &v
		return nil
	})
	return e, err
}

// DeleteEdge removes a single edge and its index entries.
func (s *Store) DeleteEdge(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		edges := tx.Bucket(bucketEdges)
		data := edges.Get([]byte(id))
		if data == nil {
			return nil
		}
		var e graphmodel.Edge
		if err := unmarshal(data, &e); err != nil {
			return err
		}
		if err := tx.Bucket(bucketEdgesByKey).Delete(edgeDedupKey(e.From, e.To, e.Kind)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketEdgesByFrom).Delete(edgeIndexKey(e.From, id)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketEdgesByTo).Delete(edgeIndexKey(e.To, id)); err != nil {
			return err
		}
		return edges.Delete([]byte(id))
	})
}

// Neighbors returns the distinct set of nodes reachable from
// nodeIdentifier via outgoing edges, optionally filtered to a single
// kind ("" matches every kind), breadth-first up to maxDepth hops
// (maxDepth < 1 is treated as 1).
func (s *Store) Neighbors(nodeIdentifier string, kind graphmodel.EdgeKind, maxDepth int) ([]*graphmodel.Node, error) {
	if maxDepth < 1 {
		maxDepth = 1
	}
	visited := map[string]bool{nodeIdentifier: true}
	frontier := []string{nodeIdentifier}
	var out []*graphmodel.Node

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			edges, err := s.OutgoingEdges(id, kind)
			if err != nil {
				return nil, err
			}
			for _, e := range edges {
				if visited[e.To] {
					continue
				}
				visited[e.To] = true
				n, err := s.GetNodeByIdentifier(e.To)
				if err != nil {
					continue // edge-integrity check at write time makes this unreachable in practice
				}
				out = append(out, n)
				next = append(next, e.To)
			}
		}
		frontier = next
	}
	return out, nil
}
