// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package merkletree

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NotFoundError is returned when a proof is requested for a leaf that isn't
// part of the tree.
type NotFoundError struct {
	LeafHash common.Hash
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("leaf %v not found in merkle tree", e.LeafHash)
}

// SortedTree is a binary merkle tree over a deduplicated, sorted set of leaf
// hashes. Pairs are hashed in ascending order, so a proof carries no
// left/right flags. An unmatched trailing node is promoted unchanged.
//
// A SortedTree is immutable; build a new one when the leaf set changes.
type SortedTree struct {
	layers [][][]byte
}

// CombinedHash hashes two nodes in ascending byte order. If one side is
// missing the other is returned as is.
func CombinedHash(first, second []byte) []byte {
	if len(first) == 0 {
		return second
	}
	if len(second) == 0 {
		return first
	}
	if bytes.Compare(first, second) > 0 {
		first, second = second, first
	}
	return crypto.Keccak256(first, second)
}

func NewSortedTree(leaves [][]byte) *SortedTree {
	seen := make(map[common.Hash]struct{}, len(leaves))
	elements := make([][]byte, 0, len(leaves))
	for _, leaf := range leaves {
		if len(leaf) == 0 {
			continue
		}
		h := crypto.Keccak256Hash(leaf)
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		elements = append(elements, h.Bytes())
	}
	sort.Slice(elements, func(i, j int) bool {
		return bytes.Compare(elements[i], elements[j]) < 0
	})
	return &SortedTree{layers: buildLayers(elements)}
}

func buildLayers(elements [][]byte) [][][]byte {
	if len(elements) == 0 {
		// sentinel: a single layer with one empty node
		return [][][]byte{{{}}}
	}
	layers := [][][]byte{elements}
	for len(layers[len(layers)-1]) > 1 {
		layers = append(layers, nextLayer(layers[len(layers)-1]))
	}
	return layers
}

func nextLayer(elements [][]byte) [][]byte {
	next := make([][]byte, 0, (len(elements)+1)/2)
	for i := 0; i < len(elements); i += 2 {
		if i+1 == len(elements) {
			next = append(next, elements[i])
		} else {
			next = append(next, CombinedHash(elements[i], elements[i+1]))
		}
	}
	return next
}

// RootBytes returns the top node, which is empty for a tree without leaves.
func (t *SortedTree) RootBytes() []byte {
	return common.CopyBytes(t.layers[len(t.layers)-1][0])
}

// Root returns the top node as a hash; the zero hash for an empty tree.
func (t *SortedTree) Root() common.Hash {
	return common.BytesToHash(t.layers[len(t.layers)-1][0])
}

func (t *SortedTree) IsEmpty() bool {
	return len(t.layers[0][0]) == 0
}

func (t *SortedTree) LeafCount() int {
	if t.IsEmpty() {
		return 0
	}
	return len(t.layers[0])
}

func (t *SortedTree) Layers() [][]common.Hash {
	out := make([][]common.Hash, len(t.layers))
	for i, layer := range t.layers {
		out[i] = make([]common.Hash, len(layer))
		for j, node := range layer {
			out[i][j] = common.BytesToHash(node)
		}
	}
	return out
}

func (t *SortedTree) Contains(leaf []byte) bool {
	_, ok := t.indexOf(crypto.Keccak256(leaf))
	return ok && len(leaf) > 0
}

func (t *SortedTree) indexOf(leafHash []byte) (int, bool) {
	layer := t.layers[0]
	idx := sort.Search(len(layer), func(i int) bool {
		return bytes.Compare(layer[i], leafHash) >= 0
	})
	if idx < len(layer) && bytes.Equal(layer[idx], leafHash) {
		return idx, true
	}
	return 0, false
}

// Proof returns the sibling hashes from leaf to root.
func (t *SortedTree) Proof(leaf []byte) ([]common.Hash, error) {
	leafHash := crypto.Keccak256Hash(leaf)
	if len(leaf) == 0 || t.IsEmpty() {
		return nil, &NotFoundError{LeafHash: leafHash}
	}
	index, ok := t.indexOf(leafHash.Bytes())
	if !ok {
		return nil, &NotFoundError{LeafHash: leafHash}
	}
	proof := []common.Hash{}
	for _, layer := range t.layers[:len(t.layers)-1] {
		pair := index ^ 1
		if pair < len(layer) {
			proof = append(proof, common.BytesToHash(layer[pair]))
		}
		index /= 2
	}
	return proof, nil
}

// VerifySortedProof replays a proof the way the on-chain verifier does.
func VerifySortedProof(leaf []byte, proof []common.Hash, root common.Hash) bool {
	if len(leaf) == 0 {
		return false
	}
	node := crypto.Keccak256(leaf)
	for _, sibling := range proof {
		node = CombinedHash(node, sibling.Bytes())
	}
	return common.BytesToHash(node) == root
}
