// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// Package archive keeps built proofs on disk, keyed by transfer id, so a
// relayer can re-submit a proof without asking the federation to sign again.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/asbprover/asbproof"
	"github.com/offchainlabs/asbprover/asbwire"
	"github.com/offchainlabs/asbprover/util/containers"
)

var (
	ErrNotFound = errors.New("proof not found in archive")
	ErrConflict = errors.New("archive already holds a different proof for this transfer")
)

type Config struct {
	Enable    bool   `koanf:"enable"`
	DataDir   string `koanf:"data-dir"`
	CacheSize int    `koanf:"cache-size"`
}

var DefaultConfig = Config{
	Enable:    false,
	DataDir:   "",
	CacheSize: 128,
}

func ConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".enable", DefaultConfig.Enable, "store every built proof in the local archive")
	f.String(prefix+".data-dir", DefaultConfig.DataDir, "directory of the proof archive database")
	f.Int(prefix+".cache-size", DefaultConfig.CacheSize, "number of archived proofs kept in memory")
}

func (c *Config) Validate() error {
	if !c.Enable {
		return nil
	}
	if c.DataDir == "" {
		return errors.New("archive enabled without a data directory")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("invalid archive cache size %d", c.CacheSize)
	}
	return nil
}

// Record is the stored form of a proof.
type Record struct {
	Tuid              uint64
	Revision          asbwire.FormatRevision
	Header            []byte
	BlockProof        []byte
	Receipt           []byte
	InclusionPath     []common.Hash
	ReceiptMerkleRoot common.Hash
	BlockHash         common.Hash
	Signatures        []asbwire.SignatureEntry
}

// NewRecord copies the proof, so later changes to it do not reach the record.
func NewRecord(tuid uint64, proof *asbproof.Proof) *Record {
	return &Record{
		Tuid:              tuid,
		Revision:          proof.Revision,
		Header:            common.CopyBytes(proof.Header),
		BlockProof:        common.CopyBytes(proof.BlockProof),
		Receipt:           common.CopyBytes(proof.Receipt),
		InclusionPath:     append([]common.Hash(nil), proof.InclusionPath...),
		ReceiptMerkleRoot: proof.ReceiptMerkleRoot,
		BlockHash:         proof.BlockHash,
		Signatures:        copySignatures(proof.Signatures),
	}
}

func copySignatures(signatures []asbwire.SignatureEntry) []asbwire.SignatureEntry {
	if signatures == nil {
		return nil
	}
	out := make([]asbwire.SignatureEntry, len(signatures))
	for i, entry := range signatures {
		out[i] = asbwire.SignatureEntry{Signer: entry.Signer, Signature: common.CopyBytes(entry.Signature)}
	}
	return out
}

func (r *Record) Proof() *asbproof.Proof {
	return &asbproof.Proof{
		Revision:          r.Revision,
		Header:            common.CopyBytes(r.Header),
		BlockProof:        common.CopyBytes(r.BlockProof),
		Receipt:           common.CopyBytes(r.Receipt),
		InclusionPath:     append([]common.Hash(nil), r.InclusionPath...),
		ReceiptMerkleRoot: r.ReceiptMerkleRoot,
		BlockHash:         r.BlockHash,
		Signatures:        copySignatures(r.Signatures),
	}
}

var proofPrefix = []byte("p")

// Keys sort in tuid order.
func tuidKey(tuid uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", proofPrefix, tuid))
}

// Archive caches the stored encoding rather than decoded records, so every
// read hands out a fresh record matching what is on disk.
type Archive struct {
	mutex sync.Mutex
	db    *leveldb.DB
	cache *containers.LruCache[uint64, []byte]
}

func Open(config *Config) (*Archive, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(config.DataDir, nil)
	if err != nil {
		return nil, fmt.Errorf("opening proof archive %s: %w", config.DataDir, err)
	}
	return newArchive(db, config.CacheSize), nil
}

func OpenInMemory(cacheSize int) (*Archive, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return newArchive(db, cacheSize), nil
}

func newArchive(db *leveldb.DB, cacheSize int) *Archive {
	return &Archive{
		db:    db,
		cache: containers.NewLruCache[uint64, []byte](cacheSize),
	}
}

// Put is idempotent for identical proofs and refuses to replace a stored
// proof with a different one.
func (a *Archive) Put(_ context.Context, tuid uint64, proof *asbproof.Proof) error {
	record := NewRecord(tuid, proof)
	encoded, err := rlp.EncodeToBytes(record)
	if err != nil {
		return fmt.Errorf("encoding archive record: %w", err)
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()
	key := tuidKey(tuid)
	existing, err := a.db.Get(key, nil)
	if err == nil {
		if bytes.Equal(existing, encoded) {
			return nil
		}
		return fmt.Errorf("%w: tuid %d", ErrConflict, tuid)
	}
	if !errors.Is(err, leveldb.ErrNotFound) {
		return err
	}
	if err := a.db.Put(key, encoded, nil); err != nil {
		return err
	}
	a.cache.Add(tuid, encoded)
	return nil
}

func (a *Archive) Get(_ context.Context, tuid uint64) (*Record, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if encoded, ok := a.cache.Get(tuid); ok {
		return decodeRecord(encoded)
	}
	encoded, err := a.db.Get(tuidKey(tuid), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: tuid %d", ErrNotFound, tuid)
	}
	if err != nil {
		return nil, err
	}
	record, err := decodeRecord(encoded)
	if err != nil {
		return nil, err
	}
	a.cache.Add(tuid, encoded)
	return record, nil
}

func (a *Archive) Has(_ context.Context, tuid uint64) (bool, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.cache.Contains(tuid) {
		return true, nil
	}
	return a.db.Has(tuidKey(tuid), nil)
}

// List returns up to maxResults records with tuid at or above startingTuid,
// in tuid order. maxResults of zero means no limit.
func (a *Archive) List(_ context.Context, startingTuid uint64, maxResults uint64) ([]*Record, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	rng := util.BytesPrefix(proofPrefix)
	rng.Start = tuidKey(startingTuid)
	iter := a.db.NewIterator(rng, nil)
	defer iter.Release()
	var records []*Record
	for iter.Next() {
		if maxResults > 0 && uint64(len(records)) >= maxResults {
			break
		}
		record, err := decodeRecord(iter.Value())
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, iter.Error()
}

func (a *Archive) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.cache.Clear()
	return a.db.Close()
}

func decodeRecord(data []byte) (*Record, error) {
	var record Record
	if err := rlp.DecodeBytes(data, &record); err != nil {
		return nil, fmt.Errorf("decoding archive record: %w", err)
	}
	return &record, nil
}
