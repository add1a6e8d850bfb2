// Package storage provides the embedded key-value persistence layer: a
// block store keyed by header hash with a height index and tip pointer, and
// a UTXO store keyed by outpoint.
package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/btcgo-edu/btcgo/consensus"
)

var (
	bucketBlocks = []byte("blocks_by_hash")
	bucketHeight = []byte("hash_by_height")
	bucketMeta   = []byte("singletons")
	bucketUTXO   = []byte("utxo_by_outpoint")
)

var (
	keyTip    = []byte("tip")
	keyHeight = []byte("height")
)

// DB is the embedded KV store backing the block store and UTXO store. Block
// writes are buffered and require an explicit Flush to become durable;
// UTXO writes flush eagerly on every call.
type DB struct {
	dir string
	db  *bolt.DB
}

// Open opens (creating if necessary) the on-disk KV store under datadir.
func Open(datadir string) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("storage: datadir required")
	}
	dir := DataDir(datadir)
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "kv.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
		NoSync:  true, // block-store writes are batched; Flush syncs explicitly
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open bbolt: %w", err)
	}

	d := &DB{dir: dir, db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketBlocks, bucketHeight, bucketMeta, bucketUTXO} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying KV handle.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Flush makes all buffered block-store writes durable.
func (d *DB) Flush() error {
	return d.db.Sync()
}

// StoreBlock persists a block under its own hash. Buffered: call Flush to
// make it durable.
func (d *DB) StoreBlock(b *consensus.Block) error {
	hash := b.Hash()
	raw := b.Serialize()
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlocks).Put(hash[:], raw)
	})
}

// GetBlock looks up a block by hash.
func (d *DB) GetBlock(hash consensus.Hash256) (consensus.Block, bool, error) {
	var raw []byte
	if err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBlocks).Get(hash[:])
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return consensus.Block{}, false, err
	}
	if raw == nil {
		return consensus.Block{}, false, nil
	}
	b, err := consensus.DeserializeBlock(raw)
	if err != nil {
		return consensus.Block{}, false, fmt.Errorf("storage: decode block: %w", err)
	}
	return b, true, nil
}

// HasBlock reports whether a block with the given hash is stored.
func (d *DB) HasBlock(hash consensus.Hash256) (bool, error) {
	var found bool
	err := d.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketBlocks).Get(hash[:]) != nil
		return nil
	})
	return found, err
}

// StoreHeight records the block hash at a given chain height. Buffered.
func (d *DB) StoreHeight(height uint32, hash consensus.Hash256) error {
	key := heightKey(height)
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHeight).Put(key, hash[:])
	})
}

// GetBlockByHeight looks up the block stored at a given height.
func (d *DB) GetBlockByHeight(height uint32) (consensus.Block, bool, error) {
	var hashBytes []byte
	if err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketHeight).Get(heightKey(height))
		if v != nil {
			hashBytes = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return consensus.Block{}, false, err
	}
	if hashBytes == nil {
		return consensus.Block{}, false, nil
	}
	var hash consensus.Hash256
	copy(hash[:], hashBytes)
	return d.GetBlock(hash)
}

// StoreTip records the current chain tip's block hash. Buffered.
func (d *DB) StoreTip(hash consensus.Hash256) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keyTip, hash[:])
	})
}

// GetTip returns the current chain tip's block hash.
func (d *DB) GetTip() (consensus.Hash256, bool, error) {
	var hash consensus.Hash256
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get(keyTip)
		if v == nil {
			return nil
		}
		copy(hash[:], v)
		ok = true
		return nil
	})
	return hash, ok, err
}

// StoreChainHeight records the chain height (number of blocks = height + 1).
// Buffered.
func (d *DB) StoreChainHeight(height uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], height)
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keyHeight, b[:])
	})
}

// GetChainHeight returns the stored chain height.
func (d *DB) GetChainHeight() (uint32, bool, error) {
	var height uint32
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get(keyHeight)
		if v == nil {
			return nil
		}
		height = binary.LittleEndian.Uint32(v)
		ok = true
		return nil
	})
	return height, ok, err
}

func heightKey(height uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], height)
	return b[:]
}

// AddUTXO stores a UTXO record under its outpoint key and flushes eagerly.
func (d *DB) AddUTXO(point consensus.OutPoint, u consensus.UTXO) error {
	key := point.Serialize()
	val := u.Serialize()
	if err := d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUTXO).Put(key, val)
	}); err != nil {
		return err
	}
	return d.db.Sync()
}

// RemoveUTXO deletes a UTXO record by outpoint and flushes eagerly.
func (d *DB) RemoveUTXO(point consensus.OutPoint) error {
	key := point.Serialize()
	if err := d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUTXO).Delete(key)
	}); err != nil {
		return err
	}
	return d.db.Sync()
}

// GetUTXO looks up a UTXO record by outpoint.
func (d *DB) GetUTXO(point consensus.OutPoint) (consensus.UTXO, bool, error) {
	key := point.Serialize()
	var raw []byte
	if err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketUTXO).Get(key)
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return consensus.UTXO{}, false, err
	}
	if raw == nil {
		return consensus.UTXO{}, false, nil
	}
	u, err := consensus.DeserializeUTXO(raw)
	if err != nil {
		return consensus.UTXO{}, false, fmt.Errorf("storage: decode utxo: %w", err)
	}
	return u, true, nil
}

// HasUTXO reports whether an outpoint has an unspent entry.
func (d *DB) HasUTXO(point consensus.OutPoint) (bool, error) {
	key := point.Serialize()
	var found bool
	err := d.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketUTXO).Get(key) != nil
		return nil
	})
	return found, err
}

// ScriptUTXO pairs an outpoint with its UTXO record, returned by
// GetUTXOsForScript and GetBalance.
type ScriptUTXO struct {
	Outpoint consensus.OutPoint
	UTXO     consensus.UTXO
}

// GetUTXOsForScript scans the full UTXO set and returns every entry whose
// output script_pubkey equals script.
func (d *DB) GetUTXOsForScript(script []byte) ([]ScriptUTXO, error) {
	var out []ScriptUTXO
	err := d.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketUTXO).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			u, err := consensus.DeserializeUTXO(v)
			if err != nil {
				return fmt.Errorf("storage: decode utxo: %w", err)
			}
			if !bytes.Equal(u.Output.ScriptPubKey, script) {
				continue
			}
			point, err := consensus.DeserializeOutPoint(k)
			if err != nil {
				return fmt.Errorf("storage: decode outpoint key: %w", err)
			}
			out = append(out, ScriptUTXO{Outpoint: point, UTXO: u})
		}
		return nil
	})
	return out, err
}

// GetBalance sums output.value over every UTXO whose script_pubkey equals
// script.
func (d *DB) GetBalance(script []byte) (uint64, error) {
	utxos, err := d.GetUTXOsForScript(script)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, su := range utxos {
		total += su.UTXO.Output.Value
	}
	return total, nil
}
