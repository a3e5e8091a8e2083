// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package termcache

import (
	"encoding/binary"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/vital-ai/vitalgraph-sparql/sql"
)

var bucketName = []byte("term_ids")

// BoltOverflow is an optional, best-effort on-disk backing store for ids
// the in-memory LRU has evicted. It exists purely to give a warm-restart
// process a head start on hot (text, kind) pairs that a cold LRU would
// otherwise have to re-resolve from the backend one batch at a time; it is
// never treated as authoritative by Cache (see Cache.Get), so a corrupt or
// stale bolt file can never make a query return a wrong answer, only a
// slower one.
type BoltOverflow struct {
	db *bolt.DB
}

// OpenBoltOverflow opens (creating if needed) a bolt-backed overflow store
// at path.
func OpenBoltOverflow(path string) (*BoltOverflow, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("termcache: opening overflow store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("termcache: initializing overflow bucket: %w", err)
	}
	return &BoltOverflow{db: db}, nil
}

func encodeKey(key sql.CacheKey) []byte {
	b := make([]byte, 1+len(key.Text))
	b[0] = byte(key.Kind)
	copy(b[1:], key.Text)
	return b
}

// Get implements Overflow.
func (o *BoltOverflow) Get(key sql.CacheKey) (sql.TermID, bool) {
	var id sql.TermID
	var found bool
	_ = o.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(encodeKey(key))
		if v == nil {
			return nil
		}
		id = sql.TermID(int64(binary.BigEndian.Uint64(v)))
		found = true
		return nil
	})
	return id, found
}

// Put implements Overflow.
func (o *BoltOverflow) Put(key sql.CacheKey, id sql.TermID) {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, uint64(int64(id)))
	_ = o.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(encodeKey(key), v)
	})
}

// Close releases the underlying bolt file handle.
func (o *BoltOverflow) Close() error {
	return o.db.Close()
}
