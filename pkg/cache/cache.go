// Package cache keeps finished search results on disk so solving the same
// puzzle twice is instant. Only final results are stored, never search state.
package cache

import (
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/arthur-debert/tubesort/pkg/solver"
	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// formatVersion is bumped whenever Entry changes shape
const formatVersion = 1

// encMode uses Core Deterministic Encoding so the same entry always produces
// the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cache: CBOR encoder initialization failed: " + err.Error())
	}
}

// Entry is one cached result
type Entry struct {
	Version  int           `cbor:"1,keyasint"`
	Key      string        `cbor:"2,keyasint"`
	Result   solver.Result `cbor:"3,keyasint"`
	StoredAt time.Time     `cbor:"4,keyasint"`
}

// Cache stores entries as files named by puzzle fingerprint
type Cache struct {
	dir string
}

// New returns a cache rooted at dir. The directory is created on first Put.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Fingerprint identifies a puzzle by the blake3 digest of its capacity and
// canonical state key.
func Fingerprint(s puzzle.State) string {
	buf := binary.AppendUvarint(nil, uint64(s.Capacity))
	buf = append(buf, s.Key()...)
	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint[:2], fingerprint+".cbor")
}

// Get returns the cached result for s. Missing, unreadable or stale entries
// are misses; only the last two are logged.
func (c *Cache) Get(s puzzle.State) (*solver.Result, bool) {
	logger := logging.GetLogger("cache")
	fp := Fingerprint(s)
	path := c.path(fp)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Cannot read cache entry")
		}
		return nil, false
	}

	var entry Entry
	if err := cbor.Unmarshal(data, &entry); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Corrupt cache entry ignored")
		return nil, false
	}
	if entry.Version != formatVersion || entry.Key != fp {
		logger.Debug().Str("path", path).Int("version", entry.Version).Msg("Stale cache entry ignored")
		return nil, false
	}

	// A cached path must still replay; anything else is a stale or foreign entry.
	if entry.Result.Solved {
		final, err := s.Replay(entry.Result.Path)
		if err != nil || !final.IsSolved() {
			logger.Warn().Str("path", path).Msg("Cached path does not solve the puzzle, ignoring it")
			return nil, false
		}
	}

	logger.Debug().Str("fingerprint", fp).Msg("Cache hit")
	result := entry.Result
	return &result, true
}

// Put stores the result for s
func (c *Cache) Put(s puzzle.State, result *solver.Result) error {
	fp := Fingerprint(s)
	path := c.path(fp)

	data, err := encMode.Marshal(Entry{
		Version:  formatVersion,
		Key:      fp,
		Result:   *result,
		StoredAt: time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCache, "cannot encode cache entry")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create cache directory %s", filepath.Dir(path))
	}

	// Readers never see a partially written entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), fp+".*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot create cache entry")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write cache entry")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write cache entry")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, errors.ErrFileWrite, "cannot store cache entry")
	}

	logger := logging.GetLogger("cache")
	logger.Debug().Str("fingerprint", fp).Str("path", path).Msg("Result cached")
	return nil
}
