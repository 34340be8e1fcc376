package quota

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tikscope/tikscope/internal/logger"
)

// FileStore keeps all counters in one flat JSON object on disk, rewritten as a
// whole on every increment. A single mutex serializes every operation, which
// also makes each user's check-then-increment window safe to build on top of.
type FileStore struct {
	path   string
	vips   VIPList
	mu     sync.Mutex
	counts map[string]int
}

func NewFileStore(path string, vips VIPList) *FileStore {
	s := &FileStore{
		path: path,
		vips: vips,
	}
	s.counts = s.load()
	return s
}

// load reads the backing file. A missing file is an empty store; an unreadable
// or corrupt file is logged and treated as empty rather than failing startup.
func (s *FileStore) load() map[string]int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Quota file unreadable, starting with empty counters", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return make(map[string]int)
	}

	counts := make(map[string]int)
	if err := json.Unmarshal(data, &counts); err != nil {
		logger.Warn("Quota file corrupt, starting with empty counters", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return make(map[string]int)
	}

	return counts
}

func (s *FileStore) Get(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[userID], nil
}

func (s *FileStore) IsVIP(userID string) bool {
	return s.vips.Contains(userID)
}

func (s *FileStore) Increment(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newCount := s.counts[userID] + 1
	s.counts[userID] = newCount

	if err := s.persist(); err != nil {
		// Roll back the in-memory counter; an unconfirmed write must not be
		// reported to the caller as consumed.
		s.counts[userID] = newCount - 1
		return 0, fmt.Errorf("failed to persist quota counters: %w", err)
	}

	return newCount, nil
}

// persist writes the whole map through a temp file and rename so a crash
// mid-write never leaves a truncated store behind.
func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.counts, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "quota-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

func (s *FileStore) Close() error {
	return nil
}
