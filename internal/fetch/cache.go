package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/keyreaper/keyreaper/internal/types"
)

// cacheTTL bounds how long a fetched response is reused. Carving is usually
// re-run a few times in a row while tuning wordlists; anything older should
// be fetched again.
const cacheTTL = 15 * time.Minute

type cacheEntry struct {
	FetchedAt int64          `json:"fetched_at"`
	Response  types.Response `json:"response"`
}

type cacheDB struct {
	// xxhash of the URL, hex -> entry
	Entries map[string]cacheEntry `json:"entries"`
}

func cachePath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "keyreaper", "responses.json"), nil
}

func cacheKey(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}

func loadCache() cacheDB {
	db := cacheDB{Entries: map[string]cacheEntry{}}
	p, err := cachePath()
	if err != nil {
		return db
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return db
	}
	if err := json.Unmarshal(b, &db); err != nil || db.Entries == nil {
		db.Entries = map[string]cacheEntry{}
	}
	return db
}

func saveCache(db cacheDB) {
	p, err := cachePath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	_ = os.WriteFile(p, b, 0o600)
}

func cachedResponse(url string, now time.Time) (*types.Response, bool) {
	db := loadCache()
	e, ok := db.Entries[cacheKey(url)]
	if !ok || now.Unix()-e.FetchedAt > int64(cacheTTL.Seconds()) {
		return nil, false
	}
	r := e.Response
	return &r, true
}

func storeResponse(url string, resp *types.Response, now time.Time) {
	db := loadCache()
	db.Entries[cacheKey(url)] = cacheEntry{FetchedAt: now.Unix(), Response: *resp}
	saveCache(db)
}
