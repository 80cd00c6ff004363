package ix

import (
	"sort"
	"strings"
	"sync"

	"github.com/gcbaptista/huntdex/postings"
)

// StringIndex is the base term index: a map[string]V behind a RWMutex, with
// a lazily-rebuilt sorted-key cache for prefix and range search, generalized
// from a concrete posting list to an arbitrary Value[V].
type StringIndex[V Value[V]] struct {
	mu   sync.RWMutex
	data map[string]V

	// cache, rebuilt on any mutation; cacheValid guards against rebuilding
	// on every read when nothing has changed.
	cacheValid  bool
	sortedKeys  []string
	foldedSort  []string
	foldedIndex map[string][]string // folded key -> original keys sharing it
}

// NewStringIndex returns an empty index.
func NewStringIndex[V Value[V]]() *StringIndex[V] {
	return &StringIndex[V]{data: make(map[string]V)}
}

func (ix *StringIndex[V]) invalidateCacheLocked() {
	ix.cacheValid = false
}

func (ix *StringIndex[V]) rebuildCacheLocked() {
	if ix.cacheValid {
		return
	}
	ix.sortedKeys = make([]string, 0, len(ix.data))
	ix.foldedIndex = make(map[string][]string, len(ix.data))
	for k := range ix.data {
		ix.sortedKeys = append(ix.sortedKeys, k)
	}
	sort.Strings(ix.sortedKeys)

	ix.foldedSort = make([]string, len(ix.sortedKeys))
	for i, k := range ix.sortedKeys {
		folded := strings.ToLower(k)
		ix.foldedSort[i] = folded
		ix.foldedIndex[folded] = append(ix.foldedIndex[folded], k)
	}
	sort.Strings(ix.foldedSort)
	ix.cacheValid = true
}

func (ix *StringIndex[V]) InsertList(op func(existing, incoming V) V, entries []Entry[string, V]) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, e := range entries {
		if existing, ok := ix.data[e.Key]; ok {
			combined := op(existing, e.Value)
			if combined.IsEmpty() {
				delete(ix.data, e.Key)
			} else {
				ix.data[e.Key] = combined
			}
		} else if !e.Value.IsEmpty() {
			ix.data[e.Key] = e.Value
		}
	}
	ix.invalidateCacheLocked()
}

func (ix *StringIndex[V]) DeleteDocs(ids map[postings.DocID]struct{}) {
	if len(ids) == 0 {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for k, v := range ix.data {
		cleaned := v.DeleteDocs(ids)
		if cleaned.IsEmpty() {
			delete(ix.data, k)
		} else {
			ix.data[k] = cleaned
		}
	}
	ix.invalidateCacheLocked()
}

// Search rebuilds the key cache if needed (hence the write lock) and then
// matches key against the stored keys under mode.
func (ix *StringIndex[V]) Search(mode SearchMode, key string) []Entry[string, V] {
	ix.mu.Lock()
	ix.rebuildCacheLocked()
	defer ix.mu.Unlock()

	switch mode {
	case Case:
		if v, ok := ix.data[key]; ok {
			return []Entry[string, V]{{Key: key, Value: v}}
		}
		return nil
	case NoCase:
		folded := strings.ToLower(key)
		keys := ix.foldedIndex[folded]
		out := make([]Entry[string, V], 0, len(keys))
		for _, k := range keys {
			out = append(out, Entry[string, V]{Key: k, Value: ix.data[k]})
		}
		return out
	case PrefixCase:
		lo := sort.SearchStrings(ix.sortedKeys, key)
		out := make([]Entry[string, V], 0)
		for i := lo; i < len(ix.sortedKeys) && strings.HasPrefix(ix.sortedKeys[i], key); i++ {
			k := ix.sortedKeys[i]
			out = append(out, Entry[string, V]{Key: k, Value: ix.data[k]})
		}
		return out
	case PrefixNoCase:
		folded := strings.ToLower(key)
		lo := sort.SearchStrings(ix.foldedSort, folded)
		out := make([]Entry[string, V], 0)
		for i := lo; i < len(ix.foldedSort) && strings.HasPrefix(ix.foldedSort[i], folded); i++ {
			for _, k := range ix.foldedIndex[ix.foldedSort[i]] {
				out = append(out, Entry[string, V]{Key: k, Value: ix.data[k]})
			}
		}
		return dedupeByKey(out)
	default:
		return nil
	}
}

func dedupeByKey[V any](entries []Entry[string, V]) []Entry[string, V] {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if _, ok := seen[e.Key]; ok {
			continue
		}
		seen[e.Key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func (ix *StringIndex[V]) LookupRange(lo, hi string) []Entry[string, V] {
	ix.mu.Lock()
	ix.rebuildCacheLocked()
	defer ix.mu.Unlock()

	if lo > hi {
		return nil
	}

	start := sort.SearchStrings(ix.sortedKeys, lo)
	out := make([]Entry[string, V], 0)
	for i := start; i < len(ix.sortedKeys) && ix.sortedKeys[i] <= hi; i++ {
		k := ix.sortedKeys[i]
		out = append(out, Entry[string, V]{Key: k, Value: ix.data[k]})
	}
	return out
}

func (ix *StringIndex[V]) ToList() []Entry[string, V] {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]Entry[string, V], 0, len(ix.data))
	for k, v := range ix.data {
		out = append(out, Entry[string, V]{Key: k, Value: v})
	}
	return out
}

func (ix *StringIndex[V]) FromList(entries []Entry[string, V]) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.data = make(map[string]V, len(entries))
	for _, e := range entries {
		if !e.Value.IsEmpty() {
			ix.data[e.Key] = e.Value
		}
	}
	ix.invalidateCacheLocked()
}

func (ix *StringIndex[V]) Keys() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]string, 0, len(ix.data))
	for k := range ix.data {
		out = append(out, k)
	}
	return out
}

func (ix *StringIndex[V]) Empty() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.data) == 0
}
