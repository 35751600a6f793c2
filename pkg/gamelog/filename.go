package gamelog

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Filename builds the per-session log path: a compact timestamp followed
// by the player names sorted alphabetically, e.g.
// 20260826T153000_Alice_Bob.jsonl.
func Filename(dir string, names []string, now time.Time) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	name := now.Format("20060102T150405") + "_" + strings.Join(sorted, "_") + ".jsonl"
	return filepath.Join(dir, name)
}
