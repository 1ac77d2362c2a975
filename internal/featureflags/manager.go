// Package featureflags evaluates runtime switches configured through FEATURE_FLAGS.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Known flags.
const (
	// OpenStatusUpdates lets any authenticated caller change an application's status,
	// not only the job's poster or an admin.
	OpenStatusUpdates = "open_status_updates"
	// ResumeDownloads controls whether stored resumes are served under /uploads.
	ResumeDownloads = "resume_downloads"
)

// Manager evaluates flags from a list such as "open_status_updates=off,resume_downloads=on,beta=25%".
type Manager struct {
	flags map[string]string
}

// NewManager parses a comma-separated key=value list. Malformed entries are skipped.
func NewManager(raw string) *Manager {
	entries := lo.FilterMap(strings.Split(raw, ","), func(pair string, _ int) (lo.Entry[string, string], bool) {
		key, value, ok := strings.Cut(pair, "=")
		key, value = normalize(key), normalize(value)
		return lo.Entry[string, string]{Key: key, Value: value}, ok && key != "" && value != ""
	})
	return &Manager{flags: lo.FromEntries(entries)}
}

// Enabled returns whether a flag is on for the given user.
// Values: on/true/1, off/false/0, or N% for a deterministic per-user rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}
	return evaluate(name, value, userID)
}

// EnabledOr is Enabled with a fallback for flags that are not configured.
func (m *Manager) EnabledOr(name string, userID uint, fallback bool) bool {
	if m == nil {
		return fallback
	}
	if _, ok := m.flags[normalize(name)]; !ok {
		return fallback
	}
	return m.Enabled(name, userID)
}

// Raw returns a copy of configured flags.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return lo.Assign(map[string]string{}, m.flags)
}

// Snapshot returns evaluated flag status for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	if m == nil {
		return map[string]bool{}
	}
	return lo.MapValues(m.flags, func(value, name string) bool {
		return evaluate(name, value, userID)
	})
}

func evaluate(name, value string, userID uint) bool {
	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	switch {
	case err != nil || pct <= 0:
		return false
	case pct >= 100:
		return true
	case userID == 0:
		return false
	}
	return rolloutBucket(name, userID) < pct
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", normalize(name), userID)
	return int(h.Sum32() % 100)
}
