package lender

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
	"github.com/spf13/viper"
)

// Directory is a read-mostly mapping from lender key to profile. Match walks
// profiles in source-file order and returns the first whose alias set hits;
// Reload atomically replaces the whole mapping so in-flight analyses keep
// seeing the snapshot they started with.
type Directory interface {
	Match(name string) *domain.LenderProfile
	List() map[string]domain.LenderProfile
	Reload() (int, error)
}

// snapshot is one immutable view of the directory. keys preserves the order
// the profiles appear in the source file; first-match semantics depend on it.
type snapshot struct {
	keys     []string
	profiles map[string]domain.LenderProfile
}

type fileDirectory struct {
	path    string
	current atomic.Pointer[snapshot]
}

// NewFileDirectory builds a directory backed by a JSON profiles file. A
// missing file yields an empty directory, not an error; every lookup then
// misses and generic defaults apply downstream.
func NewFileDirectory(path string) (Directory, error) {
	d := &fileDirectory{path: path}
	snap, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}
	d.current.Store(snap)
	return d, nil
}

func (d *fileDirectory) Match(name string) *domain.LenderProfile {
	snap := d.current.Load()
	needle := strings.TrimSpace(strings.ToLower(name))

	for _, key := range snap.keys {
		profile := snap.profiles[strings.ToLower(key)]
		for _, alias := range profile.Aliases {
			if strings.Contains(needle, alias) || strings.Contains(alias, needle) {
				p := profile
				return &p
			}
		}
	}
	return nil
}

func (d *fileDirectory) List() map[string]domain.LenderProfile {
	snap := d.current.Load()
	out := make(map[string]domain.LenderProfile, len(snap.keys))
	for _, key := range snap.keys {
		out[key] = snap.profiles[strings.ToLower(key)]
	}
	return out
}

func (d *fileDirectory) Reload() (int, error) {
	snap, err := loadSnapshot(d.path)
	if err != nil {
		return 0, err
	}
	d.current.Store(snap)
	return len(snap.keys), nil
}

func loadSnapshot(path string) (*snapshot, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &snapshot{profiles: map[string]domain.LenderProfile{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lender profiles: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to parse lender profiles: %w", err)
	}

	profiles := map[string]domain.LenderProfile{}
	if err := v.Unmarshal(&profiles); err != nil {
		return nil, fmt.Errorf("failed to decode lender profiles: %w", err)
	}
	for key, p := range profiles {
		for i, alias := range p.Aliases {
			p.Aliases[i] = strings.ToLower(alias)
		}
		profiles[key] = p
	}

	// JSON objects are ordered in the source even though Go maps aren't;
	// recover the key order with a token scan so Match stays deterministic.
	keys, err := topLevelKeys(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to order lender profiles: %w", err)
	}

	return &snapshot{keys: keys, profiles: profiles}, nil
}

// topLevelKeys returns the top-level object keys of a JSON document in the
// order they appear.
func topLevelKeys(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in lender profiles", tok)
		}
		keys = append(keys, key)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
