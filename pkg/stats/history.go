package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// EncounterRecord is one finished (or abandoned) encounter, persisted
// to the history file.
type EncounterRecord struct {
	Target      string    `json:"target"`
	StartedAt   time.Time `json:"started_at"`
	DurationSec int       `json:"duration_sec"`
	Hits        int       `json:"hits"`
	Misses      int       `json:"misses"`
	Crits       int       `json:"crits"`
	DamageDealt int       `json:"damage_dealt"`
	DamageTaken int       `json:"damage_taken"`
	Killed      bool      `json:"killed"`
}

// Record summarizes the snapshot as a history entry. It returns false
// when no encounter happened (no target was ever bound).
func (s Snapshot) Record() (EncounterRecord, bool) {
	if s.TargetName == "" || s.EncounterStart.IsZero() {
		return EncounterRecord{}, false
	}
	return EncounterRecord{
		Target:      s.TargetName,
		StartedAt:   s.EncounterStart,
		DurationSec: int(s.FightDuration().Seconds()),
		Hits:        s.Hits,
		Misses:      s.Misses,
		Crits:       s.Crits,
		DamageDealt: s.TotalDamageDealt(),
		DamageTaken: s.TotalDamageTaken(),
		Killed:      s.TargetDead,
	}, true
}

// LoadHistory reads the encounter history file, or returns an empty
// history when the file is missing or unreadable.
func LoadHistory(path string) []EncounterRecord {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var recs []EncounterRecord
	if err := json.NewDecoder(f).Decode(&recs); err != nil {
		return nil
	}
	return recs
}

// AppendHistory adds a record to the history file, creating the file
// and its directory as needed.
func AppendHistory(path string, rec EncounterRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	recs := append(LoadHistory(path), rec)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
