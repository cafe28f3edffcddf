// Package history keeps a per-project log of validation run summaries so a
// team can see whether the violation count is going down.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/guardlens/guardlens/internal/domain"
)

// RelPath is where runs are stored, relative to the project path.
const RelPath = ".guardlens/history/runs.json"

// DefaultLimit is the number of runs New keeps.
const DefaultLimit = 200

// FileHistory implements domain.RunHistory as one JSON array per project,
// oldest run first.
type FileHistory struct {
	// Limit caps the number of kept entries. Zero keeps everything.
	Limit int
}

func New() *FileHistory {
	return &FileHistory{Limit: DefaultLimit}
}

// Save appends entry and drops the oldest runs beyond Limit. The file is
// replaced through a rename so an interrupted write leaves the previous
// history intact.
func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if h.Limit > 0 && len(entries) > h.Limit {
		entries = entries[len(entries)-h.Limit:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	fp := filepath.Join(projectPath, RelPath)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(fp), "runs-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp.Name(), fp); err != nil {
		return fmt.Errorf("replacing history: %w", err)
	}
	return nil
}

// Load returns the recorded runs, or nil when none were recorded yet.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, RelPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", RelPath, err)
	}
	return entries, nil
}
