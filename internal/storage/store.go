// Package storage persists runs on disk: one directory per run with a
// metadata JSON and a states CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bipedlab/fivelink/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Mode       string             `json:"mode"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`

	// Walk-mode summary.
	Strides  int     `json:"strides,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Fell     bool    `json:"fell,omitempty"`
}

// Save writes the run under a fresh ID derived from the mode and the
// current time, and returns that ID.
func (s *Store) Save(meta RunMetadata, states []sim.State, controls []sim.Control, times []float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(states) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 1; i <= 5; i++ {
		header = append(header, fmt.Sprintf("q%d", i))
	}
	for i := 1; i <= 5; i++ {
		header = append(header, fmt.Sprintf("dq%d", i))
	}
	numControls := 0
	if len(controls) > 0 {
		numControls = len(controls[0])
		for i := 1; i <= numControls; i++ {
			header = append(header, fmt.Sprintf("u%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if i < len(controls) && len(controls[i]) > 0 {
			for _, val := range controls[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		} else {
			for j := 0; j < numControls; j++ {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads the trajectory back: states (without the control
// columns) and times.
func (s *Store) LoadStates(runID string) ([]sim.State, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []sim.State{}, []float64{}, nil
	}

	stateCols := 0
	for _, name := range records[0][1:] {
		if len(name) > 0 && name[0] == 'u' {
			break
		}
		stateCols++
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]sim.State, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 1+stateCols {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad time value %q: %w", record[0], err)
		}
		x := make(sim.State, stateCols)
		for i := 0; i < stateCols; i++ {
			v, err := strconv.ParseFloat(record[1+i], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad state value %q: %w", record[1+i], err)
			}
			x[i] = v
		}
		times = append(times, t)
		states = append(states, x)
	}

	return states, times, nil
}
