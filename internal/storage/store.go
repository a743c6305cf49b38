package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	framesFile    = "frames.csv"
	positionsFile = "positions.csv"
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
	Label      string             `json:"label"`
	Material   string             `json:"material"`
	Properties cloth.Properties   `json:"properties"`
	Layout     cloth.Layout       `json:"layout"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Frames     int                `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
	// NonFinite names metrics that ended as NaN or Inf. JSON cannot hold
	// them, so they are listed here instead of in Metrics.
	NonFinite []string `json:"non_finite,omitempty"`
}

// RunInfo describes the run being saved.
type RunInfo struct {
	Label    string
	Material cloth.Material
	Layout   cloth.Layout
	Seed     int64
	Dt       float64
	Duration float64
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Time     float64
	Material string
	Energy   float64
	Sag      float64
	Strain   float64
}

// PositionRecord is one row of positions.csv.
type PositionRecord struct {
	X, Y   float64
	Locked bool
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Label, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Label:     info.Label,
		Layout:    info.Layout,
		Timestamp: now,
		Seed:      info.Seed,
		Dt:        info.Dt,
		Duration:  info.Duration,
		Frames:    len(result.Frames),
	}
	meta.Metrics, meta.NonFinite = splitFinite(result.Metrics)
	if info.Material != nil {
		meta.Material = info.Material.Name()
		meta.Properties = info.Material.Props()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}
	if err := writePositions(filepath.Join(runDir, positionsFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

// splitFinite copies the finite values of m and returns the names of the
// rest in sorted order.
func splitFinite(m map[string]float64) (map[string]float64, []string) {
	finite := make(map[string]float64, len(m))
	var bad []string
	for name, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, name)
			continue
		}
		finite[name] = v
	}
	sort.Strings(bad)
	return finite, bad
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "material", "energy", "sag", "strain"}); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.FormatFloat(fr.Time, 'f', 6, 64),
			fr.Material,
			strconv.FormatFloat(fr.Energy, 'f', 6, 64),
			strconv.FormatFloat(fr.Sag, 'f', 6, 64),
			strconv.FormatFloat(fr.Strain, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writePositions(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "locked"}); err != nil {
		return err
	}
	for i := 0; 2*i+1 < len(result.Positions); i++ {
		locked := i < len(result.Locked) && result.Locked[i]
		row := []string{
			strconv.FormatFloat(result.Positions[2*i], 'f', 6, 64),
			strconv.FormatFloat(result.Positions[2*i+1], 'f', 6, 64),
			strconv.FormatBool(locked),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all stored runs, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// LoadFrames reads frames.csv, skipping malformed rows.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 5 {
			continue
		}
		vals := make([]float64, 0, 4)
		for _, idx := range []int{0, 2, 3, 4} {
			v, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) != 4 {
			continue
		}
		frames = append(frames, FrameRecord{
			Time:     vals[0],
			Material: record[1],
			Energy:   vals[1],
			Sag:      vals[2],
			Strain:   vals[3],
		})
	}

	return frames, nil
}

// LoadPositions reads the final particle snapshot of a run.
func (s *Store) LoadPositions(runID string) ([]PositionRecord, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, positionsFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []PositionRecord{}, nil
	}

	out := make([]PositionRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		locked, errL := strconv.ParseBool(record[2])
		if errX != nil || errY != nil || errL != nil {
			continue
		}
		out = append(out, PositionRecord{X: x, Y: y, Locked: locked})
	}
	return out, nil
}
