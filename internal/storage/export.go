package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run       RunMetadata      `json:"run"`
	Frames    []FrameRecord    `json:"frames"`
	Positions []PositionRecord `json:"positions"`
}

// ExportJSON writes a run's metadata, frame series and final positions to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	positions, err := s.LoadPositions(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Frames: frames, Positions: positions})
}
