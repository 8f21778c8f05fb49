package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	seriesFile   = "series.csv"
)

var frameHeader = []string{"tick", "id", "kind", "x", "y", "vx", "vy", "fx", "fy", "mass", "radius", "end_x", "end_y"}

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
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Ticks       uint64             `json:"ticks"`
	SampleEvery int                `json:"sample_every"`
	Canvas      geom.Size          `json:"canvas"`
	Offset      geom.Vec           `json:"offset"`
	Label       string             `json:"label,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory with metadata, sampled frames and the metric
// series. The metadata ID, Timestamp, Scenario, Ticks and Metrics are filled
// from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runDir, id, err := s.newRunDir(result.Scenario, now)
	if err != nil {
		return "", err
	}
	meta.ID = id
	meta.Timestamp = now
	meta.Scenario = result.Scenario
	meta.Ticks = result.Ticks
	meta.Offset = result.Offset
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// newRunDir creates a fresh directory named after the scenario and time.
func (s *Store) newRunDir(scenario string, now time.Time) (string, string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", "", err
	}
	for n := now.UnixNano(); ; n++ {
		id := fmt.Sprintf("%s_%d", scenario, n)
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, id, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
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

func writeCSV(path string, rows func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := rows(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func writeFrames(path string, frames []sim.Frame) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(frameHeader); err != nil {
			return err
		}
		for _, f := range frames {
			tick := strconv.FormatUint(f.Tick, 10)
			for _, o := range f.Objects {
				row := []string{
					tick,
					strconv.FormatUint(uint64(o.ID), 10),
					o.Kind.String(),
					ftoa(o.Position.X), ftoa(o.Position.Y),
					ftoa(o.Velocity.X), ftoa(o.Velocity.Y),
					ftoa(o.Force.X), ftoa(o.Force.Y),
					ftoa(o.Mass), ftoa(o.Radius),
					ftoa(o.End.X), ftoa(o.End.Y),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeSeries(path string, result *sim.Result) error {
	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	slices.Sort(names)

	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(append([]string{"tick"}, names...)); err != nil {
			return err
		}
		for i, tick := range result.SampleTicks {
			row := []string{strconv.FormatUint(tick, 10)}
			for _, name := range names {
				v := ""
				if series := result.Series[name]; i < len(series) {
					v = ftoa(series[i])
				}
				row = append(row, v)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns the metadata of every stored run, newest first.
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

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
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

// LoadFrames reads the sampled frames back. Kinematics, mass, radius and
// line end points are stored; bob angles are not.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(frameHeader) {
			continue
		}

		tick, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			continue
		}
		id, err := strconv.ParseUint(record[1], 10, 64)
		if err != nil {
			continue
		}
		kind, ok := object.ParseKind(record[2])
		if !ok {
			continue
		}
		vals, err := parseFloats(record[3:])
		if err != nil {
			continue
		}

		if len(frames) == 0 || frames[len(frames)-1].Tick != tick {
			frames = append(frames, sim.Frame{Tick: tick})
		}
		f := &frames[len(frames)-1]
		f.Objects = append(f.Objects, object.State{
			ID:       object.ID(id),
			Kind:     kind,
			Position: geom.V(vals[0], vals[1]),
			Velocity: geom.V(vals[2], vals[3]),
			Force:    geom.V(vals[4], vals[5]),
			Mass:     vals[6],
			Radius:   vals[7],
			End:      geom.V(vals[8], vals[9]),
		})
	}

	return frames, nil
}

// LoadSeries reads the metric series back, keyed by metric name, together
// with the sample ticks.
func (s *Store) LoadSeries(runID string) (map[string][]float64, []uint64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}

	series := make(map[string][]float64)
	if len(records) < 1 {
		return series, []uint64{}, nil
	}

	names := records[0][1:]
	ticks := make([]uint64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		tick, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			continue
		}
		ticks = append(ticks, tick)

		for j, name := range names {
			if j+1 >= len(record) || record[j+1] == "" {
				continue
			}
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				continue
			}
			series[name] = append(series[name], val)
		}
	}

	return series, ticks, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
