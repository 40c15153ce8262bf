// Package metrics exports the roster in the Prometheus text exposition
// format, for node_exporter's textfile collector or a one-shot dump.
package metrics

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"vpet/internal/pet"
)

// Metric names
const (
	MetricPets          = "vpet_pets"
	MetricPetsAlive     = "vpet_pets_alive"
	MetricPetStat       = "vpet_pet_stat"
	MetricSoundCues     = "vpet_sound_cues_total"
	MetricActivityLines = "vpet_activity_lines_total"
)

// Counters are cumulative totals carried between snapshots.
type Counters struct {
	Sounds        map[pet.Sound]float64
	ActivityLines float64
}

// Families builds the metric families for a roster snapshot.
func Families(pets []pet.Pet, c Counters) []*dto.MetricFamily {
	alive := 0
	stats := &dto.MetricFamily{
		Name: proto.String(MetricPetStat),
		Help: proto.String("Current value of each pet stat (0-100)."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, p := range pets {
		if p.IsAlive() {
			alive++
		}
		for _, s := range []struct {
			name  string
			value int
		}{
			{"energy", p.Energy},
			{"fullness", p.Fullness},
			{"happiness", p.Happiness},
		} {
			stats.Metric = append(stats.Metric, &dto.Metric{
				Label: []*dto.LabelPair{
					label("id", p.ID),
					label("name", p.Name),
					label("species", string(p.Species)),
					label("stat", s.name),
				},
				Gauge: &dto.Gauge{Value: proto.Float64(float64(s.value))},
			})
		}
	}

	families := []*dto.MetricFamily{
		gauge(MetricPets, "Pets on the roster, dead ones included.", float64(len(pets))),
		gauge(MetricPetsAlive, "Pets with every stat above zero.", float64(alive)),
	}
	if len(stats.Metric) > 0 {
		families = append(families, stats)
	}

	sounds := &dto.MetricFamily{
		Name: proto.String(MetricSoundCues),
		Help: proto.String("Sound cues requested, by kind."),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	kinds := make([]string, 0, len(c.Sounds))
	for k := range c.Sounds {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		sounds.Metric = append(sounds.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{label("kind", k)},
			Counter: &dto.Counter{Value: proto.Float64(c.Sounds[pet.Sound(k)])},
		})
	}
	if len(sounds.Metric) > 0 {
		families = append(families, sounds)
	}

	families = append(families, &dto.MetricFamily{
		Name: proto.String(MetricActivityLines),
		Help: proto.String("Activity log lines emitted."),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{
			Counter: &dto.Counter{Value: proto.Float64(c.ActivityLines)},
		}},
	})
	return families
}

// Write renders the snapshot in the text exposition format.
func Write(w io.Writer, pets []pet.Pet, c Counters) error {
	for _, mf := range Families(pets, c) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Textfile is a roster observer that rewrites a .prom file on every render.
type Textfile struct {
	path     string
	counters Counters
}

// NewTextfile returns an observer writing to path
func NewTextfile(path string) *Textfile {
	return &Textfile{
		path:     path,
		counters: Counters{Sounds: make(map[pet.Sound]float64)},
	}
}

// RenderAll writes the snapshot. Errors are logged only.
func (t *Textfile) RenderAll(pets []pet.Pet) {
	if err := t.WriteFile(pets); err != nil {
		log.Printf("Error writing metrics textfile: %v", err)
	}
}

// LogActivity counts the line
func (t *Textfile) LogActivity(string) {
	t.counters.ActivityLines++
}

// PlaySound counts the cue
func (t *Textfile) PlaySound(kind pet.Sound) {
	t.counters.Sounds[kind]++
}

// WriteFile atomically replaces the textfile so the collector never reads a
// partial snapshot.
func (t *Textfile) WriteFile(pets []pet.Pet) error {
	var buf bytes.Buffer
	if err := Write(&buf, pets, t.counters); err != nil {
		return err
	}

	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("metrics: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("metrics: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("metrics: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("metrics: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("metrics: replace: %w", err)
	}
	return nil
}

func label(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}

func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(value)}}},
	}
}
