package obs

import (
	"sort"
	"strings"
	"sync"
)

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// Sample summarizes the observations recorded under one series.
type Sample struct {
	Count float64
	Sum   float64
	Max   float64
}

// MemoryMeter keeps measurements in memory, keyed by series name
// (`name{k=v,...}` with labels sorted by key). Safe for concurrent use.
type MemoryMeter struct {
	mu       sync.Mutex
	counters map[string]float64
	hists    map[string]Sample
}

func NewMemoryMeter() *MemoryMeter {
	return &MemoryMeter{
		counters: make(map[string]float64),
		hists:    make(map[string]Sample),
	}
}

func (m *MemoryMeter) Counter(name string, value float64, labels ...Label) {
	k := SeriesKey(name, labels...)
	m.mu.Lock()
	m.counters[k] += value
	m.mu.Unlock()
}

func (m *MemoryMeter) Histogram(name string, value float64, labels ...Label) {
	k := SeriesKey(name, labels...)
	m.mu.Lock()
	s := m.hists[k]
	s.Count++
	s.Sum += value
	if value > s.Max {
		s.Max = value
	}
	m.hists[k] = s
	m.mu.Unlock()
}

// CounterValue returns the current value of a counter series.
func (m *MemoryMeter) CounterValue(name string, labels ...Label) float64 {
	k := SeriesKey(name, labels...)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[k]
}

// Counters returns a copy of every counter series.
func (m *MemoryMeter) Counters() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out
}

// Histograms returns a copy of every histogram series.
func (m *MemoryMeter) Histograms() map[string]Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Sample, len(m.hists))
	for k, v := range m.hists {
		out[k] = v
	}
	return out
}

// SeriesKey renders name and labels the way MemoryMeter keys them.
func SeriesKey(name string, labels ...Label) string {
	if len(labels) == 0 {
		return name
	}
	ls := make([]Label, len(labels))
	copy(ls, labels)
	sort.Slice(ls, func(i, j int) bool { return ls[i].Key < ls[j].Key })
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, l := range ls {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Key)
		b.WriteByte('=')
		b.WriteString(l.Value)
	}
	b.WriteByte('}')
	return b.String()
}
