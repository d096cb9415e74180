package aspa

import (
	"gopkg.in/yaml.v3"
)

// Stats summarizes a single conversion.
type Stats struct {
	InputRecords  int       `yaml:"input_records"`
	OutputRecords int       `yaml:"output_records"`
	Customers     int       `yaml:"customers"`
	Packed        bool      `yaml:"packed"`
	Histogram     Histogram `yaml:"histogram"`
}

func NewStats(m Map, inrec, outrec int, packed bool) *Stats {
	return &Stats{
		InputRecords:  inrec,
		OutputRecords: outrec,
		Customers:     len(m),
		Packed:        packed,
		Histogram:     m.Histogram(),
	}
}

// Marshal returns stats as YAML document.
func (s *Stats) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
