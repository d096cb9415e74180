// Package aspa groups provider-customer relations into ASPA objects and
// renders them as input for the RPKI cache test harness.
package aspa

import (
	"io"

	"github.com/hknutzen/caida-to-cache/pkg/caida"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Map holds for each customer AS the list of its provider ASes
// in order of appearance. Duplicate providers are kept.
type Map map[int64][]int64

func (m Map) Add(provider, customer int64) {
	m[customer] = append(m[customer], provider)
}

// Customers returns all customer ASes in ascending order.
func (m Map) Customers() []int64 {
	l := maps.Keys(m)
	slices.Sort(l)
	return l
}

// Providers returns the total number of provider entries over all
// customers.
func (m Map) Providers() int {
	n := 0
	for _, l := range m {
		n += len(l)
	}
	return n
}

// Read collects provider-customer relations from r.
// Peer relations are counted but otherwise ignored.
// It returns the number of data lines read together with the map.
func Read(r io.Reader) (Map, int, error) {
	m := make(Map)
	s := caida.NewScanner(r)
	for s.Scan() {
		rel := s.Relation()
		if rel.Kind == caida.ProviderCustomer {
			m.Add(rel.Provider, rel.Customer)
		}
	}
	return m, s.Count(), s.Err()
}
