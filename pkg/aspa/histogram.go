package aspa

import (
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Histogram maps number of providers to number of customers
// having exactly that many providers.
type Histogram map[int]int

func (m Map) Histogram() Histogram {
	h := make(Histogram)
	for _, l := range m {
		h[len(l)]++
	}
	return h
}

// Counts returns the distinct numbers of providers in ascending order.
func (h Histogram) Counts() []int {
	l := maps.Keys(h)
	slices.Sort(l)
	return l
}

// Customers returns the number of customers over all buckets.
func (h Histogram) Customers() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Print shows the number of buckets.
// If verbose is set, each bucket is listed as well.
func (h Histogram) Print(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "Histogram = %6d\n", len(h))
	if !verbose {
		fmt.Fprintln(w, "Verbose = False")
		return
	}
	fmt.Fprintln(w, "#Providers\t#Customers with ...")
	for _, n := range h.Counts() {
		fmt.Fprintf(w, "%5d \t\t%6d\n", n, h[n])
	}
}
