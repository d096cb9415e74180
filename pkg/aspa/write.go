package aspa

import (
	"bufio"
	"io"
	"strconv"
)

// Write prints one "addASPA" command per provider of each customer.
// If packed is set, all providers of a customer are collected in a
// single command. Customers are printed in ascending order.
// The number of written commands is returned.
//
// The first argument of addASPA is a reserved field of the test harness
// and always 0.
func Write(w io.Writer, m Map, packed bool) (int, error) {
	bw := bufio.NewWriter(w)
	count := 0
	var buf []byte
	for _, customer := range m.Customers() {
		head := strconv.AppendInt([]byte("addASPA 0 "), customer, 10)
		providers := m[customer]
		if packed {
			buf = append(buf[:0], head...)
			for _, p := range providers {
				buf = append(buf, ' ')
				buf = strconv.AppendInt(buf, p, 10)
			}
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return count, err
			}
			count++
			continue
		}
		for _, p := range providers {
			buf = append(buf[:0], head...)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, p, 10)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, bw.Flush()
}
