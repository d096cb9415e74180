// Package caida reads AS relationship files as published by CAIDA.
//
// Each data line has the form
//
//	<provider-as>|<customer-as>|-1
//	<peer-as>|<peer-as>|0
//
// Lines starting with '#' are comments.
package caida

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the relation type found in the third column.
type Kind int

const (
	ProviderCustomer Kind = -1
	PeerPeer         Kind = 0
)

func (k Kind) String() string {
	switch k {
	case ProviderCustomer:
		return "p2c"
	case PeerPeer:
		return "p2p"
	}
	return strconv.Itoa(int(k))
}

// Relation is a single data line.
// For peer relations Provider and Customer simply hold the two peers.
type Relation struct {
	Provider int64
	Customer int64
	Kind     Kind
}

// SyntaxError describes a data line that isn't three '|' separated
// integers.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: expected \"<provider>|<customer>|<relation>\","+
		" got %q", e.Line, e.Text)
}

// Scanner reads relations one line at a time.
// It stops at the first malformed line; there is no recovery.
type Scanner struct {
	sc    *bufio.Scanner
	rel   Relation
	line  int
	count int
	err   error
}

func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	// Lines are short, but don't fail on unexpected long comments.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{sc: sc}
}

// Scan advances to the next data line, which is then available through
// Relation. It returns false at end of input or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if strings.HasPrefix(text, "#") {
			continue
		}
		s.count++
		rel, err := parseLine(text)
		if err != nil {
			s.err = &SyntaxError{Line: s.line, Text: text}
			return false
		}
		s.rel = rel
		return true
	}
	if err := s.sc.Err(); err != nil {
		s.err = errors.Wrapf(err, "after line %d", s.line)
	}
	return false
}

func (s *Scanner) Relation() Relation { return s.rel }

// Count returns the number of data lines read so far,
// peer relations included.
func (s *Scanner) Count() int { return s.count }

func (s *Scanner) Err() error { return s.err }

func parseLine(text string) (Relation, error) {
	var rel Relation
	parts := strings.Split(strings.TrimSpace(text), "|")
	if len(parts) != 3 {
		return rel, fmt.Errorf("expected 3 fields, got %d", len(parts))
	}
	var nums [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return rel, err
		}
		nums[i] = n
	}
	rel.Provider, rel.Customer, rel.Kind = nums[0], nums[1], Kind(nums[2])
	return rel, nil
}
