package tstdata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

// Descr describes a single test case of a .t file.
type Descr struct {
	Title   string
	Input   string
	Options string
	Config  string
	Output  string
	Stats   string
	Stdout  string
	Warning string
	Error   string
	Todo    bool
}

// State
// Textblocks holds key/value pairs defined by
// =VAR= name
// ...text lines ...
// =END=
// found during parsing
type state struct {
	src        []byte
	rest       []byte
	textblocks map[string]string
}

func GetFiles(dataDir string) ([]string, error) {
	files, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range files {
		name := f.Name()
		if strings.HasSuffix(name, ".t") {
			names = append(names, path.Join(dataDir, name))
		}
	}
	sort.Strings(names)
	return names, nil
}

// ParseFile parses the named file as a list of test descriptions.
func ParseFile(file string) ([]*Descr, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses data as a list of test descriptions.
func Parse(data []byte) ([]*Descr, error) {
	s := &state{
		src:        data,
		rest:       data,
		textblocks: make(map[string]string),
	}
	return s.parse()
}

func (s *state) currentLine() int {
	return 1 + bytes.Count(s.src[0:len(s.src)-len(s.rest)], []byte("\n"))
}

func (s *state) parse() ([]*Descr, error) {
	var result []*Descr
	var d *Descr
	var seen map[string]bool
	add := func() error {
		if d == nil {
			return errors.New("missing =TITLE= in first test")
		}
		if d.Output == "" && d.Stdout == "" && d.Stats == "" &&
			d.Warning == "" && d.Error == "" {
			return fmt.Errorf("missing =OUTPUT|STDOUT|STATS|WARNING|ERROR="+
				" in test with =TITLE=%s", d.Title)
		}
		if d.Error != "" && d.Warning != "" {
			return fmt.Errorf(
				"must not define =ERROR= together with =WARNING="+
					" in test with =TITLE=%s", d.Title)
		}
		result = append(result, d)
		return nil
	}
	for {
		name, err := s.readDef()
		if err != nil {
			return nil, err
		}
		switch name {
		case "": // EOF
			err := add()
			return result, err
		case "TITLE": // Next entry.
			if d != nil {
				if err := add(); err != nil {
					return nil, err
				}
			}
			text, err := s.readText()
			if err != nil {
				return nil, err
			}
			d = &Descr{Title: text}
			seen = make(map[string]bool)
		case "VAR":
			if err := s.varDef(); err != nil {
				return nil, err
			}
		default:
			if d == nil {
				return nil, errors.New("expected =TITLE=")
			}
			if seen[name] {
				return nil, fmt.Errorf(
					"found multiple =%s= in test with =TITLE=%s", name, d.Title)
			}
			text, err := s.readText()
			if err != nil {
				return nil, err
			}
			switch name {
			case "INPUT":
				d.Input = text
			case "OPTIONS":
				d.Options = text
			case "CONFIG":
				d.Config = text
			case "OUTPUT":
				d.Output = text
			case "STATS":
				d.Stats = text
			case "STDOUT":
				d.Stdout = text
			case "WARNING":
				d.Warning = text
			case "ERROR":
				d.Error = text
			case "TODO":
				d.Todo = true
			default:
				return nil, fmt.Errorf(
					"unexpected =%s= in test with =TITLE=%s", name, d.Title)
			}
			seen[name] = true
		}
	}
}

func (s *state) readDef() (string, error) {
	var line string
	for {
		// Skip empty lines and comments
		idx := bytes.IndexByte(s.rest, byte('\n'))
		if idx == -1 {
			line = string(s.rest)
		} else {
			line = string(s.rest[:idx])
		}
		line = strings.TrimSpace(line)
		if line != "" && line[0] != '#' {
			break
		}
		if idx == -1 {
			// Found EOF.
			s.rest = s.rest[len(s.rest):]
			return "", nil
		}
		s.rest = s.rest[idx+1:]
	}
	name := checkDef(line)
	if name == "" {
		nr := s.currentLine()
		return "", fmt.Errorf("expected token '=...=' at line %d: %s", nr, line)
	}
	s.rest = s.rest[len(name)+2:]
	return name, nil
}

func checkDef(line string) string {
	if line == "" || line[0] != '=' {
		return ""
	}
	idx := strings.Index(line[1:], "=")
	if idx == -1 {
		return ""
	}
	name := line[1 : idx+1]
	if name != "" && isName(name) {
		return name
	}
	return ""
}

func (s *state) varDef() error {
	name, err := s.readVarName()
	if err != nil {
		return err
	}
	text, err := s.readText()
	if err != nil {
		return err
	}
	s.textblocks[name] = strings.TrimSuffix(text, "\n")
	return nil
}

func (s *state) readVarName() (string, error) {
	line := s.getLine()
	s.rest = s.rest[len(strings.TrimSuffix(line, "\n")):]
	name := strings.TrimSpace(line)
	if name == "" || !isName(name) {
		return "", errors.New("invalid name after =VAR=: " + name)
	}
	return name, nil
}

func isName(n string) bool {
	for _, ch := range n {
		if !(isLetter(ch) || isDecimal(ch)) {
			return false
		}
	}
	return true
}

func lower(ch rune) rune     { return ('a' - 'A') | ch }
func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch rune) bool {
	return 'a' <= lower(ch) && lower(ch) <= 'z' || ch == '_'
}

// Text is either the rest of current line or all lines up to next
// definition. A multi line text is terminated by =END= or any other
// definition.
func (s *state) readText() (string, error) {
	// Check for single line
	line := s.getLine()
	s.rest = s.rest[len(line):]
	line = strings.TrimSpace(line)
	if line != "" {
		return s.doVarSubst(line), nil
	}
	// Read multiple lines up to start of next definition
	text := s.rest
	size := 0
	for {
		line := s.getLine()
		if line == "" {
			return "", fmt.Errorf("missing =END= at end of file")
		}
		if name := checkDef(line); name != "" {
			if name == "END" {
				s.rest = s.rest[len("=END="):]
			}
			return s.doVarSubst(string(text[:size])), nil
		}
		s.rest = s.rest[len(line):]
		size += len(line)
	}
}

// Substitute occurrences of ${name} with corresponding value.
func (s *state) doVarSubst(text string) string {
	for name, val := range s.textblocks {
		text = strings.ReplaceAll(text, "${"+name+"}", val)
	}
	return text
}

func (s *state) getLine() string {
	idx := bytes.IndexByte(s.rest, byte('\n'))
	if idx == -1 {
		return string(s.rest)
	}
	return string(s.rest[:idx+1])
}
