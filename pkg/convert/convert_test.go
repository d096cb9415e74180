package convert

import (
	"errors"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hknutzen/caida-to-cache/pkg/conf"
	"github.com/hknutzen/caida-to-cache/pkg/oslink"
	"gotest.tools/assert"
)

const syntax = `
	Syntax: PROGRAM -i <inputfile> -o <outputfile> [-p] [-v]

`

func run(diag bool, args ...string) (int, string, string) {
	var stdout, stderr strings.Builder
	status := Main(oslink.Data{
		Args:     append([]string{"PROGRAM"}, args...),
		Stdout:   &stdout,
		Stderr:   &stderr,
		ShowDiag: diag,
		Now: func() time.Time {
			return time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)
		},
	})
	return status, stdout.String(), stderr.String()
}

func TestMainUsage(t *testing.T) {
	type testData struct {
		title  string
		args   []string
		status int
		stdout string
		stderr string
	}
	tests := []testData{
		{
			title:  "No options",
			status: 0,
			stdout: syntax,
		},
		{
			title:  "Only arguments",
			args:   []string{"in", "out"},
			status: 0,
			stdout: syntax,
		},
		{
			title:  "Help",
			args:   []string{"-h"},
			status: 0,
			stdout: syntax,
		},
		{
			title:  "Help with other options",
			args:   []string{"-i", "in", "--help", "-o", "out"},
			status: 0,
			stdout: syntax,
		},
		{
			title:  "Unknown option",
			args:   []string{"-i", "in", "-q"},
			status: 2,
			stdout: "PROGRAM -i <inputfile> -o <outputfile>\n",
			stderr: "Error: unknown shorthand flag: 'q' in -q\n",
		},
		{
			title:  "Missing value",
			args:   []string{"-i"},
			status: 2,
			stdout: "PROGRAM -i <inputfile> -o <outputfile>\n",
			stderr: "Error: flag needs an argument: 'i' in -i\n",
		},
		{
			title:  "Missing input file",
			args:   []string{"-o", "out", "-p"},
			status: 2,
			stdout: "PROGRAM -i <inputfile> -o <outputfile>\n",
			stderr: "Error: Missing option -i <inputfile>\n",
		},
		{
			title:  "Missing output file",
			args:   []string{"--ifile=in"},
			status: 2,
			stdout: "PROGRAM -i <inputfile> -o <outputfile>\n",
			stderr: "Error: Missing option -o <outputfile>\n",
		},
	}
	for _, descr := range tests {
		descr := descr // capture range variable
		t.Run(descr.title, func(t *testing.T) {
			status, stdout, stderr := run(false, descr.args...)
			assert.Equal(t, descr.status, status)
			if descr.stdout == syntax {
				assert.Assert(t, strings.HasPrefix(stdout, syntax))
				assert.Assert(t, strings.Contains(stdout, "-p, --pack"))
				assert.Assert(t, strings.Contains(stdout, "-i, --ifile string"))
			} else if d := cmp.Diff(descr.stdout, stdout); d != "" {
				t.Error(d)
			}
			if d := cmp.Diff(descr.stderr, stderr); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestMainBanners(t *testing.T) {
	dir := t.TempDir()
	in := path.Join(dir, "in")
	out := path.Join(dir, "out")
	assert.NilError(t, os.WriteFile(in, []byte("1|2|-1\n1|3|0\n"), 0644))

	status, stdout, stderr := run(true, "-i", in, "-o", out)
	assert.Equal(t, 0, status)
	assert.Equal(t,
		">>> 2026-10-15 08:30:00.000000 start:  PROGRAM -i "+in+" -o "+out+"\n"+
			"Histogram =      1\n"+
			"Verbose = False\n"+
			"<<< 2026-10-15 08:30:00.000000   end:  PROGRAM"+
			"  input records= 2  output records= 1\n",
		stdout)
	assert.Equal(t,
		"DIAG: Read 2 records, found 1 customers with 1 providers\n", stderr)
}

func TestMainFileErrors(t *testing.T) {
	dir := t.TempDir()
	in := path.Join(dir, "in")
	assert.NilError(t, os.WriteFile(in, []byte("1|2|-1\n"), 0644))
	missing := path.Join(dir, "missing")
	noDir := path.Join(dir, "no", "out")

	t.Run("Missing input", func(t *testing.T) {
		out := path.Join(dir, "out1")
		status, _, stderr := run(false, "-i", missing, "-o", out)
		assert.Equal(t, 1, status)
		assert.Equal(t,
			"Error: Can't open input file "+missing+": open "+missing+
				": no such file or directory\nAborted\n",
			stderr)
		_, err := os.Stat(out)
		assert.Assert(t, os.IsNotExist(err))
	})
	t.Run("Input is directory", func(t *testing.T) {
		status, _, stderr := run(false, "-i", dir, "-o", path.Join(dir, "out2"))
		assert.Equal(t, 1, status)
		assert.Equal(t,
			"Error: Can't open input file "+dir+": "+dir+" is a directory\n"+
				"Aborted\n",
			stderr)
	})
	t.Run("Bad output", func(t *testing.T) {
		status, stdout, stderr := run(false, "-i", in, "-o", noDir)
		assert.Equal(t, 1, status)
		assert.Equal(t,
			"Error: Can't open output file "+noDir+": open "+noDir+
				": no such file or directory\nAborted\n",
			stderr)
		assert.Assert(t, !strings.Contains(stdout, "<<<"))
	})
	t.Run("Bad stats file", func(t *testing.T) {
		out := path.Join(dir, "out3")
		status, _, stderr := run(false,
			"-i", in, "-o", out, "--stats", noDir)
		assert.Equal(t, 1, status)
		assert.Equal(t,
			"Error: Can't write: open "+noDir+
				": no such file or directory\nAborted\n",
			stderr)
		data, err := os.ReadFile(out)
		assert.NilError(t, err)
		assert.Equal(t, "addASPA 0 2 1\n", string(data))
	})
}

func TestRunOpenError(t *testing.T) {
	dir := t.TempDir()
	cnf := &conf.Config{IFile: path.Join(dir, "missing"), OFile: "out"}
	var stdout, stderr strings.Builder
	c := New(oslink.Data{Stdout: &stdout, Stderr: &stderr}, cnf)
	err := c.Run()
	var oe *OpenError
	assert.Assert(t, errors.As(err, &oe))
	assert.Equal(t, InputFile, oe.Kind)
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "", stdout.String())
}

func TestRunCounts(t *testing.T) {
	dir := t.TempDir()
	in := path.Join(dir, "in")
	out := path.Join(dir, "out")
	input := "# x\n1|5|-1\n2|5|-1\n3|6|-1\n5|6|0\n6|5|0\n"
	assert.NilError(t, os.WriteFile(in, []byte(input), 0644))
	for _, pack := range []bool{false, true} {
		cnf := &conf.Config{IFile: in, OFile: out, Pack: pack}
		var stdout, stderr strings.Builder
		c := New(oslink.Data{Stdout: &stdout, Stderr: &stderr}, cnf)
		assert.NilError(t, c.Run())
		inrec, outrec := c.Counts()
		assert.Equal(t, 5, inrec)
		if pack {
			assert.Equal(t, 2, outrec)
		} else {
			assert.Equal(t, 3, outrec)
		}
	}
}
