package convert

/*
=head1 NAME

caida-to-cache - Convert CAIDA topology file to input file for RPKI Cache
test harness

=head1 SYNOPSIS

caida-to-cache -i <inputfile> -o <outputfile> [-p] [-v]

=head1 DESCRIPTION

Reads a CAIDA AS relationship file and writes a script for the BGP-SRx
RPKI Cache Test Harness with one command

  addASPA 0 CUSTOMER PROVIDER

for each line "PROVIDER|CUSTOMER|-1" of input. Peer relations
"PEER|PEER|0" are counted, but don't produce any output.
Customers are written in ascending order, providers of a customer in
order of input.

Tier one ASPA entries are not generated here. These are added by a
separate script.

=head1 OPTIONS

=over 4

=item B<-i> file, B<--ifile>=file

Input file in CAIDA as-rel format.

=item B<-o> file, B<--ofile>=file

Output file for RPKI Cache Test Harness.

=item B<-p>

Pack all providers of a customer into a single command

  addASPA 0 CUSTOMER PROVIDER PROVIDER ...

=item B<-v>

Show number of customers for each number of providers.

=item B<--stats>=file

Write record counts and histogram as YAML.

=item B<-c> file

Read default values of options from file with lines "key = value;".

=item B<-h>

Prints a brief help message and exits.

=back

=cut
*/

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hknutzen/caida-to-cache/pkg/aspa"
	"github.com/hknutzen/caida-to-cache/pkg/conf"
	"github.com/hknutzen/caida-to-cache/pkg/diag"
	"github.com/hknutzen/caida-to-cache/pkg/fileop"
	"github.com/hknutzen/caida-to-cache/pkg/oslink"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// FileKind tells which of the files couldn't be opened.
type FileKind int

const (
	InputFile FileKind = iota
	OutputFile
)

func (k FileKind) String() string {
	if k == InputFile {
		return "input"
	}
	return "output"
}

// OpenError is returned if input or output file can't be opened.
type OpenError struct {
	Kind FileKind
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("Can't open %s file %s: %v", e.Kind, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Converter holds state of a single run.
type Converter struct {
	cnf    *conf.Config
	stdout io.Writer
	diag   *diag.Reporter
	inrec  int
	outrec int
	aspa   aspa.Map
}

func New(d oslink.Data, cnf *conf.Config) *Converter {
	return &Converter{cnf: cnf, stdout: d.Stdout, diag: diag.New(d)}
}

// Run reads input file completely, then writes output file and
// prints histogram of providers per customer.
func (c *Converter) Run() error {
	if err := c.read(); err != nil {
		return err
	}
	if err := c.write(); err != nil {
		return err
	}
	c.aspa.Histogram().Print(c.stdout, c.cnf.Verbose)
	if path := c.cnf.Stats; path != "" {
		return c.writeStats(path)
	}
	return nil
}

// Counts returns number of input and output records.
func (c *Converter) Counts() (int, int) { return c.inrec, c.outrec }

func (c *Converter) read() error {
	path := c.cnf.IFile
	opened := false
	err := fileop.Read(path, func(r io.Reader) error {
		opened = true
		m, n, err := aspa.Read(r)
		c.aspa, c.inrec = m, n
		return err
	})
	if err != nil && !opened {
		return &OpenError{Kind: InputFile, Path: path, Err: err}
	}
	if err != nil {
		return errors.Wrap(err, path)
	}
	c.diag.Msg("Read %d records, found %d customers with %d providers",
		c.inrec, len(c.aspa), c.aspa.Providers())
	return nil
}

func (c *Converter) write() error {
	path := c.cnf.OFile
	opened := false
	err := fileop.Create(path, func(w io.Writer) error {
		opened = true
		n, err := aspa.Write(w, c.aspa, c.cnf.Pack)
		c.outrec = n
		return err
	})
	if err != nil && !opened {
		return &OpenError{Kind: OutputFile, Path: path, Err: err}
	}
	return errors.Wrap(err, path)
}

func (c *Converter) writeStats(path string) error {
	s := aspa.NewStats(c.aspa, c.inrec, c.outrec, c.cnf.Pack)
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return fileop.Overwrite(path, data)
}

func usage(w io.Writer, prog string, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "\n\tSyntax: %s -i <inputfile> -o <outputfile> [-p] [-v]\n\n%s\n",
		prog, fs.FlagUsages())
}

func usageHint(w io.Writer, prog string) {
	fmt.Fprintf(w, "%s -i <inputfile> -o <outputfile>\n", prog)
}

func Main(d oslink.Data) int {
	prog := d.Args[0]
	fs := pflag.NewFlagSet(prog, pflag.ContinueOnError)

	// Setup custom usage function.
	fs.Usage = func() { usage(d.Stdout, prog, fs) }

	cnf := conf.New(fs)
	rep := diag.New(d)
	if err := fs.Parse(d.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		rep.Err("%s", err)
		usageHint(d.Stdout, prog)
		return 2
	}
	if fs.NFlag() == 0 {
		fs.Usage()
		return 0
	}
	if args := fs.Args(); len(args) != 0 {
		rep.Warn("Ignoring extra arguments: %s", strings.Join(args, " "))
	}
	if cnf.Config != "" {
		if err := conf.ReadFile(cnf.Config, fs); err != nil {
			rep.Err("%s", err)
			usageHint(d.Stdout, prog)
			return 2
		}
	}
	switch {
	case cnf.IFile == "":
		rep.Err("Missing option -i <inputfile>")
		usageHint(d.Stdout, prog)
		return 2
	case cnf.OFile == "":
		rep.Err("Missing option -o <outputfile>")
		usageHint(d.Stdout, prog)
		return 2
	}

	fmt.Fprintln(d.Stdout, ">>>", timeStamp(d), "start: ", prog,
		strings.Join(d.Args[1:], " "))
	c := New(d, cnf)
	if err := c.Run(); err != nil {
		return rep.Abort(err)
	}
	inrec, outrec := c.Counts()
	fmt.Fprintln(d.Stdout, "<<<", timeStamp(d), "  end: ", prog,
		" input records=", inrec, " output records=", outrec)
	return 0
}

func timeStamp(d oslink.Data) string {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return now().Format("2006-01-02 15:04:05.000000")
}
