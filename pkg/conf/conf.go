package conf

/*
Get options from command line and config file.
*/

import (
	"fmt"
	"os"
	"strings"

	"github.com/octago/sflags"
	"github.com/octago/sflags/gen/gpflag"
	flag "github.com/spf13/pflag"
)

// Config holds program flags.
type Config struct {
	IFile   string `flag:"ifile i" desc:"Read CAIDA AS relationships from this file"`
	OFile   string `flag:"ofile o" desc:"Write addASPA commands to this file"`
	Pack    bool   `flag:"pack p" desc:"Pack all providers of a customer into one command"`
	Verbose bool   `flag:"verbose v" desc:"Show number of customers per number of providers"`
	Stats   string `flag:"stats" desc:"Write statistics as YAML to this file"`
	Config  string `flag:"config c" desc:"Read default values of options from this file"`
}

// Options that can't be set from config file.
var cmdlineOnly = map[string]bool{
	"config": true,
}

// New binds a fresh Config with default values to fs.
func New(fs *flag.FlagSet) *Config {
	cfg := &Config{}
	err := gpflag.ParseTo(cfg, fs, sflags.FlagDivider("_"))
	if err != nil {
		panic(err)
	}
	return cfg
}

// Reads "key = value;" pairs from config file.
// Trailing ";" is optional.
// Comment lines starting with "#" are ignored.
func readConfig(filename string) (map[string]string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Failed to read config file %s: %s",
			filename, err)
	}
	lines := strings.Split(string(bytes), "\n")
	result := make(map[string]string)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("Unexpected line in %s: %s", filename, line)
		}
		key, val := parts[0], parts[1]
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		val = strings.TrimSuffix(val, ";")
		val = strings.TrimSpace(val)
		result[key] = val
	}
	return result, nil
}

// ReadFile parses the specified configuration file and populates unset
// flags in fs based on the contents of the file.
// Flags given on command line take precedence.
func ReadFile(filename string, fs *flag.FlagSet) error {
	config, err := readConfig(filename)
	if err != nil {
		return err
	}
	isSet := make(map[*flag.Flag]bool)
	fs.Visit(func(f *flag.Flag) {
		isSet[f] = true
	})
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil || cmdlineOnly[f.Name] {
			return
		}
		val, found := config[f.Name]
		if !found {
			return
		}
		delete(config, f.Name)
		if isSet[f] {
			return
		}
		if e := f.Value.Set(val); e != nil {
			err = fmt.Errorf("Invalid value for %s in %s: %s",
				f.Name, filename, val)
		}
	})
	if err != nil {
		return err
	}
	for name := range config {
		return fmt.Errorf("Invalid keyword in %s: %s", filename, name)
	}
	return nil
}
