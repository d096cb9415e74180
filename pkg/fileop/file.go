package fileop

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

func IsDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsDir()
}

func IsRegular(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}

// Read opens file at path and hands its content to fn.
// File is closed when fn returns.
func Read(path string, fn func(io.Reader) error) error {
	if IsDir(path) {
		return errors.Errorf("%s is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(bufio.NewReader(f))
}

// Create creates or truncates file at path and lets fn write to it.
// File is closed on success and on error; a partially written file is
// left in place.
func Create(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return fn(f)
}

func Overwrite(path string, data []byte) error {
	err := os.WriteFile(path, data, 0666)
	if err != nil {
		return errors.Wrap(err, "Can't write")
	}
	return nil
}
