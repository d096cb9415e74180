package oslink

import (
	"io"
	"os"
	"time"
)

// Data holds everything a program takes from its environment.
// Tests fill it with buffers and a fixed clock.
type Data struct {
	Args     []string
	Stdout   io.Writer
	Stderr   io.Writer
	ShowDiag bool
	Now      func() time.Time
}

func Get() Data {
	return Data{
		Args:     os.Args,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		ShowDiag: os.Getenv("SHOW_DIAG") != "",
		Now:      time.Now,
	}
}
