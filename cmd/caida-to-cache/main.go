package main

import (
	"os"

	"github.com/hknutzen/caida-to-cache/pkg/convert"
	"github.com/hknutzen/caida-to-cache/pkg/oslink"
)

func main() {
	os.Exit(convert.Main(oslink.Get()))
}
