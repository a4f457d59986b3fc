package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/aurora-is-near/tarstream/src/tardir"
)

func main() {
	if len(os.Args) != 3 {
		_, _ = fmt.Fprintf(os.Stderr, "%s <input.tar> <destination dir>\n", path.Base(os.Args[0]))
		os.Exit(1)
	}
	var in io.Reader = os.Stdin
	if os.Args[1] != "-" {
		f, err := os.Open(os.Args[1])
		if err != nil {
			logrus.WithError(err).Fatalf("opening %q", os.Args[1])
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	if err := os.MkdirAll(os.Args[2], 0o755); err != nil {
		logrus.WithError(err).Fatalf("creating %q", os.Args[2])
	}
	if err := tardir.Unpack(in, os.Args[2]); err != nil {
		logrus.WithError(err).Fatalf("unpacking into %q", os.Args[2])
	}
	os.Exit(0)
}
