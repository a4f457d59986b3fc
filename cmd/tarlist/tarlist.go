package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/aurora-is-near/tarstream/src/tarstream"
)

func main() {
	if len(os.Args) != 2 {
		_, _ = fmt.Fprintf(os.Stderr, "%s <input.tar>\n", path.Base(os.Args[0]))
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
	tr := tarstream.NewReader(in)
	for {
		e, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.WithError(err).Fatal("reading archive")
		}
		fmt.Printf("%c %10d %s %s\n", e.Typeflag(), e.Size(),
			e.ModTime().UTC().Format("2006-01-02 15:04:05"), e.Name())
	}
	os.Exit(0)
}
