package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/aurora-is-near/tarstream/src/tardir"
	"github.com/aurora-is-near/tarstream/src/tarstream"
	"github.com/aurora-is-near/tarstream/src/util"
)

var (
	estimateOnly bool
	rebaseDir    string
	numericIDs   bool
)

func init() {
	flag.BoolVar(&estimateOnly, "n", false, "print the tarred size of the source directory and exit")
	flag.StringVar(&rebaseDir, "b", "", "rebase entry paths onto this directory")
	flag.BoolVar(&numericIDs, "numeric", false, "strip symbolic user/group names")
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		_, _ = fmt.Fprintf(os.Stderr, "%s [-n] [-b dir] [-numeric] <sourcedir> [<destination tarfile>]\n", path.Base(os.Args[0]))
		os.Exit(1)
	}
	sourceDir := args[0]
	if estimateOnly {
		size, err := tarstream.CalculateTarSize(sourceDir)
		if err != nil {
			logrus.WithError(err).Fatalf("estimating %q", sourceDir)
		}
		fmt.Println(size)
		os.Exit(0)
	}
	var outWriter io.Writer = os.Stdout
	if len(args) > 1 && args[1] != "-" {
		out, err := util.CreateFile(args[1])
		if err != nil {
			logrus.WithError(err).Fatalf("opening output file %q", args[1])
		}
		defer func() { _ = out.Close() }()
		outWriter = out
	}
	opts := []tardir.Option{tardir.OptRelative}
	if rebaseDir != "" {
		opts = append(opts, tardir.OptRebase(rebaseDir))
	}
	if numericIDs {
		opts = append(opts, tardir.OptNumericIDs)
	}
	if err := tardir.Pack(sourceDir, outWriter, opts...); err != nil {
		logrus.WithError(err).Fatalf("packing %q", sourceDir)
	}
	os.Exit(0)
}
