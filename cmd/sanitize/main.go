// Command sanitize reads HTML from a file argument or stdin and writes
// the sanitized result to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gosanitize/htmlsanitizer"
)

func main() {
	strict := flag.Bool("strict", false, "use StrictPolicy instead of DefaultPolicy")
	flag.Parse()

	var r io.Reader = os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			logrus.WithError(err).Fatal("sanitize: cannot open input file")
		}
		defer f.Close()
		r = f
	}

	input, err := io.ReadAll(r)
	if err != nil {
		logrus.WithError(err).Fatal("sanitize: cannot read input")
	}

	pol := htmlsanitizer.DefaultPolicy()
	if *strict {
		pol = htmlsanitizer.StrictPolicy()
	}

	out, err := htmlsanitizer.Sanitize(string(input), pol)
	if err != nil {
		logrus.WithError(err).Fatal("sanitize: configuration error")
	}
	fmt.Fprint(os.Stdout, out)
}
