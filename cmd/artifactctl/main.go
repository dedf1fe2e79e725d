// Command artifactctl converts and inspects model artifact documents.
//
//	artifactctl convert <in> <out>   re-encode, format chosen by extension (.json, .pb)
//	artifactctl inspect <file>...    print kind, version and shape
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/randytsao24/experienceintel/internal/artifact"
)

const usage = `usage:
  artifactctl convert <in> <out>
  artifactctl inspect <file>...
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "artifactctl:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid arguments")

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}

	switch args[0] {
	case "convert":
		if len(args) != 3 {
			fmt.Fprint(out, usage)
			return errUsage
		}
		return convert(args[1], args[2], out)
	case "inspect":
		if len(args) < 2 {
			fmt.Fprint(out, usage)
			return errUsage
		}
		for _, path := range args[1:] {
			if err := inspect(path, out); err != nil {
				return err
			}
		}
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func convert(in, out string, w io.Writer) error {
	doc, err := artifact.Load(in)
	if err != nil {
		return err
	}
	if err := artifact.Write(out, doc); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s -> %s (%s %s)\n", in, out, doc.Kind, doc.Version)
	return nil
}

func inspect(path string, w io.Writer) error {
	doc, err := artifact.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n  name:     %s\n  kind:     %s\n  version:  %s\n  features: %v\n",
		path, doc.Name, doc.Kind, doc.Version, doc.FeatureNames)
	switch doc.Kind {
	case artifact.TreeEnsembleClassifier, artifact.TreeEnsembleRegressor:
		nodes := 0
		for _, t := range doc.Trees {
			nodes += len(t.Nodes)
		}
		fmt.Fprintf(w, "  trees:    %d (%d nodes)\n", len(doc.Trees), nodes)
	case artifact.LinearRegressor, artifact.LogisticClassifier:
		fmt.Fprintf(w, "  coef:     %v\n  intercept: %g\n", doc.Coef, doc.Intercept)
	}
	if len(doc.Classes) > 0 {
		fmt.Fprintf(w, "  classes:  %v\n", doc.Classes)
	}
	return nil
}
