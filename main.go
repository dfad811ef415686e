package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"q.log/twophase/instance"
	"q.log/twophase/model"
	"q.log/twophase/parser"
	"q.log/twophase/simplex"
)

var log = logging.Logger("main")

func main() {
	mps := flag.Bool("mps", false, "Read the problem as a free MPS file instead of the text format")
	verify := flag.Bool("verify", false, "Solve the problem with GLPK as well and compare objectives")
	verbose := flag.Bool("v", false, "Print the problem data and the final basis")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	maxIter := flag.Int("max-iter", simplex.DefaultMaxIterations, "Maximum pivots per simplex phase")
	tol := flag.Float64("tol", simplex.DefaultTolerance, "Tolerance of the optimality and ratio tests")
	driveOut := flag.Bool("drive-out", false, "Pivot zero-valued artificial variables out after phase 1")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := logging.SetLogLevelRegex(".*", *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	filename := flag.Arg(0)
	var (
		p   *model.Problem
		err error
	)
	if *mps {
		p, err = instance.NewReader(filename).ConstructProblem()
	} else {
		p, err = parser.ParseFile(filename)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		p.Fprint(os.Stdout)
	}
	original := p.Clone()

	res, err := simplex.Solve(p,
		simplex.WithMaxIterations(*maxIter),
		simplex.WithTolerance(*tol),
		simplex.WithDriveOut(*driveOut),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *verbose && p.HasBasis() {
		p.FprintBasis(os.Stdout)
	}
	res.Fprint(os.Stdout)

	if *verify {
		status, obj, err := instance.CrossCheck(original)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("glpk: %v", status)
		if status == simplex.Optimal {
			fmt.Printf(", Z = %v", obj)
		}
		fmt.Println()
		if status != res.Status || (status == simplex.Optimal && math.Abs(obj-res.Objective) > 1e-6*math.Max(1, math.Abs(obj))) {
			log.Errorf("glpk disagrees: %v %v vs %v %v", status, obj, res.Status, res.Objective)
			os.Exit(3)
		}
	}
}
