package main

import (
	"fmt"

	"github.com/jfromaniello/planscript/pkg/solver"
	"github.com/jfromaniello/planscript/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printScore(res *solver.Result) {
	fmt.Printf("variant %d, entry %s\n", res.Variant, res.Entry)
	fmt.Printf("score:      %.3f\n", res.Score.Total)
	fmt.Printf("  adjacency:  %.3f\n", res.Score.Adjacency)
	fmt.Printf("  aspect:     %.3f\n", res.Score.Aspect)
	fmt.Printf("  edge:       %.3f\n", res.Score.Edge)
	fmt.Printf("  efficiency: %.3f\n", res.Score.Efficiency)
}
