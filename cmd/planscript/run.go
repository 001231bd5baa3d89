package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/solver"
	"github.com/jfromaniello/planscript/pkg/validation"
)

// loadProject reads the intent and applies the optional toml tuning.
func loadProject(projectPath string) (*intent.Intent, error) {
	in, err := intent.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading intent: %w", err)
	}
	cfg, err := loadConfig(projectPath)
	if err != nil {
		return nil, err
	}
	cfg.apply(in)
	return in, nil
}

func runValidate(projectPath string) error {
	in, err := loadProject(projectPath)
	if err != nil {
		return err
	}

	report := validation.ValidateIntent(in)
	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runSolve(projectPath string, verbose, jsonOut bool) error {
	in, err := loadProject(projectPath)
	if err != nil {
		return err
	}

	opts := solver.Options{}
	if verbose {
		logger := log.New(os.Stderr)
		logger.SetLevel(log.DebugLevel)
		opts.Logger = logger
	}

	res, err := solver.Solve(in, opts)
	if err != nil {
		var se *solver.SolveError
		if errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, se.Error())
			os.Exit(1)
		}
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Print(res.Text)
	fmt.Println()
	printScore(res)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return nil
}
