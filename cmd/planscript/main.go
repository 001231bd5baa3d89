package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jfromaniello/planscript/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planscript",
		Short: "Intent-driven floor plan solver",
	}

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	var verbose bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "solve [project-path]",
		Short: "Solve an intent and emit the plan as PlanScript text",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSolve(args[0], verbose, jsonOut)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log solver phases")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the full result as JSON")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate an intent without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
