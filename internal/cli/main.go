package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "reelmap",
		Short:        "Extract reusable editing templates from short-form videos",
		SilenceUsage: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	analyze := &cobra.Command{
		Use:   "analyze <media>",
		Short: "Analyze a local video and extract its editing template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0])
		},
	}
	analyze.Flags().String("transcript", "", "Path to a plain-text transcript (optional)")
	analyze.Flags().String("name", "", "Template name (default: derived from the source)")
	analyze.Flags().String("out", "out", "Output directory for the template JSON")
	analyze.Flags().String("db", "", "SQLite database to store the template in (optional)")
	root.AddCommand(analyze)

	apply := &cobra.Command{
		Use:   "apply <template>",
		Short: "Map a template onto a new script and assets",
		Long: "Map a previously extracted template onto new content. " +
			"<template> is a template JSON file, or a stored template id when --db is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0])
		},
	}
	apply.Flags().String("script", "", "Path to the new script text (required)")
	apply.Flags().StringSlice("assets", nil, "Asset references to map onto the template")
	apply.Flags().String("out", "", "Output path for the instruction JSON")
	apply.Flags().String("db", "", "SQLite database to load the template from")
	root.AddCommand(apply)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
