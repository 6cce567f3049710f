// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nb2docs/internal/pages"
	"github.com/pdiddy/nb2docs/internal/render"
	"github.com/pdiddy/nb2docs/pkg/types"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage the local docs page store (store, get, list, export)",
	Long: `Pages keeps converted documents in a local SQLite store keyed by page id,
in the same shape the docs page API serves them. Use it to stage pages before
upload or to export them as one JSON or YAML file.`,
}

// --- store subcommand ---

var pagesStoreCmd = &cobra.Command{
	Use:   "store <page-id> <document.json>",
	Short: "Save a converted document under a page id",
	Long: `Store reads a document produced by "nb2docs convert" (or any file with
title, breadcrumb and blocks) and saves it under the page id, replacing any
existing page.`,
	Args: cobra.ExactArgs(2),
	RunE: runPagesStore,
}

func runPagesStore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing document %s: %w", args[1], err)
	}
	return storeDocument(context.Background(), args[0], &doc, os.Stdout)
}

// --- get subcommand ---

var pagesGetCmd = &cobra.Command{
	Use:   "get <page-id>",
	Short: "Print a stored page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesGet,
}

func runPagesGet(cmd *cobra.Command, args []string) error {
	store, err := pages.NewStore(pagesConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	page, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	indent, _ := cmd.Flags().GetBool("indent")
	enc, err := render.NewEncoder(types.OutputFormat(format), indent)
	if err != nil {
		return err
	}
	return enc.Encode(os.Stdout, &page.Document)
}

// --- list subcommand ---

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored pages, most recently updated first",
	RunE:  runPagesList,
}

func runPagesList(cmd *cobra.Command, args []string) error {
	store, err := pages.NewStore(pagesConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list) == 0 {
		fmt.Println("No pages stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-40s  %-6s  %s\n", "ID", "Title", "Blocks", "Updated")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
	for _, p := range list {
		fmt.Fprintf(os.Stdout, "%-24s  %-40s  %-6d  %s\n",
			truncate(p.ID, 24), truncate(p.Title, 40), len(p.Blocks), p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(os.Stdout, "\n%d pages\n", len(list))
	return nil
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var pagesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored pages to JSON or YAML",
	Long: `Export writes every stored page as one object keyed by page id, the
layout of the docs API's page database file.`,
	RunE: runPagesExport,
}

func runPagesExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := pages.NewStore(pagesConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var export func(io.Writer) error
	switch format {
	case "json", "":
		export = func(w io.Writer) error { return store.ExportJSON(ctx, w) }
	case "yaml":
		export = func(w io.Writer) error { return store.ExportYAML(ctx, w) }
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}

	if err := writeOutput(out, export); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
	}
	return nil
}

func init() {
	pagesGetCmd.Flags().String("format", "json", "output format: json, yaml, markdown, or html")
	pagesGetCmd.Flags().Bool("indent", false, "pretty-print JSON output")

	pagesListCmd.Flags().Bool("json", false, "output pages as JSON")

	pagesExportCmd.Flags().String("format", "json", "export format: json or yaml")
	pagesExportCmd.Flags().StringP("out", "o", "", "write the export to a file instead of stdout")

	// Wire subcommands.
	pagesCmd.AddCommand(pagesStoreCmd)
	pagesCmd.AddCommand(pagesGetCmd)
	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesExportCmd)

	rootCmd.AddCommand(pagesCmd)
}
