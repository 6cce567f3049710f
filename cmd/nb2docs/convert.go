// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nb2docs/internal/convert"
	"github.com/pdiddy/nb2docs/internal/pages"
	"github.com/pdiddy/nb2docs/internal/render"
	"github.com/pdiddy/nb2docs/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <notebook.ipynb> [notebooks...]",
	Short: "Convert notebooks into docs page JSON",
	Long: `Convert reads a notebook and prints the docs page body: markdown cells
become h2, ul and p blocks; code cells become python code blocks followed by
their stream output as text code blocks. Other outputs are omitted.

The title defaults to "Notebook: <file name>" and the breadcrumb to
Documentation / Notebook. Both can be replaced with --title and --breadcrumb.

With --out-dir, every notebook given is converted into its own file and
existing outputs are skipped unless --force is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("title", "", "replace the derived page title")
	convertCmd.Flags().StringArray("breadcrumb", nil, "replace the breadcrumb; repeat once per entry")
	convertCmd.Flags().String("format", "", "output format: json, yaml, markdown, or html (default json)")
	convertCmd.Flags().Bool("indent", false, "pretty-print JSON output")
	convertCmd.Flags().StringP("out", "o", "", "write output to a file instead of stdout")
	convertCmd.Flags().String("out-dir", "", "convert each notebook into this directory")
	convertCmd.Flags().Bool("force", false, "overwrite existing outputs in --out-dir")
	convertCmd.Flags().String("store", "", "also save the document in the page store under this page id")

	_ = viper.BindPFlag("convert.format", convertCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("convert.indent", convertCmd.Flags().Lookup("indent"))

	rootCmd.AddCommand(convertCmd)
}

// conversionConfig merges convert flags with config file and environment
// values. Flags win. Each --breadcrumb is one entry, commas included.
func conversionConfig(cmd *cobra.Command) types.ConversionConfig {
	title, _ := cmd.Flags().GetString("title")
	out, _ := cmd.Flags().GetString("out")

	breadcrumb := viper.GetStringSlice("convert.breadcrumb")
	if cmd.Flags().Changed("breadcrumb") {
		breadcrumb, _ = cmd.Flags().GetStringArray("breadcrumb")
	}

	return types.ConversionConfig{
		Title:      title,
		Breadcrumb: breadcrumb,
		Format:     types.OutputFormat(viper.GetString("convert.format")),
		Indent:     viper.GetBool("convert.indent"),
		OutPath:    out,
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(cmd)
	outDir, _ := cmd.Flags().GetString("out-dir")
	force, _ := cmd.Flags().GetBool("force")
	pageID, _ := cmd.Flags().GetString("store")

	enc, err := render.NewEncoder(cfg.Format, cfg.Indent)
	if err != nil {
		return err
	}

	if outDir != "" {
		if pageID != "" {
			return fmt.Errorf("--store takes a single notebook and cannot be combined with --out-dir")
		}
		opts := convert.BatchOptions{
			OutDir:     outDir,
			Title:      cfg.Title,
			Breadcrumb: cfg.Breadcrumb,
			Force:      force,
		}
		result := convert.ConvertBatch(args, enc, opts, os.Stderr)
		if result.HasFailures() {
			return fmt.Errorf("%d notebook(s) failed conversion", result.Failed)
		}
		return nil
	}

	if len(args) > 1 {
		return fmt.Errorf("converting %d notebooks requires --out-dir", len(args))
	}

	doc, err := convert.ConvertFile(args[0])
	if err != nil {
		return err
	}
	doc.ApplyOverrides(cfg.Title, cfg.Breadcrumb)

	if pageID != "" {
		if err := storeDocument(cmd.Context(), pageID, doc, os.Stderr); err != nil {
			return err
		}
	}

	return writeOutput(cfg.OutPath, func(w io.Writer) error {
		return enc.Encode(w, doc)
	})
}

func storeDocument(ctx context.Context, id string, doc *types.Document, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := pages.NewStore(pagesConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	page, err := store.Upsert(ctx, id, doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "stored: %s (%d blocks)\n", page.ID, len(page.Blocks))
	return nil
}

// writeOutput runs write against stdout, or against outPath when set. A
// failed close is reported since it can lose buffered data.
func writeOutput(outPath string, write func(io.Writer) error) error {
	if outPath == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}
	return nil
}
