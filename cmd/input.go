package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/datatidy-cli/internal/config"
	"github.com/KaramelBytes/datatidy-cli/internal/export"
	"github.com/KaramelBytes/datatidy-cli/internal/parser"
	"github.com/KaramelBytes/datatidy-cli/internal/table"
	"github.com/KaramelBytes/datatidy-cli/internal/utils"
)

var (
	inFormat     string
	inDelimiter  string
	inSheetName  string
	inSheetIndex int
)

// addInputFlags registers the flags shared by every command that reads a table.
func addInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&inFormat, "format", "", "input format: csv|xlsx (default: by extension)")
	c.Flags().StringVar(&inDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (overrides config)")
	c.Flags().StringVar(&inSheetName, "sheet-name", "", "XLSX: sheet name to read")
	c.Flags().IntVar(&inSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// loadInput reads the table at path using config values overridden by flags.
func loadInput(cmd *cobra.Command, path string) (*table.Table, error) {
	c := settings()
	opt := parser.Options{SheetName: c.SheetName, SheetIndex: c.SheetIndex}
	if inFormat != "" {
		f, err := parser.ParseFormat(inFormat)
		if err != nil {
			return nil, err
		}
		opt.Format = f
	}
	delim := c.Delimiter
	if cmd.Flags().Changed("delimiter") {
		delim = inDelimiter
	}
	// leave tab detection for .tsv to the loader unless a delimiter was asked for
	if cmd.Flags().Changed("delimiter") || delim != "," {
		r, err := cfgpkg.ParseDelimiter(delim)
		if err != nil {
			return nil, fmt.Errorf("unsupported --delimiter: %w", err)
		}
		opt.Delimiter = r
	}
	if cmd.Flags().Changed("sheet-name") {
		opt.SheetName = inSheetName
	}
	if cmd.Flags().Changed("sheet-index") {
		opt.SheetIndex = inSheetIndex
	}
	t, err := parser.LoadFile(path, opt)
	if err != nil {
		return nil, err
	}
	runLogger().Debug("Loaded table",
		zap.String("file", filepath.Base(path)),
		zap.Int("rows", t.Rows()),
		zap.Int("columns", t.Width()),
	)
	return t, nil
}

// encodeTable serializes t as csv or xlsx.
func encodeTable(t *table.Table, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return export.CSV(t)
	case "xlsx", "excel":
		return export.XLSX(t)
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use csv or xlsx)", format)
	}
}

// formatFor picks the output format: an explicit flag wins, then the
// extension of path, then csv.
func formatFor(flagValue, path string) string {
	if flagValue != "" {
		return flagValue
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "xlsx"
	}
	return "csv"
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w, status io.Writer, path string, data []byte, what string) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", what, err)
	}
	fmt.Fprintf(status, "✓ Wrote %s to %s\n", what, path)
	return nil
}

// statusWriter is where progress lines go: stdout unless it carries data.
func statusWriter(dataOnStdout bool) io.Writer {
	if dataOnStdout {
		return os.Stderr
	}
	return os.Stdout
}

// warnf prints a user-facing warning to stderr.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠ Warning: "+format+"\n", args...)
}
