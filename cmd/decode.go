// =============================================================================
// EFT Viewer - Decode Command
// =============================================================================
//
// This file defines the 'decode' command, which decodes EFT files and
// reports what was found in them.
//
// COMMAND USAGE:
//   eftview decode [files...] [flags]
//
// FLAGS:
//   --format        : Report format: text, xml or xlsx
//   --out           : Directory for reports and run logs
//   --labels        : YAML or XLSX file overriding field labels
//   --fields        : Print every field of every record
//   --probe-images  : Print the format and size of every fingerprint image
//   --dry-run       : Decode and print, but write no files
//
// DECODING PIPELINE:
//   1. Collect the named files, or discover them in the input directory
//   2. For each file (concurrently, up to max_concurrency):
//      a. Read the whole file
//      b. Decode it
//      c. Probe fingerprint images if asked
//      d. Write the report
//   3. Print one summary line per file, in input order
//   4. Write the warning log and the run summary
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ginjaninja78/eft-viewer/internal/config"
	"github.com/ginjaninja78/eft-viewer/internal/decoder"
	"github.com/ginjaninja78/eft-viewer/internal/fieldnames"
	"github.com/ginjaninja78/eft-viewer/internal/imaging"
	"github.com/ginjaninja78/eft-viewer/internal/logging"
	"github.com/ginjaninja78/eft-viewer/internal/types"
	"github.com/ginjaninja78/eft-viewer/internal/xlsx"
	"github.com/ginjaninja78/eft-viewer/internal/xmlwriter"
	"github.com/ginjaninja78/eft-viewer/pkg/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	outputFormat string
	outputDir    string
	labelsFile   string
	showFields   bool
	probeImages  bool
	dryRun       bool
)

// maxValueWidth truncates long text values in the field dump.
const maxValueWidth = 72

// =============================================================================
// DECODE COMMAND DEFINITION
// =============================================================================

var decodeCmd = &cobra.Command{
	Use:   "decode [files...]",
	Short: "Decode EFT files and report their records",
	Long: `The decode command decodes each named EFT file, or every file in the input
directory matching file_patterns when none is named.

Decoding is tolerant: a malformed file still yields every record that could be
decoded, and each structural problem is reported as a warning. Files are
decoded concurrently and independently.

With --format xml or xlsx a report is written per file, together with a
warning log and a run summary in the output directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&outputFormat, "format", "", "Report format: text, xml or xlsx (default from config)")
	decodeCmd.Flags().StringVar(&outputDir, "out", "", "Directory for reports and logs (default from config)")
	decodeCmd.Flags().StringVar(&labelsFile, "labels", "", "YAML or XLSX file overriding field labels")
	decodeCmd.Flags().BoolVar(&showFields, "fields", false, "Print every field of every record")
	decodeCmd.Flags().BoolVar(&probeImages, "probe-images", false, "Print the format and size of fingerprint images")
	decodeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Decode and print without writing any file")
}

// =============================================================================
// RUN SETTINGS
// =============================================================================

// decodeSettings is the configuration of one decode run after flags have
// been applied over the main configuration.
type decodeSettings struct {
	RunID           string
	Format          string
	OutputDir       string
	NameFormat      string
	ProbeImages     bool
	WriteReports    bool
	ContinueOnError bool
	MaxConcurrency  int
	Names           *fieldnames.Dictionary
}

// newDecodeSettings merges flag values over cfg.
func newDecodeSettings(cfg *config.MainConfig) (decodeSettings, error) {
	s := decodeSettings{
		RunID:           uuid.New().String(),
		Format:          cfg.OutputFormat,
		OutputDir:       cfg.OutputDir,
		NameFormat:      cfg.OutputNameFormat,
		ProbeImages:     cfg.ProbeImages || probeImages,
		ContinueOnError: cfg.ContinueOnError,
		MaxConcurrency:  cfg.MaxConcurrency,
	}
	if outputFormat != "" {
		s.Format = strings.ToLower(outputFormat)
	}
	if outputDir != "" {
		s.OutputDir = outputDir
	}

	switch s.Format {
	case config.OutputText, config.OutputXML, config.OutputXLSX:
	default:
		return s, fmt.Errorf("invalid report format %q", s.Format)
	}
	s.WriteReports = s.Format != config.OutputText && !dryRun

	labels := cfg.LabelsFile
	if labelsFile != "" {
		labels = labelsFile
	}
	names, err := loadDictionary(labels)
	if err != nil {
		return s, err
	}
	s.Names = names

	return s, nil
}

// =============================================================================
// MAIN DECODE FUNCTION
// =============================================================================

// fileResult is the outcome of decoding one input file.
type fileResult struct {
	Path    string
	File    *types.File
	Output  string
	Images  []string
	Elapsed time.Duration
	Err     error
}

func runDecode(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	settings, err := newDecodeSettings(mainConfig)
	if err != nil {
		return err
	}
	log := logging.NewAdapter(logger).With("run", settings.RunID)

	fm := utils.NewFileManager(mainConfig.InputDir, settings.OutputDir)
	inputs := args
	if len(inputs) == 0 {
		inputs, err = fm.DiscoverInputFiles(mainConfig.FilePatterns)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}
	if len(inputs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No EFT files found.")
		return nil
	}

	if settings.WriteReports {
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
	}

	log.Info("decoding %d file(s)", len(inputs))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]fileResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.MaxConcurrency)

	for i, path := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = fileResult{Path: path, Err: err}
				return nil
			}
			results[i] = decodeFile(path, settings, log.With("file", filepath.Base(path)))
			if results[i].Err != nil && !settings.ContinueOnError {
				return fmt.Errorf("%s: %w", filepath.Base(path), results[i].Err)
			}
			return nil
		})
	}
	groupErr := g.Wait()

	out := cmd.OutOrStdout()
	summary := utils.RunSummary{RunID: settings.RunID, StartTime: startTime, TotalFiles: len(inputs)}
	var entries []utils.WarningLogEntry
	for _, result := range results {
		printResult(out, result, settings)
		entries = append(entries, warningEntries(result)...)
		if result.Err != nil {
			summary.AddFailure(utils.FailedFileInfo{InputFile: result.Path, ErrorMessage: result.Err.Error()})
			continue
		}
		summary.Add(utils.DecodedFileInfo{
			InputFile:    result.Path,
			OutputFile:   result.Output,
			Records:      result.File.RecordCount(),
			Fingerprints: result.File.FingerprintCount(),
			Warnings:     len(result.File.Warnings()),
			DecodeTime:   result.Elapsed,
		})
	}
	summary.EndTime = time.Now()

	printSummary(out, summary)

	if settings.WriteReports {
		if path, err := utils.WriteWarningLog(entries, settings.OutputDir, settings.RunID); err != nil {
			log.Error("failed to write warning log: %v", err)
		} else if path != "" {
			fmt.Fprintf(out, "Warnings logged to %s\n", path)
		}
		if path, err := utils.WriteSummaryLog(summary, settings.OutputDir); err != nil {
			log.Error("failed to write run summary: %v", err)
		} else {
			fmt.Fprintf(out, "Summary written to %s\n", path)
		}
	}

	return groupErr
}

// decodeFile reads, decodes and reports one file.
func decodeFile(path string, settings decodeSettings, log *logging.Adapter) fileResult {
	start := time.Now()
	result := fileResult{Path: path}

	data, err := utils.ReadInput(path)
	if err != nil {
		result.Err = err
		return result
	}

	file, err := decoder.New(decoder.Options{SourcePath: path, Logger: log}).Decode(data)
	if err != nil {
		result.Err = err
		return result
	}
	result.File = file

	if settings.ProbeImages {
		result.Images = probeFingerprints(file)
	}

	if settings.WriteReports {
		output, err := writeReport(file, settings)
		if err != nil {
			result.Err = err
			return result
		}
		result.Output = output
	}

	result.Elapsed = time.Since(start)
	log.Debug("decoded in %s", result.Elapsed)
	return result
}

// probeFingerprints describes the image payload of every fingerprint record.
func probeFingerprints(file *types.File) []string {
	var lines []string
	for _, r := range file.FingerprintRecords() {
		info, err := imaging.ProbeFingerprint(r)
		if err != nil {
			lines = append(lines, fmt.Sprintf("Record %d: %v", r.Index(), err))
			continue
		}
		lines = append(lines, fmt.Sprintf("Record %d: %s", r.Index(), info))
	}
	return lines
}

// writeReport writes the report of file in the configured format.
//
// RETURNS:
//   - The path of the written report.
//   - An error if rendering or writing fails.
func writeReport(file *types.File, settings decodeSettings) (string, error) {
	params := map[string]string{
		"name": utils.BaseName(file.SourcePath()),
		"uuid": settings.RunID,
	}
	name := utils.GenerateOutputFileName(settings.NameFormat, params, "."+settings.Format)
	path := filepath.Join(settings.OutputDir, name)

	switch settings.Format {
	case config.OutputXLSX:
		if err := xlsx.WriteWorkbook(path, file, settings.Names); err != nil {
			return "", fmt.Errorf("failed to write workbook: %w", err)
		}
	case config.OutputXML:
		options := xmlwriter.DefaultGenerateOptions()
		options.RootAttributes["runId"] = settings.RunID
		content, err := xmlwriter.GenerateWithOptions(file, settings.Names, options)
		if err != nil {
			return "", fmt.Errorf("failed to generate XML: %w", err)
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			return "", fmt.Errorf("failed to write XML: %w", err)
		}
	default:
		return "", fmt.Errorf("format %q has no report", settings.Format)
	}
	return path, nil
}

// warningEntries converts a result into warning log entries.
func warningEntries(result fileResult) []utils.WarningLogEntry {
	now := time.Now()
	name := filepath.Base(result.Path)
	if result.Err != nil {
		return []utils.WarningLogEntry{{Timestamp: now, FileName: name, Message: result.Err.Error(), Failed: true}}
	}

	var entries []utils.WarningLogEntry
	for _, w := range result.File.Warnings() {
		entries = append(entries, utils.WarningLogEntry{Timestamp: now, FileName: name, Message: w})
	}
	return entries
}

// =============================================================================
// OUTPUT
// =============================================================================

var (
	okMark   = color.GreenString("✓")
	warnMark = color.YellowString("!")
	failMark = color.RedString("✗")
)

// printResult prints the summary line of one file, followed by its
// warnings, image probes and, with --fields, its fields.
func printResult(w io.Writer, result fileResult, settings decodeSettings) {
	name := filepath.Base(result.Path)
	if result.Err != nil {
		fmt.Fprintf(w, "  %s %s: %v\n", failMark, name, result.Err)
		return
	}

	file := result.File
	mark := okMark
	if len(file.Warnings()) > 0 {
		mark = warnMark
	}
	fmt.Fprintf(w, "  %s %s: %s\n", mark, name, file.Summary())
	if result.Output != "" {
		fmt.Fprintf(w, "      -> %s\n", result.Output)
	}
	for _, warning := range file.Warnings() {
		fmt.Fprintf(w, "      %s %s\n", color.YellowString("warning:"), warning)
	}
	for _, line := range result.Images {
		fmt.Fprintf(w, "      image: %s\n", line)
	}

	if showFields {
		printFields(w, file, settings.Names)
	}
}

// printFields prints every record and its labelled fields.
func printFields(w io.Writer, file *types.File, names *fieldnames.Dictionary) {
	for _, r := range file.Records() {
		fmt.Fprintf(w, "    %s\n", color.CyanString(r.String()))
		for _, f := range r.Fields() {
			fmt.Fprintf(w, "      %-44s %s\n", names.FieldDisplayText(f.RecordType(), f.Number()), fieldValue(f))
		}
	}
}

// fieldValue renders a field value for the terminal.
func fieldValue(f types.Field) string {
	if f.IsBinary() {
		return fmt.Sprintf("<binary, %d bytes>", f.Len())
	}
	text := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '|'
		}
		return r
	}, f.Text())
	if len(text) > maxValueWidth {
		text = text[:maxValueWidth-3] + "..."
	}
	return text
}

// printSummary prints the totals of a run.
func printSummary(w io.Writer, summary utils.RunSummary) {
	fmt.Fprintln(w, "\n=== Decode Complete ===")
	fmt.Fprintf(w, "Run ID:          %s\n", summary.RunID)
	fmt.Fprintf(w, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(w, "Decoded:         %d\n", summary.DecodedFiles)
	if summary.FailedFiles > 0 {
		fmt.Fprintf(w, "Failed:          %s\n", color.RedString("%d", summary.FailedFiles))
	} else {
		fmt.Fprintf(w, "Failed:          %d\n", summary.FailedFiles)
	}
	fmt.Fprintf(w, "Records:         %d\n", summary.TotalRecords)
	fmt.Fprintf(w, "Fingerprints:    %d\n", summary.TotalFingerprints)
	fmt.Fprintf(w, "Warnings:        %d\n", summary.TotalWarnings)
	fmt.Fprintf(w, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))
}
