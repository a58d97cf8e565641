// =============================================================================
// EFT Viewer - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a decode run:
//   - Input discovery by glob pattern
//   - Whole-file reads of EFT inputs
//   - Report file naming
//   - Warning log and run summary generation
//
// The decoder never touches the file system; everything it is given comes
// through ReadInput, and everything written for a run goes through here.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// logRule separates sections in the generated text logs.
const logRule = "================================================================================\n"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles input discovery and output placement for a run.
type FileManager struct {
	// InputDir is scanned by DiscoverInputFiles.
	InputDir string

	// OutputDir receives reports and logs.
	OutputDir string
}

// NewFileManager creates a new FileManager instance.
func NewFileManager(inputDir, outputDir string) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// EnsureDirectories creates the output directory if it does not exist.
// The input directory is only read and is never created.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles finds the files in the input directory matching any of
// the given glob patterns.
//
// PARAMETERS:
//   - patterns: Glob patterns such as "*.eft". Empty means "*.eft".
//
// RETURNS:
//   - The matching regular files, sorted, each listed once.
//   - An error if a pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.eft"}
	}

	seen := make(map[string]bool)
	var result []string
	for _, pattern := range patterns {
		files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory with %q: %w", pattern, err)
		}

		for _, file := range files {
			if seen[file] {
				continue
			}
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			seen[file] = true
			result = append(result, file)
		}
	}

	slices.Sort(result)
	return result, nil
}

// ReadInput reads a whole EFT file into memory.
//
// PARAMETERS:
//   - path: The file to read.
//
// RETURNS:
//   - The file contents.
//   - An error if the path is a directory or cannot be read.
func ReadInput(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a report file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {name}      - Input file name without extension
//               {uuid}      - The run id, or a fresh UUID when none is given
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//   - params: Placeholder values; keys are names without braces.
//   - ext: The extension to enforce, such as ".xml".
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{name}_{date}"
//   params: {"name": "subject01"}
//   ext:    ".xlsx"
//   output: "subject01_20240115.xlsx"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// WARNING LOG GENERATION
// =============================================================================

// WarningLogEntry is one decode warning, or one failure, for one input file.
type WarningLogEntry struct {
	Timestamp time.Time
	FileName  string
	Message   string
	Failed    bool
}

// WriteWarningLog writes warning entries to a log file.
//
// PARAMETERS:
//   - entries: The entries to write.
//   - outputDir: The directory to write the log file.
//   - runID: The decode run id, used in the file name.
//
// RETURNS:
//   - The path to the log file, or "" when there is nothing to write.
//   - An error if writing fails.
func WriteWarningLog(entries []WarningLogEntry, outputDir, runID string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	logPath := filepath.Join(outputDir, fmt.Sprintf("warnings_%s.txt", runID))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create warning log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "EFT Viewer - Warning Log\n"+
		"Run ID:    %s\n"+
		"Generated: %s\n"+
		"Entries:   %d\n"+
		logRule+"\n",
		runID,
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		kind := "Warning"
		if entry.Failed {
			kind = "Failure"
		}
		fmt.Fprintf(writer, "%s #%d\n"+
			"  Timestamp: %s\n"+
			"  File:      %s\n"+
			"  Message:   %s\n\n",
			kind,
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.Message)
	}

	writer.WriteString(logRule + "End of Warning Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush warning log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about a decode run.
type RunSummary struct {
	RunID             string
	StartTime         time.Time
	EndTime           time.Time
	TotalFiles        int
	DecodedFiles      int
	FailedFiles       int
	TotalRecords      int
	TotalFingerprints int
	TotalWarnings     int
	Decoded           []DecodedFileInfo
	Failed            []FailedFileInfo
}

// DecodedFileInfo contains information about a decoded file.
type DecodedFileInfo struct {
	InputFile    string
	OutputFile   string
	Records      int
	Fingerprints int
	Warnings     int
	DecodeTime   time.Duration
}

// FailedFileInfo contains information about a file that could not be decoded.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// Add folds one decoded file into the summary.
func (s *RunSummary) Add(info DecodedFileInfo) {
	s.DecodedFiles++
	s.TotalRecords += info.Records
	s.TotalFingerprints += info.Fingerprints
	s.TotalWarnings += info.Warnings
	s.Decoded = append(s.Decoded, info)
}

// AddFailure records a file that could not be decoded.
func (s *RunSummary) AddFailure(info FailedFileInfo) {
	s.FailedFiles++
	s.Failed = append(s.Failed, info)
}

// WriteSummaryLog writes a run summary to a log file.
//
// PARAMETERS:
//   - summary: The run summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("decode_summary_%s.txt", summary.RunID))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "EFT Viewer - Decode Summary\n"+
		logRule+"\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Decoded:        %d\n"+
		"  Failed:         %d\n"+
		"  Records:        %d\n"+
		"  Fingerprints:   %d\n"+
		"  Warnings:       %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime),
		summary.TotalFiles,
		summary.DecodedFiles,
		summary.FailedFiles,
		summary.TotalRecords,
		summary.TotalFingerprints,
		summary.TotalWarnings)

	if len(summary.Decoded) > 0 {
		writer.WriteString("Decoded Files:\n")
		for _, info := range summary.Decoded {
			fmt.Fprintf(writer, "  %s\n", filepath.Base(info.InputFile))
			if info.OutputFile != "" {
				fmt.Fprintf(writer, "    Output:       %s\n", info.OutputFile)
			}
			fmt.Fprintf(writer, "    Records:      %d\n"+
				"    Fingerprints: %d\n"+
				"    Warnings:     %d\n"+
				"    Time:         %s\n",
				info.Records, info.Fingerprints, info.Warnings, info.DecodeTime)
		}
		writer.WriteString("\n")
	}

	if len(summary.Failed) > 0 {
		writer.WriteString("Failed Files:\n")
		for _, info := range summary.Failed {
			fmt.Fprintf(writer, "  %s\n    Error: %s\n", filepath.Base(info.InputFile), info.ErrorMessage)
		}
		writer.WriteString("\n")
	}

	writer.WriteString(logRule + "End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
