package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/harunnryd/shoki/internal/assistant"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Answer every .txt transcript in a directory",
	Long: `Reads every .txt file in the directory (one user message per line),
runs each transcript through a fresh assistant session, and writes the
answers as <output>/<name>.json. A transcript that fails is logged and
skipped; the rest of the batch still runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comps, err := buildComponents(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer comps.close()

		outputDir := cfg.Batch.OutputDir
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		entries, err := os.ReadDir(args[0])
		if err != nil {
			return fmt.Errorf("read transcript directory: %w", err)
		}

		processed := 0
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}

			inPath := filepath.Join(args[0], entry.Name())
			outName := strings.TrimSuffix(entry.Name(), ".txt") + ".json"
			outPath := filepath.Join(outputDir, outName)

			session, err := comps.newSession(cfg, false)
			if err != nil {
				return err
			}

			if err := processTranscript(cmd, session, inPath, outPath); err != nil {
				slog.Error("Transcript failed", "file", entry.Name(), "error", err)
				continue
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processed %s -> %s\n", entry.Name(), outPath)
			processed++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Done: %d transcript(s) processed.\n", processed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("batch.output_dir", "", "directory for the answer files")
}

type turnRecord struct {
	User string `json:"user"`
	AI   string `json:"ai"`
}

func processTranscript(cmd *cobra.Command, session *assistant.Session, inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var records []turnRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result := session.Process(cmd.Context(), line)
		records = append(records, turnRecord{User: line, AI: result.Answer})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	payload, err := encodeTurns(records)
	if err != nil {
		return err
	}

	return atomic.WriteFile(outPath, bytes.NewReader(payload))
}

// encodeTurns writes the turns as a JSON object keyed turn_1, turn_2, ...
// in conversation order rather than the lexical order a map would give.
func encodeTurns(records []turnRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, rec := range records {
		val, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "  %q: %s", fmt.Sprintf("turn_%d", i+1), val)
		if i < len(records)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
