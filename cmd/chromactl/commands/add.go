package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chromactl/internal/domain"
)

// add <name>: put one record from flags, or many from a JSON-lines file.
func addCmd() *cobra.Command {
	var (
		id        string
		embedding []float32
		document  string
		metadata  map[string]string
		file      string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Put records into a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []domain.Record
			switch {
			case file != "" && id != "":
				return fmt.Errorf("use either --file or --id, not both")
			case file != "":
				recs, err := readRecords(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				records = recs
			case id != "":
				records = []domain.Record{{
					ID:        id,
					Embedding: embedding,
					Document:  document,
					Metadata:  toAny(metadata),
				}}
			default:
				return fmt.Errorf("--id or --file required")
			}

			if err := appCtx.Collections.Add(cmd.Context(), args[0], records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d record(s) to %q\n", len(records), args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record id")
	cmd.Flags().Float32SliceVar(&embedding, "embedding", nil, "embedding, e.g. 0.1,0.2,0.3")
	cmd.Flags().StringVar(&document, "document", "", "document text")
	cmd.Flags().StringToStringVar(&metadata, "metadata", nil, "record metadata as key=value pairs")
	cmd.Flags().StringVarP(&file, "file", "f", "", `JSON-lines file of records ("-" for stdin)`)
	return cmd
}

// readRecords decodes one JSON record per line from path, or stdin for "-".
func readRecords(stdin io.Reader, path string) ([]domain.Record, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var out []domain.Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		out = append(out, rec)
	}
	return out, sc.Err()
}
