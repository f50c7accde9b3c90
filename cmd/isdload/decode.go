package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/isd-loader/internal/domain"
	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

var errLimit = errors.New("limit reached")

func newDecodeCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "print the documents decoded from an ISD file as JSON lines",
		Long: `Decodes a file without touching a store. A "-<shard>-<shards>" suffix on
the file name decodes only that shard's lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assembler, err := newAssembler()
			if err != nil {
				return err
			}
			return decodeFile(cmd.OutOrStdout(), assembler, pipeline.ParseWorkItem(args[0]), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many records (0 for all)")
	return cmd
}

func decodeFile(w io.Writer, assembler *domain.RecordAssembler, item pipeline.WorkItem, limit int) error {
	enc := json.NewEncoder(w)
	n := 0
	err := pipeline.ReadLines(item, func(lineNo int, line string) error {
		rec, err := assembler.Decode(line)
		if err != nil {
			return &pipeline.LineError{File: item.String(), Line: lineNo, Err: err}
		}
		if err := enc.Encode(rec.Document()); err != nil {
			return fmt.Errorf("encode line %d: %w", lineNo, err)
		}
		n++
		if limit > 0 && n >= limit {
			return errLimit
		}
		return nil
	})
	if errors.Is(err, errLimit) {
		return nil
	}
	return err
}
