package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/store"
)

var rmCmd = &cobra.Command{
	Use:     "rm [index]",
	Aliases: []string{"delete"},
	Short:   "Delete the record at an index",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, args, removeRecord[*kinds.Pet], removeRecord[*kinds.Child])
	},
}

func removeRecord[R record.Record](s *session[R], args []string) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	current, err := s.store.Load()
	if err != nil {
		return err
	}
	if idx >= len(current) {
		return fmt.Errorf("%w: index %d of %d", store.ErrIndex, idx, len(current))
	}
	name := current[idx].DisplayName()

	records, err := store.RemoveAt(s.store, idx)
	if err != nil {
		return err
	}
	s.log.Info("record deleted", "index", idx, "size", len(records))
	fmt.Fprintf(s.out, "Deleted %s.\n", name)
	return nil
}
