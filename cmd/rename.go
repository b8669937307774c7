package cmd

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/store"
)

var renameCmd = &cobra.Command{
	Use:   "rename [index] [name]",
	Short: "Rename the record at an index",
	Long: `Names hold letters and digits only, as in the dashboard.
An empty name ("") picks a random one.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, args, renameRecord[*kinds.Pet], renameRecord[*kinds.Child])
	},
}

func renameRecord[R record.Record](s *session[R], args []string) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	name := args[1]
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("invalid name %q: letters and digits only", name)
		}
	}
	if name == "" {
		name = record.RandomName()
	}

	records, err := store.Update(s.store, idx, func(r R) { r.SetDisplayName(name) })
	if err != nil {
		return err
	}
	s.log.Info("record renamed", "index", idx, "name", name, "size", len(records))
	fmt.Fprintf(s.out, "Renamed %d to %s.\n", idx, name)
	return nil
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid index %q: want a position starting at 0", s)
	}
	return idx, nil
}
