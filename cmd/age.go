package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/store"
)

var ageCmd = &cobra.Command{
	Use:   "age [index] [+N|-N]",
	Short: "Shift the age of the record at an index",
	Long: `Ages never go below zero.

Examples:
	roster age 0 +1
	roster age 3 -2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, args, shiftRecordAge[*kinds.Pet], shiftRecordAge[*kinds.Child])
	},
}

func shiftRecordAge[R record.Record](s *session[R], args []string) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid age change %q: want +N or -N", args[1])
	}

	var age int
	var ageable bool
	records, err := store.Update(s.store, idx, func(r R) {
		if a, ok := any(r).(record.Ageable); ok {
			record.ShiftAge(a, delta)
			age, ageable = a.Age(), true
		}
	})
	if err != nil {
		return err
	}
	if !ageable {
		return fmt.Errorf("%s records have no age", s.kind.Name())
	}
	s.log.Info("age shifted", "index", idx, "delta", delta, "size", len(records))
	fmt.Fprintf(s.out, "%s is now %d.\n", records[idx].DisplayName(), age)
	return nil
}
