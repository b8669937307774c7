package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/store"
)

var addCount int

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append randomly generated records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, args, addRecords[*kinds.Pet], addRecords[*kinds.Child])
	},
}

func addRecords[R record.Record](s *session[R], _ []string) error {
	if addCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	for n := 0; n < addCount; n++ {
		rec := s.kind.NewPlaceholder()
		records, err := store.Append(s.store, rec)
		if err != nil {
			return err
		}
		s.log.Info("record added", "size", len(records))
		fmt.Fprintf(s.out, "Added %s at %d.\n", rec.DisplayName(), len(records)-1)
	}
	return nil
}

func init() {
	addCmd.Flags().IntVarP(&addCount, "count", "c", 1, "How many records to add")
}
