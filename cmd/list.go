package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/utils"
)

var (
	listFormat  string
	listPage    int
	listLimit   int
	listNoColor bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the collection",
	Long: `Examples:
	roster list                              # every record
	roster list --format table               # bordered table
	roster list --format json                # the stored JSON
	roster list --limit 10 --page 2          # second page of ten
	roster list --format quiet               # names only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, args, listRecords[*kinds.Pet], listRecords[*kinds.Child])
	},
}

func listRecords[R record.Record](s *session[R], _ []string) error {
	format, err := utils.ParseFormat(listFormat)
	if err != nil {
		return err
	}
	renderConfig := utils.DefaultRenderConfig()
	renderConfig.Format = format
	if listNoColor {
		renderConfig.Color = false
	}

	records, err := s.store.Load()
	if err != nil {
		return err
	}
	pagination := utils.NewPagination(len(records), listLimit, listPage)
	out, err := utils.NewRenderer(renderConfig).Render(utils.NewListing(s.kind.Title(), records, pagination))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(s.out, out)
	return err
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "default", "Output format: default|table|json|csv|quiet")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Records per page (0 shows all)")
	listCmd.Flags().BoolVar(&listNoColor, "no-color", false, "Disable colors")
}
