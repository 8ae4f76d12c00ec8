package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kd7yxm/go-clonemode/models"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List supported radio models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODEL\tIMAGE\tBAUD\tCHECKSUMS")
			for _, name := range models.Names() {
				m, err := models.ByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
					name, m.Name, m.ImageLength, m.BaudRate, len(m.Checksums))
			}
			return w.Flush()
		},
	}
}
