package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kd7yxm/go-clonemode/imagefile"
	"github.com/kd7yxm/go-clonemode/models"
)

func newVerifyCmd() *cobra.Command {
	var modelName string

	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Check the embedded checksums of a saved image",
		Long:  "Verifies every embedded checksum in the image file against the model's checksum rules, without touching a radio.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := models.ByName(modelName)
			if err != nil {
				return err
			}
			img, err := imagefile.Load(args[0], model.ImageLength)
			if err != nil {
				return err
			}
			for _, rule := range model.Checksums {
				if err := rule.Verify(img); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "checksum %s: OK\n", rule)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: image verified\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "radio model (see 'clonemode models')")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
