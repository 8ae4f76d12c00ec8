package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kd7yxm/go-clonemode/clone"
	"github.com/kd7yxm/go-clonemode/imagefile"
	"github.com/kd7yxm/go-clonemode/models"
	"github.com/kd7yxm/go-clonemode/serialport"
)

func newDownloadCmd(v *viper.Viper) *cobra.Command {
	var modelName string

	cmd := &cobra.Command{
		Use:   "download FILE",
		Short: "Clone the radio's memory image into FILE",
		Long:  "Downloads the complete memory image from a radio in clone mode, verifies every embedded checksum, and writes the image to FILE. Put the radio in clone mode and start its send operation when prompted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := models.ByName(modelName)
			if err != nil {
				return err
			}
			device := v.GetString("port")
			if device == "" {
				return fmt.Errorf("no serial port given (use --port)")
			}

			port, err := serialport.Open(device, model.BaudRate, v.GetDuration("timeout"))
			if err != nil {
				return err
			}
			defer port.Close()

			sess, err := clone.NewSession(port, model,
				clone.WithLogger(newLogger(v)),
				clone.WithProgress(progressPrinter(cmd)),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Waiting for %s: press the clone-send key on the radio...\n", model.Name)
			if err := sess.Download(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr())
			if err := sess.Verify(); err != nil {
				return err
			}

			if err := imagefile.Save(args[0], sess.Image()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d bytes to %s\n", sess.Image().Len(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "radio model (see 'clonemode models')")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

// progressPrinter rewrites a single status line on stderr per report.
func progressPrinter(cmd *cobra.Command) clone.ProgressFunc {
	return func(p clone.TransferProgress) {
		fmt.Fprintf(cmd.ErrOrStderr(), "\r%s %d/%d bytes", p.Phase, p.BytesDone, p.BytesTotal)
	}
}
