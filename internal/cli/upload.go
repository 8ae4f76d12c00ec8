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

func newUploadCmd(v *viper.Viper) *cobra.Command {
	var modelName string

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Clone the memory image in FILE back to the radio",
		Long:  "Verifies the image in FILE, recomputes its embedded checksums, and uploads it to a radio in clone mode. Put the radio in clone mode and start its receive operation before running this.",
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

			img, err := imagefile.Load(args[0], model.ImageLength)
			if err != nil {
				return err
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

			if err := sess.LoadImage(img); err != nil {
				return err
			}
			if err := sess.Verify(); err != nil {
				return err
			}
			if err := sess.Upload(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr())
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d bytes to %s\n", img.Len(), model.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "radio model (see 'clonemode models')")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
