// Package cli implements the clonemode command line tool.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CLONEMODE")
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "clonemode",
		Short:         "Transfer memory images to and from clone-mode radios",
		Long:          "clonemode downloads, verifies, and uploads complete memory images over a serial clone-mode session. Images are stored as raw .img files.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringP("port", "p", "", "serial device, e.g. /dev/ttyUSB0")
	rootCmd.PersistentFlags().Duration("timeout", 0, "serial read timeout (default 1s)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = v.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(
		newDownloadCmd(v),
		newUploadCmd(v),
		newVerifyCmd(),
		newModelsCmd(),
	)

	return rootCmd
}

func newLogger(v *viper.Viper) *slog.Logger {
	level := slog.LevelInfo
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
