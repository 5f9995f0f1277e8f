package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordsmith/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manages the YAML config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Writes the default config",
	Long:  `Writes the default config to path, or to the --config path when none is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if len(args) == 1 {
			path = args[0]
		}
		return initConfig(cmd.OutOrStdout(), path, configForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Write(cmd.OutOrStdout())
	},
}

func initConfig(w io.Writer, path string, force bool) error {
	if err := config.Default().Save(path, force); err != nil {
		return err
	}
	zlog.Info("wrote default config", zap.String("path", path))
	fmt.Fprintln(w, path)
	return nil
}
