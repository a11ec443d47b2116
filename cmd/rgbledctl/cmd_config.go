package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/papilio-community/papilio-rgbled/internal/config"
	"github.com/spf13/cobra"
)

var configInitPath string

func init() {
	cmdConfigInit.Flags().StringVarP(&configInitPath, "output", "o", defaultConfigPath(), "Where to write the config file")

	cmdConfig.AddCommand(cmdConfigInit)
	rootCmd.AddCommand(cmdConfig)
}

var (
	cmdConfig = &cobra.Command{
		Use:   "config",
		Short: "Manage the rgbledctl configuration",
	}

	cmdConfigInit = &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the default settings",
		Example:     "rgbledctl config init -o ./rgbled.yaml",
		Args:        cobra.ExactArgs(0),
		Annotations: map[string]string{skipDeviceAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(configInitPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", configInitPath)
			return nil
		},
	}
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rgbled.yaml"
	}
	return filepath.Join(dir, "rgbledctl", "config.yaml")
}
