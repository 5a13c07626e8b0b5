// Package cmd holds the go-ioc command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-ioc/framework/app"
)

var (
	version  = "dev"
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:           "go-ioc",
	Short:         "Dependency injection container with an HTTP inspector",
	Long:          `go-ioc boots the container application from .env configuration and serves its routes, or reports how ids would be resolved.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&envFiles, "env", "e", nil,
		"env files to load (default: .env when present)")

	rootCmd.AddCommand(serveCmd, inspectCmd)
}

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newApplication() (*app.Application, error) {
	return app.New(envFiles...)
}
