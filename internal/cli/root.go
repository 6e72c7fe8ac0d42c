// Package cli implements the sandsh command-line interface.
// The binary carries a single root command: it prepares the sandbox
// root, the log file and the shell, then hands control to the REPL.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandsh/sandsh/internal/shell"
	"github.com/sandsh/sandsh/internal/vfs"
)

var (
	// Global flags
	rootDir  string
	logFile  string
	noBanner bool
)

var bootMessages = []string{
	"Initializing sandsh...",
	"Preparing sandbox root...",
	"Loading command registry...",
	"Starting session...",
}

// rootCmd is the base command for sandsh.
var rootCmd = &cobra.Command{
	Use:   "sandsh",
	Short: "Sandboxed single-user shell emulator",
	Long: `sandsh is a sandboxed shell emulator.

Every path a command touches is confined to the sandbox root; '..' past
the root is clamped at the root. File state lives in a real directory
tree, session state (aliases, environment, history) lives in memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Sandbox root directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: sandsh.log inside the root)")
	rootCmd.PersistentFlags().BoolVar(&noBanner, "no-banner", false, "Suppress the startup banner")
}

func runShell(cmd *cobra.Command) error {
	root := rootDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root '%s': %w", root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("unusable root '%s': %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root '%s' is not a directory", root)
	}

	logPath := logFile
	if logPath == "" {
		logPath = filepath.Join(root, "sandsh.log")
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file '%s': %w", logPath, err)
	}
	defer f.Close()

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	logger.Info("sandsh starting", "root", root, "log", logPath)

	sh, err := shell.New(shell.Options{
		Resolver: vfs.NewResolver(root),
		Store:    vfs.NewStore(),
		Logger:   logger,
		Out:      cmd.OutOrStdout(),
	})
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}

	if !noBanner {
		for _, msg := range bootMessages {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	err = sh.Run(cmd.Context())
	if err != nil {
		logger.Error("session failed", "error", err)
		return err
	}
	logger.Info("sandsh shutting down")
	return nil
}
