// Package main is the entry point for the request-signer-cli application.
// It initializes the root command and registers the signing and key sub-commands,
// then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/request-signer/cmd/request-signer-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "request-signer-cli",
		Short: "RSA request signing CLI tool",
		Long: `request-signer-cli signs and verifies API requests with RSASSA-PKCS1-v1_5 and SHA-256.
The signed string is METHOD:ENDPOINT:sha256hex(minified JSON body):TIMESTAMP.
PKCS#1 keys are converted to PKCS#8 or SPKI on the fly.

Settings are read from the environment (or a .env file):
- LOG_LEVEL, LOG_TYPE
- SIGNER_CANONICAL_MODE (minify or jcs)
- SIGNER_MODULUS_BITS`,
		SilenceUsage: true,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitSigningCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize signing commands: %w", err)
	}

	if err := commands.InitKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
