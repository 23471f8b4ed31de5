package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/keyformat"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// KeyCommandHandler encapsulates logic for generating and converting RSA keys via CLI.
type KeyCommandHandler struct {
	keyService signing.KeyService
	adapter    *keyformat.Adapter
	logger     logger.Logger
}

// NewKeyCommandHandler initializes a new KeyCommandHandler from the environment settings.
func NewKeyCommandHandler() (*KeyCommandHandler, error) {
	cfg, loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	components, err := newSignerComponents(cfg.Signing, loggerInstance)
	if err != nil {
		return nil, err
	}

	return &KeyCommandHandler{
		keyService: components.keys,
		adapter:    components.adapter,
		logger:     loggerInstance,
	}, nil
}

// GenerateKeysCmd generates an RSA key pair and prints it or persists it in a selected directory
func (commandHandler *KeyCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	bits, err := cmd.Flags().GetInt("bits")
	if err != nil {
		return fmt.Errorf("invalid bits flag: %w", err)
	}
	singleLine, err := cmd.Flags().GetBool("single-line")
	if err != nil {
		return fmt.Errorf("invalid single-line flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("invalid out-dir flag: %w", err)
	}

	keyPair, err := commandHandler.keyService.GenerateKeyPair(cmd.Context(), bits, singleLine)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outDir == "" {
		fmt.Fprintln(out, keyPair.PrivateKeyPEM)
		fmt.Fprintln(out, keyPair.PublicKeyPEM)
		return nil
	}

	uniqueID := uuid.New().String()
	privateKeyFilePath := filepath.Join(outDir, fmt.Sprintf("%s-private-key.pem", uniqueID))
	if err := os.WriteFile(privateKeyFilePath, []byte(keyPair.PrivateKeyPEM+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	publicKeyFilePath := filepath.Join(outDir, fmt.Sprintf("%s-public-key.pem", uniqueID))
	if err := os.WriteFile(publicKeyFilePath, []byte(keyPair.PublicKeyPEM+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	commandHandler.logger.Info("Generated ", keyPair.ModulusBits, "-bit key pair ", uniqueID)
	fmt.Fprintln(out, privateKeyFilePath)
	fmt.Fprintln(out, publicKeyFilePath)
	return nil
}

// ConvertKeyCmd re-armors a PKCS#1 key as PKCS#8 or SPKI PEM
func (commandHandler *KeyCommandHandler) ConvertKeyCmd(cmd *cobra.Command, _ []string) error {
	singleLine, err := cmd.Flags().GetBool("single-line")
	if err != nil {
		return fmt.Errorf("invalid single-line flag: %w", err)
	}

	text, err := readTextFlag(cmd, "key", "key-file")
	if err != nil {
		return err
	}

	normalized, err := commandHandler.adapter.Normalize(cmd.Context(), text, singleLine)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), normalized)
	return nil
}

// InitKeyCommands registers key-related commands
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key command handler %w", err)
	}

	registerKeyCommands(rootCmd, handler)
	return nil
}

func registerKeyCommands(rootCmd *cobra.Command, handler *KeyCommandHandler) {
	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair as PKCS#8 and SPKI PEM",
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().IntP("bits", "", 0, "RSA modulus length: 2048, 3072 or 4096 (default from SIGNER_MODULUS_BITS)")
	generateKeysCmd.Flags().BoolP("single-line", "", false, "Put the Base64 body of each PEM on one line")
	generateKeysCmd.Flags().StringP("out-dir", "", "", "Directory to store the keys (default print to stdout)")
	rootCmd.AddCommand(generateKeysCmd)

	var convertKeyCmd = &cobra.Command{
		Use:   "convert-key",
		Short: "Convert a PKCS#1 RSA key to PKCS#8 or SPKI PEM",
		RunE:  handler.ConvertKeyCmd,
	}
	convertKeyCmd.Flags().StringP("key", "", "", "PEM key text")
	convertKeyCmd.Flags().StringP("key-file", "", "", "Path to a PEM key")
	convertKeyCmd.Flags().BoolP("single-line", "", false, "Put the Base64 body on one line")
	rootCmd.AddCommand(convertKeyCmd)
}
