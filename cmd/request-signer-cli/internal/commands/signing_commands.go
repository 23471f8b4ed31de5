package commands

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/MGTheTrain/request-signer/internal/pkg/pemutil"
	"github.com/MGTheTrain/request-signer/internal/pkg/timeutil"
	"github.com/spf13/cobra"
)

// ErrSignatureInvalid is returned by the verify command when the signature does not match.
var ErrSignatureInvalid = errors.New("signature is invalid")

// SigningCommandHandler encapsulates logic for previewing, signing and verifying canonical requests via CLI.
type SigningCommandHandler struct {
	signingService signing.SigningService
	logger         logger.Logger
}

// NewSigningCommandHandler initializes a new SigningCommandHandler from the environment settings.
func NewSigningCommandHandler() (*SigningCommandHandler, error) {
	cfg, loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	components, err := newSignerComponents(cfg.Signing, loggerInstance)
	if err != nil {
		return nil, err
	}

	return &SigningCommandHandler{
		signingService: components.signing,
		logger:         loggerInstance,
	}, nil
}

// canonicalRequestFromFlags collects the canonical request inputs and runs the pre-flight check.
// The current local time is used when --timestamp is empty.
func canonicalRequestFromFlags(cmd *cobra.Command) (*signing.CanonicalRequest, error) {
	method, err := cmd.Flags().GetString("method")
	if err != nil {
		return nil, fmt.Errorf("invalid method flag: %w", err)
	}
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint flag: %w", err)
	}
	timestamp, err := cmd.Flags().GetString("timestamp")
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp flag: %w", err)
	}
	if timestamp == "" {
		timestamp = timeutil.NowISOLocal()
	}

	payload, err := readTextFlag(cmd, "payload", "payload-file")
	if err != nil {
		return nil, err
	}

	req := &signing.CanonicalRequest{
		HTTPMethod: method,
		Endpoint:   endpoint,
		Payload:    payload,
		Timestamp:  timestamp,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// PreviewCmd prints the minified payload, its hash and the canonical string
func (commandHandler *SigningCommandHandler) PreviewCmd(cmd *cobra.Command, _ []string) error {
	req, err := canonicalRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	preview, err := commandHandler.signingService.Preview(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Minified JSON:    %s\n", preview.MinifiedJSON)
	fmt.Fprintf(out, "Body hash:        %s\n", preview.BodyHashHex)
	fmt.Fprintf(out, "Canonical string: %s\n", preview.CanonicalString)
	return nil
}

// SignCmd signs the canonical string and prints the Base64 signature
func (commandHandler *SigningCommandHandler) SignCmd(cmd *cobra.Command, _ []string) error {
	req, err := canonicalRequestFromFlags(cmd)
	if err != nil {
		return err
	}
	threeLines, err := cmd.Flags().GetBool("three-lines")
	if err != nil {
		return fmt.Errorf("invalid three-lines flag: %w", err)
	}

	privatePEM, err := readTextFlag(cmd, "private-key", "private-key-file")
	if err != nil {
		return err
	}
	if err := signing.ValidateKeyText(privatePEM); err != nil {
		return err
	}

	result, err := commandHandler.signingService.Sign(cmd.Context(), req, privatePEM)
	if err != nil {
		return err
	}
	commandHandler.logger.Debug("Signed canonical string ", result.CanonicalString)

	signature := result.SignatureBase64
	if threeLines {
		signature = pemutil.WrapInThreeLines(signature)
	}
	fmt.Fprintln(cmd.OutOrStdout(), signature)
	return nil
}

// VerifyCmd verifies a Base64 signature against the canonical string
func (commandHandler *SigningCommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) error {
	req, err := canonicalRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	publicPEM, err := readTextFlag(cmd, "public-key", "public-key-file")
	if err != nil {
		return err
	}
	if err := signing.ValidateKeyText(publicPEM); err != nil {
		return err
	}

	signature, err := readTextFlag(cmd, "signature", "signature-file")
	if err != nil {
		return err
	}

	result, err := commandHandler.signingService.Verify(cmd.Context(), req, publicPEM, signature)
	if err != nil {
		return err
	}

	if !result.Valid {
		fmt.Fprintln(cmd.OutOrStdout(), "Signature is invalid")
		return ErrSignatureInvalid
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signature is valid")
	return nil
}

// NowCmd prints the current local time in the accepted timestamp form
func (commandHandler *SigningCommandHandler) NowCmd(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), timeutil.NowISOLocal())
	return nil
}

func addCanonicalFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("method", "", "POST", "HTTP method, upper case")
	cmd.Flags().StringP("endpoint", "", "", "Endpoint path starting with /")
	cmd.Flags().StringP("payload", "", "", "JSON payload")
	cmd.Flags().StringP("payload-file", "", "", "Path to a file holding the JSON payload")
	cmd.Flags().StringP("timestamp", "", "", "ISO-8601 timestamp with offset (default current local time)")
}

// InitSigningCommands registers signing-related commands
func InitSigningCommands(rootCmd *cobra.Command) error {
	handler, err := NewSigningCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create signing command handler %w", err)
	}

	registerSigningCommands(rootCmd, handler)
	return nil
}

func registerSigningCommands(rootCmd *cobra.Command, handler *SigningCommandHandler) {
	var previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Print the canonical string of a request without signing",
		RunE:  handler.PreviewCmd,
	}
	addCanonicalFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign the canonical string of a request with an RSA private key",
		RunE:  handler.SignCmd,
	}
	addCanonicalFlags(signCmd)
	signCmd.Flags().StringP("private-key", "", "", "PKCS#1 or PKCS#8 private key PEM")
	signCmd.Flags().StringP("private-key-file", "", "", "Path to a PKCS#1 or PKCS#8 private key PEM")
	signCmd.Flags().BoolP("three-lines", "", false, "Split the signature into three lines")
	rootCmd.AddCommand(signCmd)

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature over the canonical string of a request",
		RunE:  handler.VerifyCmd,
	}
	addCanonicalFlags(verifyCmd)
	verifyCmd.Flags().StringP("public-key", "", "", "PKCS#1 or SPKI public key PEM")
	verifyCmd.Flags().StringP("public-key-file", "", "", "Path to a PKCS#1 or SPKI public key PEM")
	verifyCmd.Flags().StringP("signature", "", "", "Base64 signature")
	verifyCmd.Flags().StringP("signature-file", "", "", "Path to a file holding the Base64 signature")
	rootCmd.AddCommand(verifyCmd)

	var nowCmd = &cobra.Command{
		Use:   "now",
		Short: "Print the current local time as an ISO-8601 timestamp",
		RunE:  handler.NowCmd,
	}
	rootCmd.AddCommand(nowCmd)
}
