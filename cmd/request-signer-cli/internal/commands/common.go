package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/request-signer/internal/app"
	"github.com/MGTheTrain/request-signer/internal/domain/canonical"
	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/keyformat"
	"github.com/MGTheTrain/request-signer/internal/pkg/config"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// setupLogger reads the CLI settings from the environment and initializes the logger.
func setupLogger() (*config.CLIConfig, logger.Logger, error) {
	cfg, err := config.InitializeCLIConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return cfg, loggerInstance, nil
}

// signerComponents are the pieces shared by the signing and key commands.
type signerComponents struct {
	adapter *keyformat.Adapter
	signing signing.SigningService
	keys    signing.KeyService
}

// newSignerComponents wires the RSA primitive into the services. The CLI keeps no audit records.
func newSignerComponents(settings config.SigningSettings, log logger.Logger) (*signerComponents, error) {
	primitive, err := cryptography.NewRSAPrimitive(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA primitive: %w", err)
	}

	builder, err := canonical.NewBuilder(primitive, canonical.Mode(settings.CanonicalMode))
	if err != nil {
		return nil, fmt.Errorf("failed to create canonical builder: %w", err)
	}

	adapter, err := keyformat.NewAdapter(primitive, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key format adapter: %w", err)
	}

	signingService, err := app.NewSigningService(primitive, builder, adapter, nil, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signing service: %w", err)
	}

	keyService, err := app.NewKeyService(primitive, settings.ModulusBits, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key service: %w", err)
	}

	return &signerComponents{
		adapter: adapter,
		signing: signingService,
		keys:    keyService,
	}, nil
}

// readTextFlag returns the value of the inline flag, or the content of the file flag when the inline one is empty.
func readTextFlag(cmd *cobra.Command, inlineFlag, fileFlag string) (string, error) {
	inline, err := cmd.Flags().GetString(inlineFlag)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", inlineFlag, err)
	}
	path, err := cmd.Flags().GetString(fileFlag)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", fileFlag, err)
	}

	switch {
	case inline != "" && path != "":
		return "", fmt.Errorf("--%s and --%s are mutually exclusive", inlineFlag, fileFlag)
	case inline != "":
		return inline, nil
	case path != "":
		content, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(content), nil
	default:
		return "", fmt.Errorf("one of --%s or --%s is required", inlineFlag, fileFlag)
	}
}
