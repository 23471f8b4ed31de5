package signing

// PEM labels accepted at the boundary
const (
	LabelPrivateKey    = "PRIVATE KEY"
	LabelRSAPrivateKey = "RSA PRIVATE KEY"
	LabelPublicKey     = "PUBLIC KEY"
	LabelRSAPublicKey  = "RSA PUBLIC KEY"
)

// OperationSign marks a signature record produced by signing
const OperationSign = "sign"

// OperationVerify marks a signature record produced by verification
const OperationVerify = "verify"

// DefaultModulusBits is the RSA modulus length used for generated key pairs
const DefaultModulusBits = 2048

// KeyFormat names the container format handed to Primitive.ImportKey and ExportKey.
type KeyFormat string

// Container formats understood by the primitive
const (
	KeyFormatPKCS8 KeyFormat = "pkcs8"
	KeyFormatSPKI  KeyFormat = "spki"
)

// KeyUsage restricts what an imported key handle may be used for.
type KeyUsage string

// Usages requested on import
const (
	KeyUsageSign   KeyUsage = "sign"
	KeyUsageVerify KeyUsage = "verify"
)
