package kvmabi

import "go.uber.org/zap"

// Option configures an Encoder, Decoder, or Contract.
type Option func(*config)

// config holds settings shared by the encoder and decoder.
type config struct {
	logger           *zap.Logger
	addressPrefix    string
	lenientAddresses bool
	bigIntASCII      bool
	maxListLength    int
}

// Default limits.
const (
	// DefaultAddressPrefix is the bech32 human-readable part of Klever addresses.
	DefaultAddressPrefix = "klv"

	// DefaultMaxListLength bounds the element count read from a list header.
	DefaultMaxListLength = 1 << 20
)

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		addressPrefix:    DefaultAddressPrefix,
		lenientAddresses: false,
		bigIntASCII:      true,
		maxListLength:    DefaultMaxListLength,
	}
}

func newConfig(opts []Option) *config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	return c
}

// WithLogger sets the logger for a single Encoder, Decoder, or Contract.
// Without it the package logger (see SetLogger) is used.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithAddressPrefix changes the bech32 prefix addresses are validated against
// and rendered with. Default is "klv".
func WithAddressPrefix(prefix string) Option {
	return func(c *config) {
		if prefix != "" {
			c.addressPrefix = prefix
		}
	}
}

// WithLenientAddresses makes address encoding pass malformed input through
// unchanged instead of failing with ErrInvalidAddress.
func WithLenientAddresses() Option {
	return func(c *config) {
		c.lenientAddresses = true
	}
}

// WithBigIntASCII enables or disables reading BigInt payloads as ASCII decimal
// digits before falling back to two's-complement binary. Enabled by default.
//
// The two forms overlap: a binary payload whose bytes all fall in 0x30-0x39
// reads as text. The encoder always writes binary, so with this enabled
// BigInt(48) (payload 30) decodes as 0 and BigInt(12345) (payload 3039) as 9.
// Disable it when decoding data written by this package's Encoder.
func WithBigIntASCII(enabled bool) Option {
	return func(c *config) {
		c.bigIntASCII = enabled
	}
}

// WithMaxListLength sets the largest element count accepted from a list header.
// Default is DefaultMaxListLength.
func WithMaxListLength(max int) Option {
	return func(c *config) {
		if max > 0 {
			c.maxListLength = max
		}
	}
}
