package serial

import "log/slog"

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for debug diagnostics. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMaxFrameSize limits the size of a frame read from a stream.
func WithMaxFrameSize(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxFrameSize = n
		}
	}
}

// WithMaxDepth limits how deeply values may nest.
func WithMaxDepth(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// WithConfig applies limits loaded with LoadConfig.
func WithConfig(cfg Config) Option {
	return func(d *Decoder) {
		WithMaxFrameSize(cfg.MaxFrameSize)(d)
		WithMaxDepth(cfg.MaxDepth)(d)
	}
}
