package blob

import (
	"errors"

	"github.com/arloliu/rmeta/internal/options"
	"go.uber.org/zap"
)

// DecoderOption is a functional option for configuring a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithFactory sets the entity factory used to build introspection objects.
// Default is introspect.DefaultFactory.
func WithFactory(f Factory) DecoderOption {
	return options.New(func(d *Decoder) error {
		if f == nil {
			return errors.New("entity factory must not be nil")
		}
		d.factory = f

		return nil
	})
}

// WithLogger sets the logger of a single decoder. Default is Logger().
func WithLogger(l *zap.Logger) DecoderOption {
	return options.NoError(func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	})
}
