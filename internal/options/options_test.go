package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type decoderConfig struct {
	publicOnly bool
	level      int
	calls      []string
}

func withLevel(level int) Option[*decoderConfig] {
	return New(func(c *decoderConfig) error {
		if level < 0 {
			return errors.New("level cannot be negative")
		}
		c.level = level
		c.calls = append(c.calls, "level")

		return nil
	})
}

func withPublicOnly() Option[*decoderConfig] {
	return NoError(func(c *decoderConfig) {
		c.publicOnly = true
		c.calls = append(c.calls, "publicOnly")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &decoderConfig{}
		err := Apply(cfg, withPublicOnly(), withLevel(3))
		require.NoError(t, err)
		require.True(t, cfg.publicOnly)
		require.Equal(t, 3, cfg.level)
		require.Equal(t, []string{"publicOnly", "level"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &decoderConfig{}
		err := Apply(cfg, withLevel(-1), withPublicOnly())
		require.Error(t, err)
		require.Contains(t, err.Error(), "level cannot be negative")
		require.False(t, cfg.publicOnly)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &decoderConfig{}
		err := Apply(cfg, nil, withLevel(1))
		require.NoError(t, err)
		require.Equal(t, 1, cfg.level)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &decoderConfig{}
		require.NoError(t, Apply(cfg))
		require.Empty(t, cfg.calls)
	})
}
