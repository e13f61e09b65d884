package infrastructure

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"resume-composer/internal/export"
)

func TestChromedpBrowser_MissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-chrome")
	b := NewChromedpBrowser(missing, 10*time.Second, zerolog.Nop())

	surf, err := b.Open(context.Background(), []byte("<html></html>"))

	assert.Nil(t, surf)
	assert.ErrorIs(t, err, export.ErrCapabilityMissing)
}

func TestNewChromedpBrowser_DefaultTimeout(t *testing.T) {
	b := NewChromedpBrowser("", 0, zerolog.Nop())
	assert.Equal(t, 60*time.Second, b.timeout)
}
