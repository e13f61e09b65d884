package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-composer/internal/export"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		img.SetNRGBA(0, y, color.NRGBA{R: uint8(y), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeSurface struct {
	relaxErr   error
	captureErr error
	shot       []byte
	block      chan struct{}

	mu       sync.Mutex
	relaxed  bool
	restored int
	closed   bool
	scale    float64
}

func (s *fakeSurface) Relax(ctx context.Context) (func(context.Context) error, error) {
	if s.relaxErr != nil {
		return nil, s.relaxErr
	}
	s.mu.Lock()
	s.relaxed = true
	s.mu.Unlock()
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.relaxed = false
		s.restored++
		return nil
	}, nil
}

func (s *fakeSurface) Capture(ctx context.Context, scale float64) ([]byte, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.scale = scale
	relaxed := s.relaxed
	s.mu.Unlock()
	if !relaxed {
		return nil, errors.New("captured while clipped")
	}
	if s.captureErr != nil {
		return nil, s.captureErr
	}
	return s.shot, nil
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

type fakeBrowser struct {
	surf    *fakeSurface
	openErr error
}

func (b *fakeBrowser) Open(ctx context.Context, htmlDoc []byte) (Surface, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.surf, nil
}

func TestPaginate_TwoPointFourPages(t *testing.T) {
	const width = 1000
	pagePx := A4.HeightMM * width / A4.WidthMM
	height := int(2.4 * pagePx)

	bands := Paginate(width, height, A4)

	require.Len(t, bands, 3)
	assert.Equal(t, 0, bands[0].Y0)
	assert.Equal(t, bands[0].Y1, bands[1].Y0)
	assert.Equal(t, bands[1].Y1, bands[2].Y0)
	assert.Equal(t, height, bands[2].Y1)
	assert.Less(t, bands[2].Height(), bands[0].Height())
	assert.Less(t, bands[2].Height(), bands[1].Height())
	assert.InDelta(t, A4.HeightMM, bands[0].HeightMM(width, A4), 0.5)
	assert.Less(t, bands[2].HeightMM(width, A4), A4.HeightMM)
}

func TestPaginate_Edges(t *testing.T) {
	assert.Nil(t, Paginate(0, 100, A4))
	assert.Nil(t, Paginate(100, 0, A4))

	one := Paginate(210, 297, A4)
	require.Len(t, one, 1)
	assert.Equal(t, Band{Y0: 0, Y1: 297}, one[0])

	short := Paginate(210, 10, A4)
	assert.Equal(t, []Band{{Y0: 0, Y1: 10}}, short)
}

func TestExport_MultiPage(t *testing.T) {
	surf := &fakeSurface{shot: pngOf(t, 210, 700)}
	e := New(&fakeBrowser{surf: surf}, WithScale(1))

	var out bytes.Buffer
	res, err := e.Export(context.Background(), []byte("<html></html>"), "Jane", &out)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 210, res.Width)
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF")))
	assert.Equal(t, MinScale, surf.scale)
	assert.Equal(t, 1, surf.restored)
	assert.False(t, surf.relaxed)
	assert.True(t, surf.closed)
	assert.False(t, e.Busy())
}

func TestExport_RestoresOnCaptureFailure(t *testing.T) {
	surf := &fakeSurface{captureErr: errors.New("gpu lost")}
	e := New(&fakeBrowser{surf: surf})

	var out bytes.Buffer
	_, err := e.Export(context.Background(), nil, "", &out)

	assert.ErrorIs(t, err, export.ErrExportFailed)
	assert.Equal(t, 1, surf.restored)
	assert.False(t, surf.relaxed)
	assert.Zero(t, out.Len())
	assert.False(t, e.Busy())
}

func TestExport_BadRasterLeavesNoOutput(t *testing.T) {
	surf := &fakeSurface{shot: []byte("not a png")}
	e := New(&fakeBrowser{surf: surf})

	var out bytes.Buffer
	_, err := e.Export(context.Background(), nil, "", &out)

	assert.ErrorIs(t, err, export.ErrExportFailed)
	assert.Zero(t, out.Len())
	assert.Equal(t, 1, surf.restored)
}

func TestExport_TargetNotFound(t *testing.T) {
	surf := &fakeSurface{relaxErr: export.ErrTargetNotFound}
	e := New(&fakeBrowser{surf: surf})

	_, err := e.Export(context.Background(), nil, "", &bytes.Buffer{})

	assert.ErrorIs(t, err, export.ErrTargetNotFound)
	assert.Zero(t, surf.restored)
	assert.True(t, surf.closed)
}

func TestExport_CapabilityMissing(t *testing.T) {
	_, err := New(nil).Export(context.Background(), nil, "", &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrCapabilityMissing)

	b := &fakeBrowser{openErr: export.ErrCapabilityMissing}
	_, err = New(b).Export(context.Background(), nil, "", &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrCapabilityMissing)

	b = &fakeBrowser{openErr: errors.New("navigate: timeout")}
	_, err = New(b).Export(context.Background(), nil, "", &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrExportFailed)
}

func TestExport_RefusesReentry(t *testing.T) {
	surf := &fakeSurface{shot: pngOf(t, 210, 297), block: make(chan struct{})}
	e := New(&fakeBrowser{surf: surf})

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), nil, "", &bytes.Buffer{})
		done <- err
	}()
	require.Eventually(t, e.Busy, time.Second, time.Millisecond)

	_, err := e.Export(context.Background(), nil, "", &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrExportInProgress)

	close(surf.block)
	assert.NoError(t, <-done)
	assert.False(t, e.Busy())
}
