package stabilize

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framewright/stabilize/internal/imaging"
	"github.com/framewright/stabilize/internal/testutil"
	"github.com/framewright/stabilize/internal/timeutil"
)

func TestStabilizeEndToEnd(t *testing.T) {
	base := testutil.Texture(160, 120)
	frames := []*imaging.GrayImage{
		base,
		testutil.Shifted(base, 2, 1),
		testutil.Shifted(base, 3, 0),
		testutil.Shifted(base, 5, 2),
	}

	params := DefaultParams()
	params.GridSpacing = 20
	params.Smoothness = 2

	result, err := Stabilize(context.Background(), frames, params)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Raw.Len())
	assert.Equal(t, 3, result.Smoothed.Len())
	assert.Len(t, result.Corrections, 3)

	// Corrections are exactly smoothed minus raw.
	for i, c := range result.Corrections {
		assert.InDelta(t, float64(result.Smoothed.DX[i]-result.Raw.DX[i]), float64(c.DX), 1e-6)
	}

	assert.NotEmpty(t, result.Run.RunID)
	assert.Equal(t, 4, result.Run.FrameCount)
	require.NotNil(t, result.Run.Report)
	assert.Equal(t, 3, result.Run.Report.FramePairs)
}

func TestStabilizeFromRGBAFrames(t *testing.T) {
	// Frames delivered as interleaved RGBA, converted at the boundary the
	// way an embedding decoder would. Quantizing to 8 bits and back
	// should not cost the tracker its translation estimate.
	base := testutil.Texture(160, 120)
	gray := []*imaging.GrayImage{
		base,
		testutil.Shifted(base, 3, 1),
		testutil.Shifted(base, 6, 2),
	}
	frames := make([]*imaging.GrayImage, 0, len(gray))
	for _, buf := range testutil.FramesRGBA(gray) {
		frames = append(frames, imaging.FromRGBA(buf, 160, 120))
	}

	params := DefaultParams()
	params.GridSpacing = 20
	result, err := Stabilize(context.Background(), frames, params)
	require.NoError(t, err)

	require.Equal(t, 2, result.Raw.Len())
	for i := 0; i < 2; i++ {
		assert.InDelta(t, 3, float64(result.Raw.DX[i]), 1.5)
		assert.InDelta(t, 1, float64(result.Raw.DY[i]), 1.5)
	}
}

func TestStabilizeDegenerateClips(t *testing.T) {
	for _, frames := range [][]*imaging.GrayImage{
		nil,
		{testutil.Texture(64, 64)},
	} {
		result, err := Stabilize(context.Background(), frames, DefaultParams())
		require.NoError(t, err)
		assert.True(t, result.Raw.IsEmpty())
		assert.True(t, result.Smoothed.IsEmpty())
		assert.Empty(t, result.Corrections)
	}
}

func TestStabilizeRejectsInvalidParams(t *testing.T) {
	params := DefaultParams()
	params.CropRatio = 2.0

	_, err := Stabilize(context.Background(), nil, params)
	assert.Error(t, err)
}

func TestStabilizeRecordsDuration(t *testing.T) {
	clock := timeutil.NewFakeClock(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	engine := &Engine{Clock: clock}

	base := testutil.Texture(64, 64)
	result, err := engine.Stabilize(context.Background(), []*imaging.GrayImage{base, base}, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, clock.Now(), result.Run.StartedAt)
	assert.Equal(t, time.Duration(0), result.Run.Duration)

	// Distinct runs get distinct IDs.
	second, err := engine.Stabilize(context.Background(), []*imaging.GrayImage{base, base}, DefaultParams())
	require.NoError(t, err)
	assert.NotEqual(t, result.Run.RunID, second.Run.RunID)
}
