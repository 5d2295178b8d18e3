package monitoring

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCurve() *TrainingCurve {
	c := &TrainingCurve{}
	avg := NewMovingAverage(DefaultWindow)
	for ep := 1; ep <= 5; ep++ {
		ret := float64(ep) - 3.5
		c.Record(ep, ret, avg.Add(ret), ep/2)
	}
	return c
}

func TestRenderLearningCurve(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLearningCurve(&buf, sampleCurve(), "Snake Q-learning"))

	html := buf.String()
	assert.Contains(t, html, "Snake Q-learning")
	assert.Contains(t, html, "avg100")
	assert.Contains(t, html, "echarts")
}

func TestRenderLearningCurve_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderLearningCurve(&buf, &TrainingCurve{}, "empty")
	assert.ErrorIs(t, err, ErrEmptyCurve)
}

func TestWriteLearningCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "curve.html")
	require.NoError(t, WriteLearningCurve(path, sampleCurve(), "curve"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
