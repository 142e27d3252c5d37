package vegetation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryComplement(t *testing.T) {
	s := NewService(69, "https://gee.example/view/grest")
	sum := s.Summary()
	assert.Equal(t, 69, sum.VegetationPct)
	assert.Equal(t, 31, sum.NonVegetationPct)
	assert.Equal(t, "https://gee.example/view/grest", sum.AnalysisAppURL)
}

func TestSummaryClampsOutOfRange(t *testing.T) {
	sum := NewService(140, "").Summary()
	assert.Equal(t, 0, sum.VegetationPct)
	assert.Equal(t, 100, sum.NonVegetationPct)
}
