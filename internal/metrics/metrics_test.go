package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()

	families, err := Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRegistryGathers(t *testing.T) {
	RacesAnalyzedTotal.Inc()
	WeatherCacheHitsTotal.WithLabelValues("memory").Inc()

	families, err := Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestQualityScoresHistogramHasBoundedCardinality(t *testing.T) {
	QualityScores.Observe(23)
	QualityScores.Observe(80)
	QualityScores.Observe(100)

	mf := gatherFamily(t, "turf_advisor_quality_score")
	require.NotNil(t, mf)

	assert.Equal(t, dto.MetricType_HISTOGRAM, mf.GetType())

	// One unlabeled series regardless of how many races were scored.
	require.Len(t, mf.GetMetric(), 1)
	assert.Empty(t, mf.GetMetric()[0].GetLabel())
	assert.GreaterOrEqual(t, mf.GetMetric()[0].GetHistogram().GetSampleCount(), uint64(3))
}
