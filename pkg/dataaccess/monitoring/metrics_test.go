package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMetricsCarryProjectNamespace(t *testing.T) {
	t.Parallel()

	ch := make(chan *prometheus.Desc, 4)
	MongoLatency.Describe(ch)
	MongoTotalRequests.Describe(ch)
	close(ch)

	var seen int
	for d := range ch {
		seen++
		require.Contains(t, d.String(), `"lobo_dataaccess_mongo_`)
	}
	require.Equal(t, 2, seen)
}
