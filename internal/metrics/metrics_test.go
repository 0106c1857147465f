package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSearch(t *testing.T) {
	before := testutil.ToFloat64(searchesTotal.WithLabelValues("basic", "OK"))

	ObserveSearch("basic", "OK", 20*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(searchesTotal.WithLabelValues("basic", "OK")))
}

func TestCounters(t *testing.T) {
	pricing := testutil.ToFloat64(pricingFailuresTotal)
	auth := testutil.ToFloat64(authFailuresTotal.WithLabelValues("expired"))

	PricingFailure()
	AuthFailure("expired")

	assert.Equal(t, pricing+1, testutil.ToFloat64(pricingFailuresTotal))
	assert.Equal(t, auth+1, testutil.ToFloat64(authFailuresTotal.WithLabelValues("expired")))
}
