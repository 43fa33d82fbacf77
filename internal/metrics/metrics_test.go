package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveQuery(t *testing.T) {
	ok := testutil.ToFloat64(SearchQueries.WithLabelValues("success"))
	failed := testutil.ToFloat64(SearchQueries.WithLabelValues("failure"))

	ObserveQuery("market_price", 120*time.Millisecond, nil)
	ObserveQuery("product_reviews", time.Second, errors.New("timeout"))
	ObserveQuery("product_features", 80*time.Millisecond, nil)

	assert.Equal(t, ok+2, testutil.ToFloat64(SearchQueries.WithLabelValues("success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(SearchQueries.WithLabelValues("failure")))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequests.WithLabelValues("/scrape", "false"))

	ObserveRequest("/scrape", false, 2*time.Second)

	assert.Equal(t, before+1, testutil.ToFloat64(APIRequests.WithLabelValues("/scrape", "false")))
}

func TestObserveScrape(t *testing.T) {
	before := testutil.ToFloat64(ScrapeRuns.WithLabelValues("event", "none"))

	ObserveScrape("event", "")

	assert.Equal(t, before+1, testutil.ToFloat64(ScrapeRuns.WithLabelValues("event", "none")))
}

func TestObserveMedia(t *testing.T) {
	before := testutil.ToFloat64(MediaGenerations.WithLabelValues("video", "true"))

	ObserveMedia("video", true)

	assert.Equal(t, before+1, testutil.ToFloat64(MediaGenerations.WithLabelValues("video", "true")))
}

func TestCollectorsRegistered(t *testing.T) {
	assert.Positive(t, testutil.CollectAndCount(SearchQueryDuration))
}
