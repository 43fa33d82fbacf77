package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/model"
)

func setScrapeFlags(t *testing.T, product, description string) {
	t.Helper()
	saved := scrapeFlags
	t.Cleanup(func() { scrapeFlags = saved })
	scrapeFlags.product = product
	scrapeFlags.description = description
}

func TestBriefFromFlags(t *testing.T) {
	setScrapeFlags(t, "Phone X", "A flagship smartphone")
	scrapeFlags.competitors = []string{"Rival One", "Rival Two"}
	scrapeFlags.adType = "product"
	scrapeFlags.price = "$699"

	brief, err := briefFromFlags()
	require.NoError(t, err)
	assert.Equal(t, "Phone X", brief.Product)
	assert.Equal(t, []string{"Rival One", "Rival Two"}, brief.Competitors)
	assert.Equal(t, model.SubjectProduct, brief.AdType)
	assert.Equal(t, "$699", brief.Price)
}

func TestBriefFromFlags_Invalid(t *testing.T) {
	t.Run("missing_product", func(t *testing.T) {
		setScrapeFlags(t, "", "A flagship smartphone")
		_, err := briefFromFlags()
		var verr *validationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "product")
	})

	t.Run("bad_type", func(t *testing.T) {
		setScrapeFlags(t, "Phone X", "A flagship smartphone")
		scrapeFlags.adType = "podcast"
		_, err := briefFromFlags()
		var verr *validationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "ad_type")
	})
}

func TestWriteReport(t *testing.T) {
	data := model.NewScrapedData()
	data.DataQuality = model.QualityPartial

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, data))
	assert.Contains(t, buf.String(), "\n  \"data_quality\": \"PARTIAL\"")
}

func TestWriteGeneratedAd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated_ad.json")
	res := &model.MediaResult{Success: true, MediaURL: "https://cdn.example.com/ad.mp4", Type: model.MediaVideo}

	require.NoError(t, writeGeneratedAd(path, "Eco bottle", res))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]string{
		"prompt": "Eco bottle",
		"type":   "video",
		"url":    "https://cdn.example.com/ad.mp4",
	}, got)
}

func TestWriteGeneratedAd_BadPath(t *testing.T) {
	err := writeGeneratedAd(filepath.Join(t.TempDir(), "missing", "out.json"), "x", &model.MediaResult{})
	assert.Error(t, err)
}
