package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"play_insights/internal/domain/service/catalog"
	"play_insights/internal/domain/value"
)

func validRaw() catalog.RawApp {
	return catalog.RawApp{
		Name:     "Photo Editor",
		Category: "ART_AND_DESIGN",
		Rating:   "4.1",
		Reviews:  "159",
		Size:     "19M",
		Installs: "10,000+",
		Type:     "Free",
		Price:    "0",
	}
}

func TestCleanNormalizesColumns(t *testing.T) {
	rq := require.New(t)

	apps, stats := catalog.Clean([]catalog.RawApp{validRaw()})

	rq.Equal(0, stats.Total())
	rq.Len(apps, 1)

	app := apps[0]
	rq.Equal("Photo Editor", app.Name)
	rq.Equal("ART_AND_DESIGN", app.Category)
	rq.InDelta(4.1, app.Rating, 1e-9)
	rq.Equal(int64(159), app.Reviews)
	rq.Equal(int64(10000), app.Installs)
	rq.Equal(value.AppTypeFree, app.Type)
	rq.Equal(0.0, app.Price)
	rq.NotNil(app.SizeMB)
	rq.InDelta(19.0, *app.SizeMB, 1e-9)
}

func TestCleanDropsKnownCorruptedRows(t *testing.T) {
	rq := require.New(t)

	byName := validRaw()
	byName.Name = "Life Made Better"

	byCategory := validRaw()
	byCategory.Category = "1.9"

	apps, stats := catalog.Clean([]catalog.RawApp{byName, byCategory, validRaw()})

	rq.Equal(2, stats.Corrupted)
	rq.Len(apps, 1)

	for _, app := range apps {
		rq.NotEqual("Life Made Better", app.Name)
		rq.NotEqual("1.9", app.Category)
	}
}

func TestCleanCoercionFailures(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		mutate func(*catalog.RawApp)
	}{
		{
			name:   "Misaligned installs",
			mutate: func(r *catalog.RawApp) { r.Installs = "Free" },
		},
		{
			name:   "NaN rating",
			mutate: func(r *catalog.RawApp) { r.Rating = "NaN" },
		},
		{
			name:   "Rating out of range",
			mutate: func(r *catalog.RawApp) { r.Rating = "19.0" },
		},
		{
			name:   "Non-numeric reviews",
			mutate: func(r *catalog.RawApp) { r.Reviews = "3.0M" },
		},
		{
			name:   "Non-numeric price",
			mutate: func(r *catalog.RawApp) { r.Price = "Everyone" },
		},
		{
			name:   "Unknown type",
			mutate: func(r *catalog.RawApp) { r.Type = "0" },
		},
		{
			name:   "Empty category",
			mutate: func(r *catalog.RawApp) { r.Category = " " },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRaw()
			tc.mutate(&raw)

			apps, stats := catalog.Clean([]catalog.RawApp{raw})

			rq.Empty(apps)
			rq.Equal(1, stats.Missing)
		})
	}
}

func TestCleanPriceNormalization(t *testing.T) {
	rq := require.New(t)

	paid := validRaw()
	paid.Type = "Paid"
	paid.Price = "$4.99"

	free := validRaw()
	free.Price = "0"

	apps, _ := catalog.Clean([]catalog.RawApp{paid, free})

	rq.Len(apps, 2)
	rq.InDelta(4.99, apps[0].Price, 1e-9)
	rq.Equal(0.0, apps[1].Price)
}

func TestCleanPopularityScore(t *testing.T) {
	rq := require.New(t)

	raw := validRaw()
	raw.Reviews = "100"
	raw.Installs = "1,000+"

	apps, _ := catalog.Clean([]catalog.RawApp{raw})

	rq.Len(apps, 1)
	rq.InDelta(0.1, apps[0].PopularityScore, 1e-9)
}

func TestCleanDropsZeroInstalls(t *testing.T) {
	rq := require.New(t)

	raw := validRaw()
	raw.Installs = "0+"

	apps, stats := catalog.Clean([]catalog.RawApp{raw})

	rq.Empty(apps)
	rq.Equal(1, stats.ZeroInstalls)
}

func TestCleanSizeSentinel(t *testing.T) {
	rq := require.New(t)

	varies := validRaw()
	varies.Size = "Varies with device"

	kilobytes := validRaw()
	kilobytes.Size = "512k"

	apps, _ := catalog.Clean([]catalog.RawApp{varies, kilobytes})

	rq.Len(apps, 2)
	rq.Nil(apps[0].SizeMB)
	rq.NotNil(apps[1].SizeMB)
	rq.InDelta(0.5, *apps[1].SizeMB, 1e-9)
}

func TestCleanInvariants(t *testing.T) {
	rq := require.New(t)

	rows := []catalog.RawApp{
		validRaw(),
		{Name: "Broken", Category: "GAME", Rating: "", Reviews: "10", Size: "1M", Installs: "100+", Type: "Free", Price: "0"},
		{Name: "Paid App", Category: "GAME", Rating: "4.5", Reviews: "50", Size: "5M", Installs: "500+", Type: "Paid", Price: "$2.99"},
		{Name: "Life Made Better", Category: "LIFESTYLE", Rating: "4.0", Reviews: "10", Size: "1M", Installs: "100+", Type: "Free", Price: "0"},
	}

	apps, _ := catalog.Clean(rows)

	for _, app := range apps {
		rq.GreaterOrEqual(app.Rating, 0.0)
		rq.LessOrEqual(app.Rating, 5.0)
		rq.Positive(app.Installs)
		rq.GreaterOrEqual(app.Reviews, int64(0))
		rq.GreaterOrEqual(app.Price, 0.0)
		rq.NotEmpty(app.Category)
		rq.NotEmpty(app.Type)
	}
}

func TestCleanIdempotent(t *testing.T) {
	rq := require.New(t)

	rows := []catalog.RawApp{
		validRaw(),
		{Name: "Bad", Category: "GAME", Rating: "x", Reviews: "10", Size: "1M", Installs: "100+", Type: "Free", Price: "0"},
	}

	first, firstStats := catalog.Clean(rows)
	second, secondStats := catalog.Clean(rows)

	rq.Equal(first, second)
	rq.Equal(firstStats, secondStats)
}
