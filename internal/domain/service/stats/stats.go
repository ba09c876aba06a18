package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"play_insights/internal/domain/entity"
	"play_insights/internal/domain/service/catalog"
	"play_insights/internal/domain/value"
)

const (
	memoTTL             = 15 * time.Minute
	memoCleanupInterval = 30 * time.Minute

	priceHistogramQuantile = 0.95
)

// Service считает агрегаты по отфильтрованным выборкам. Таблица
// неизменяема в течение сессии, поэтому результат каждого запроса
// мемоизируется по ключу (фильтр, запрос).
type Service struct {
	table catalog.Table
	memo  *cache.Cache
}

func NewService(table catalog.Table) *Service {
	return &Service{
		table: table,
		memo:  cache.New(memoTTL, memoCleanupInterval),
	}
}

// AppScore — приложение-рекордсмен и значение метрики, по которой оно
// выиграло.
type AppScore struct {
	Name  string
	Value float64
}

// Summary — ключевые метрики выборки. Для пустой выборки Count равен
// нулю, а остальные поля nil: это валидное состояние, не ошибка.
type Summary struct {
	Count     int
	AvgRating *float64
	TopApp    *AppScore
	TopPaid   *AppScore
}

type CategoryInstalls struct {
	Category string
	Installs float64
}

// Histogram — распределение цен платных приложений. Диапазон обрезан
// по квантилю, чтобы редкие дорогие приложения не растягивали ось.
type Histogram struct {
	BinWidth float64
	Max      float64
	Counts   []int
}

func (h Histogram) Empty() bool {
	return len(h.Counts) == 0
}

func (s *Service) Summary(f value.Filter) Summary {
	key := "summary|" + f.Key()

	if v, ok := s.memo.Get(key); ok {
		return v.(Summary)
	}

	summary := buildSummary(s.table.Filter(f))
	s.memo.Set(key, summary, cache.DefaultExpiration)

	return summary
}

// InstallsByCategory — суммы установок по категориям, по убыванию, топ n.
func (s *Service) InstallsByCategory(f value.Filter, n int) []CategoryInstalls {
	key := fmt.Sprintf("installs-by-category|%s|%d", f.Key(), n)

	if v, ok := s.memo.Get(key); ok {
		return v.([]CategoryInstalls)
	}

	result := topCategories(s.table.Filter(f), n, func(apps []entity.App) float64 {
		return float64(lo.SumBy(apps, func(app entity.App) int64 { return app.Installs }))
	})
	s.memo.Set(key, result, cache.DefaultExpiration)

	return result
}

// AvgInstallsByCategory — средние установки по категориям, топ n.
func (s *Service) AvgInstallsByCategory(f value.Filter, n int) []CategoryInstalls {
	key := fmt.Sprintf("avg-installs-by-category|%s|%d", f.Key(), n)

	if v, ok := s.memo.Get(key); ok {
		return v.([]CategoryInstalls)
	}

	result := topCategories(s.table.Filter(f), n, func(apps []entity.App) float64 {
		return float64(lo.SumBy(apps, func(app entity.App) int64 { return app.Installs })) / float64(len(apps))
	})
	s.memo.Set(key, result, cache.DefaultExpiration)

	return result
}

// TopByInstalls — топ n приложений по установкам.
func (s *Service) TopByInstalls(f value.Filter, n int) []entity.App {
	key := fmt.Sprintf("top-by-installs|%s|%d", f.Key(), n)

	if v, ok := s.memo.Get(key); ok {
		return v.([]entity.App)
	}

	apps := s.table.Filter(f)

	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Installs > apps[j].Installs
	})

	if n >= 0 && len(apps) > n {
		apps = apps[:n]
	}

	s.memo.Set(key, apps, cache.DefaultExpiration)

	return apps
}

// PriceHistogram — распределение цен платных приложений выборки.
func (s *Service) PriceHistogram(f value.Filter, bins int) Histogram {
	key := fmt.Sprintf("price-histogram|%s|%d", f.Key(), bins)

	if v, ok := s.memo.Get(key); ok {
		return v.(Histogram)
	}

	histogram := buildPriceHistogram(s.table.Filter(f), bins)
	s.memo.Set(key, histogram, cache.DefaultExpiration)

	return histogram
}

func buildSummary(apps []entity.App) Summary {
	if len(apps) == 0 {
		return Summary{}
	}

	avgRating := lo.SumBy(apps, func(app entity.App) float64 { return app.Rating }) / float64(len(apps))

	topApp := lo.MaxBy(apps, func(a, b entity.App) bool {
		return a.PopularityScore > b.PopularityScore
	})

	summary := Summary{
		Count:     len(apps),
		AvgRating: &avgRating,
		TopApp: &AppScore{
			Name:  topApp.Name,
			Value: topApp.PopularityScore,
		},
	}

	mostExpensive := lo.MaxBy(apps, func(a, b entity.App) bool {
		return a.Price > b.Price
	})

	// Без платных приложений максимум цены — ноль, рекордсмена нет.
	if mostExpensive.Price > 0 {
		summary.TopPaid = &AppScore{
			Name:  mostExpensive.Name,
			Value: mostExpensive.Price,
		}
	}

	return summary
}

func topCategories(apps []entity.App, n int, aggregate func([]entity.App) float64) []CategoryInstalls {
	if len(apps) == 0 {
		return nil
	}

	groups := lo.GroupBy(apps, func(app entity.App) string { return app.Category })

	result := make([]CategoryInstalls, 0, len(groups))
	for category, group := range groups {
		result = append(result, CategoryInstalls{
			Category: category,
			Installs: aggregate(group),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Installs != result[j].Installs {
			return result[i].Installs > result[j].Installs
		}

		return result[i].Category < result[j].Category
	})

	if n >= 0 && len(result) > n {
		result = result[:n]
	}

	return result
}

func buildPriceHistogram(apps []entity.App, bins int) Histogram {
	if bins <= 0 {
		return Histogram{}
	}

	prices := lo.FilterMap(apps, func(app entity.App, _ int) (float64, bool) {
		return app.Price, app.Type == value.AppTypePaid && app.Price > 0
	})
	if len(prices) == 0 {
		return Histogram{}
	}

	sort.Float64s(prices)

	max := quantile(prices, priceHistogramQuantile)
	if max <= 0 {
		return Histogram{}
	}

	width := max / float64(bins)
	counts := make([]int, bins)

	for _, price := range prices {
		if price > max {
			continue
		}

		i := int(price / width)
		if i >= bins {
			i = bins - 1
		}

		counts[i]++
	}

	return Histogram{
		BinWidth: width,
		Max:      max,
		Counts:   counts,
	}
}

// quantile по отсортированному срезу, линейная интерполяция.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	low, high := int(pos), int(pos)+1

	if high >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	frac := pos - float64(low)

	return sorted[low]*(1-frac) + sorted[high]*frac
}
