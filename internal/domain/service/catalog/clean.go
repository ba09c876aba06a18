package catalog

import (
	"math"
	"strconv"
	"strings"

	"play_insights/internal/domain/entity"
	"play_insights/internal/domain/value"
)

const (
	// Известные битые строки датасета: у "Life Made Better" сдвинуты
	// колонки, и тот же сдвиг оставляет "1.9" в поле категории.
	corruptedAppName  = "Life Made Better"
	corruptedCategory = "1.9"

	// Размер "зависит от устройства" — неизвестен, а не ноль.
	sizeUnknownSentinel = "Varies with device"
)

const (
	dropReasonCorrupted    = "corrupted_row"
	dropReasonMissing      = "missing_essential"
	dropReasonZeroInstalls = "zero_installs"
)

// RawApp — строка CSV до очистки, все поля как есть.
type RawApp struct {
	Name     string
	Category string
	Rating   string
	Reviews  string
	Size     string
	Installs string
	Type     string
	Price    string
}

// DropStats считает отброшенные строки по причинам.
type DropStats struct {
	Corrupted    int
	Missing      int
	ZeroInstalls int
}

func (s *DropStats) add(reason string) {
	switch reason {
	case dropReasonCorrupted:
		s.Corrupted++
	case dropReasonMissing:
		s.Missing++
	case dropReasonZeroInstalls:
		s.ZeroInstalls++
	}
}

func (s DropStats) Total() int {
	return s.Corrupted + s.Missing + s.ZeroInstalls
}

// Clean применяет канонический конвейер очистки: убирает известные
// битые строки, приводит числовые колонки к типам и отбрасывает строки,
// где обязательное значение не распозналось. Детерминирован и
// идемпотентен: результат зависит только от входных строк.
func Clean(rows []RawApp) ([]entity.App, DropStats) {
	apps := make([]entity.App, 0, len(rows))

	var stats DropStats

	for _, raw := range rows {
		app, reason := cleanRow(raw)
		if reason != "" {
			stats.add(reason)
			continue
		}

		apps = append(apps, app)
	}

	return apps, stats
}

func cleanRow(raw RawApp) (entity.App, string) {
	if raw.Name == corruptedAppName || raw.Category == corruptedCategory {
		return entity.App{}, dropReasonCorrupted
	}

	if strings.TrimSpace(raw.Category) == "" {
		return entity.App{}, dropReasonMissing
	}

	rating, ok := parseRating(raw.Rating)
	if !ok {
		return entity.App{}, dropReasonMissing
	}

	installs, ok := parseInstalls(raw.Installs)
	if !ok {
		return entity.App{}, dropReasonMissing
	}

	reviews, ok := parseReviews(raw.Reviews)
	if !ok {
		return entity.App{}, dropReasonMissing
	}

	price, ok := parsePrice(raw.Price)
	if !ok {
		return entity.App{}, dropReasonMissing
	}

	appType, err := value.ParseAppType(strings.TrimSpace(raw.Type))
	if err != nil {
		return entity.App{}, dropReasonMissing
	}

	// Нулевой охват делает метрику популярности неопределённой, такие
	// строки выбывают до деления.
	if installs == 0 {
		return entity.App{}, dropReasonZeroInstalls
	}

	return entity.App{
		Name:            strings.TrimSpace(raw.Name),
		Category:        strings.TrimSpace(raw.Category),
		Rating:          rating,
		Reviews:         reviews,
		Installs:        installs,
		SizeMB:          parseSize(raw.Size),
		Type:            appType,
		Price:           price,
		PopularityScore: float64(reviews) / float64(installs),
	}, ""
}

// parseFinite — строгий разбор числа: NaN и Inf считаются отсутствующим
// значением (strconv.ParseFloat("NaN") иначе прошёл бы молча).
func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

func parseRating(raw string) (float64, bool) {
	v, ok := parseFinite(raw)
	if !ok || v < 0 || v > 5 {
		return 0, false
	}

	return v, true
}

// parseInstalls разбирает витринное значение вида "10,000+".
func parseInstalls(raw string) (int64, bool) {
	cleaned := strings.NewReplacer("+", "", ",", "").Replace(strings.TrimSpace(raw))

	v, ok := parseFinite(cleaned)
	if !ok || v < 0 {
		return 0, false
	}

	return int64(v), true
}

func parseReviews(raw string) (int64, bool) {
	v, ok := parseFinite(raw)
	if !ok || v < 0 {
		return 0, false
	}

	return int64(v), true
}

// parsePrice отрезает валютный префикс: "$4.99" → 4.99.
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(raw), "$")

	v, ok := parseFinite(cleaned)
	if !ok || v < 0 {
		return 0, false
	}

	return v, true
}

// parseSize нормализует размер в мегабайты; nil — размер неизвестен.
func parseSize(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == sizeUnknownSentinel {
		return nil
	}

	cleaned := strings.ReplaceAll(raw, ",", "")
	scale := 1.0

	switch {
	case strings.HasSuffix(cleaned, "M"):
		cleaned = strings.TrimSuffix(cleaned, "M")
	case strings.HasSuffix(cleaned, "k"):
		cleaned = strings.TrimSuffix(cleaned, "k")
		scale = 1.0 / 1024
	}

	v, ok := parseFinite(cleaned)
	if !ok || v < 0 {
		return nil
	}

	v *= scale

	return &v
}
