package catalog

import (
	"sort"

	"github.com/samber/lo"

	"play_insights/internal/domain/entity"
	"play_insights/internal/domain/value"
	"play_insights/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Table — неизменяемая очищенная таблица приложений. Строится один раз
// на старте и дальше только читается.
type Table struct {
	apps []entity.App
}

func NewTable(apps []entity.App) Table {
	return Table{apps: apps}
}

func (t Table) Len() int {
	return len(t.apps)
}

// Apps возвращает копию строк, чтобы вызывающий не мог изменить таблицу.
func (t Table) Apps() []entity.App {
	apps := make([]entity.App, len(t.apps))
	copy(apps, t.apps)

	return apps
}

// Filter — чистое подмножество по категории и типу. Пустой результат —
// валидное состояние, не ошибка.
func (t Table) Filter(f value.Filter) []entity.App {
	return lo.Filter(t.apps, func(app entity.App, _ int) bool {
		if !f.AllCategories() && app.Category != f.Category {
			return false
		}

		if !f.BothTypes() && app.Type != f.Type {
			return false
		}

		return true
	})
}

// Categories — отсортированный список категорий таблицы.
func (t Table) Categories() []string {
	categories := lo.Uniq(lo.Map(t.apps, func(app entity.App, _ int) string {
		return app.Category
	}))

	sort.Strings(categories)

	return categories
}
