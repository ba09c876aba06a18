// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// App Запись о приложении после очистки
type App struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Rating          float64  `json:"rating"`
	Reviews         int64    `json:"reviews"`
	Installs        int64    `json:"installs"`
	SizeMB          *float64 `json:"sizeMb,omitempty"`
	Type            string   `json:"type"`
	Price           float64  `json:"price"`
	PopularityScore float64  `json:"popularityScore"`
}

// FilterParams Параметры фильтрации выборки (query string)
type FilterParams struct {
	Category string `query:"category" validate:"omitempty,max=64"`
	Type     string `query:"type" validate:"omitempty,oneof=Free Paid both"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=1000"`
}

// Summary Ключевые метрики по отфильтрованной выборке
type Summary struct {
	// Count Количество приложений в выборке
	Count int `json:"count"`

	// AvgRating Средняя оценка; null для пустой выборки
	AvgRating *float64 `json:"avgRating"`

	// TopApp Приложение с максимальным popularity score; null для пустой выборки
	TopApp *SummaryApp `json:"topApp"`

	// TopPaid Самое дорогое платное приложение; null, если платных нет
	TopPaid *SummaryApp `json:"topPaid"`
}

// SummaryApp Приложение-рекордсмен в сводке
type SummaryApp struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Catalog Справочник значений для фильтров
type Catalog struct {
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
}

// CategoryInstalls Агрегат установок по категории
type CategoryInstalls struct {
	Category string  `json:"category"`
	Installs float64 `json:"installs"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
