package entity

import "play_insights/internal/domain/value"

// App — запись о приложении после очистки. Таблица неизменяема в
// течение сессии, поэтому запись хранится по значению.
type App struct {
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Rating   float64       `json:"rating"`
	Reviews  int64         `json:"reviews"`
	Installs int64         `json:"installs"`
	SizeMB   *float64      `json:"size_mb,omitempty"` // nil — "Varies with device"
	Type     value.AppType `json:"type"`
	Price    float64       `json:"price"`

	// PopularityScore = Reviews / Installs; Installs > 0 гарантируется очисткой.
	PopularityScore float64 `json:"popularity_score"`
}
