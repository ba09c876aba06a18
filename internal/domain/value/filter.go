package value

// Filter — выбор по двум категориальным осям. Пустые значения означают
// "все категории" и "оба типа" соответственно.
type Filter struct {
	Category string
	Type     AppType
}

func (f Filter) AllCategories() bool {
	return f.Category == ""
}

func (f Filter) BothTypes() bool {
	return f.Type == ""
}

// Key — стабильный ключ фильтра для мемоизации агрегатов.
func (f Filter) Key() string {
	return f.Category + "|" + string(f.Type)
}
