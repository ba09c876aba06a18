package value

import (
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"play_insights/pkg/errcodes"
)

type AppType string

const (
	AppTypeFree AppType = "Free"
	AppTypePaid AppType = "Paid"
)

func (t AppType) String() string {
	return string(t)
}

// ParseAppType принимает строго Free или Paid — всё остальное в датасете
// является признаком сдвинутой строки.
func ParseAppType(raw string) (AppType, error) {
	switch AppType(raw) {
	case AppTypeFree, AppTypePaid:
		return AppType(raw), nil
	default:
		return "", failure.NewInvalidArgumentError(
			fmt.Sprintf("unknown app type %q", raw),
			failure.WithCode(errcodes.InvalidAppType),
			failure.WithDescription("App type must be Free or Paid"),
		)
	}
}

// ParseTypeSelection разбирает выбор типа в фильтре: пустая строка и
// "both" означают оба типа.
func ParseTypeSelection(raw string) (AppType, error) {
	if raw == "" || raw == "both" {
		return "", nil
	}

	return ParseAppType(raw)
}
