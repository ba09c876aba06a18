package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Коды для загрузки и очистки датасета
	AcquisitionFailed  failure.ErrorCode = "AcquisitionFailed"  // Kaggle недоступен или вернул ошибку
	CredentialsMissing failure.ErrorCode = "CredentialsMissing" // Нет KAGGLE_USERNAME / KAGGLE_KEY
	DatasetNotFound    failure.ErrorCode = "DatasetNotFound"    // Датасет или файл внутри архива не найден
	DatasetMalformed   failure.ErrorCode = "DatasetMalformed"   // CSV без обязательных колонок
	DatasetEmpty       failure.ErrorCode = "DatasetEmpty"       // После очистки не осталось ни одной строки
	InvalidAppType     failure.ErrorCode = "InvalidAppType"     // Тип не Free/Paid/both
	InvalidCategory    failure.ErrorCode = "InvalidCategory"    // Категория не проходит валидацию
	InvalidLimit       failure.ErrorCode = "InvalidLimit"       // limit вне допустимого диапазона
)
