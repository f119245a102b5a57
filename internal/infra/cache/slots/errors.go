package slots

import "errors"

var (
	// ErrCache ошибка обращения к хранилищу кэша
	ErrCache = errors.New("slots.cache: storage error")

	// ErrDecode закэшированное значение не удалось разобрать
	ErrDecode = errors.New("slots.cache: failed to decode value")
)
