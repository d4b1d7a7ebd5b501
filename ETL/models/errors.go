package models

import "errors"

var (
	// ErrMissingColumn возвращается, если в источнике нет обязательной колонки
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedSource возвращается для неизвестного типа источника
	ErrUnsupportedSource = errors.New("unsupported source type")
	// ErrDimensionLookupMiss возвращается, если натуральный ключ строки не найден в измерении
	ErrDimensionLookupMiss = errors.New("dimension lookup miss")
	// ErrUnknownTable возвращается при запросе несуществующей таблицы
	ErrUnknownTable = errors.New("unknown table")
)
