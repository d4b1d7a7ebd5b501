package models

import (
	"math"
	"regexp"
	"strconv"
)

// ValueKind определяет тип скалярного значения, извлечённого из JSON
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindJSON // объект или массив, сохранённый как канонический JSON-текст
)

// Value представляет nullable-значение поля из raw_content
type Value struct {
	Kind ValueKind
	Text string
}

// NaturalKey представляет нормализованный натуральный ключ для дедупликации и поиска.
// Class разделяет значения разных типов с одинаковым текстом.
type NaturalKey struct {
	Valid bool
	Class ValueKind
	Text  string
}

var jsonNumberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Null возвращает пустое значение
func Null() Value {
	return Value{Kind: KindNull}
}

// String создает строковое значение
func String(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// Bool создает логическое значение
func Bool(b bool) Value {
	return Value{Kind: KindBool, Text: strconv.FormatBool(b)}
}

// Number создает числовое значение из текстового представления JSON-числа.
// Текст приводится к канонической форме: 1, 1.0 и 1e0 дают одинаковое значение.
func Number(text string) Value {
	return Value{Kind: KindNumber, Text: canonicalNumber(text)}
}

// JSON создает значение для вложенного объекта или массива
func JSON(text string) Value {
	return Value{Kind: KindJSON, Text: text}
}

// IsNull сообщает, отсутствует ли значение
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Present сообщает, является ли значение истинным: null, пустая строка, ноль,
// false и пустые объект или массив считаются отсутствующими
func (v Value) Present() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindNumber:
		f, err := strconv.ParseFloat(v.Text, 64)
		return err != nil || f != 0
	case KindBool:
		return v.Text == "true"
	case KindJSON:
		return v.Text != "{}" && v.Text != "[]"
	default:
		return v.Text != ""
	}
}

// Key возвращает натуральный ключ значения.
// Строка, записанная как JSON-число, совпадает по ключу с самим числом.
func (v Value) Key() NaturalKey {
	switch v.Kind {
	case KindNull:
		return NaturalKey{}
	case KindString:
		if jsonNumberPattern.MatchString(v.Text) {
			return NaturalKey{Valid: true, Class: KindNumber, Text: canonicalNumber(v.Text)}
		}
	}
	return NaturalKey{Valid: true, Class: v.Kind, Text: v.Text}
}

// Interface возвращает значение в виде, пригодном для записи в ячейку или JSON
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindNumber:
		if i, err := strconv.ParseInt(v.Text, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.Text, 64); err == nil {
			return f
		}
		return v.Text
	case KindBool:
		return v.Text == "true"
	default:
		return v.Text
	}
}

func canonicalNumber(text string) string {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return text
	}
	// Целые значения в диапазоне int64 записываются без экспоненты,
	// поэтому 1e15 и 1000000000000000 дают один ключ
	if f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
