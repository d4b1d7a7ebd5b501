package utils

import jsoniter "github.com/json-iterator/go"

var (
	// JSON: экземпляр jsoniter, используемый во всём ETL
	JSON = jsoniter.ConfigCompatibleWithStandardLibrary

	// PayloadJSON декодирует числа как json.Number, сохраняя их текст
	PayloadJSON = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()

	// Marshal сокращает JSON.Marshal
	Marshal = JSON.Marshal

	// Unmarshal сокращает JSON.Unmarshal
	Unmarshal = JSON.Unmarshal

	// NewEncoder сокращает JSON.NewEncoder
	NewEncoder = JSON.NewEncoder
)
