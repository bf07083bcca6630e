package models

import "time"

// ConversionResult is the markdown returned by the model for one conversion,
// together with the HTML rendered from it.
type ConversionResult struct {
	Markdown    string    `json:"markdown" msgpack:"markdown"`
	HTML        string    `json:"html" msgpack:"html"`
	SourceName  string    `json:"sourceName" msgpack:"sourceName"`
	Model       string    `json:"model" msgpack:"model"`
	Cached      bool      `json:"cached,omitempty" msgpack:"cached,omitempty"`
	ConvertedAt time.Time `json:"convertedAt" msgpack:"convertedAt"`
	DurationMs  int64     `json:"durationMs" msgpack:"durationMs"`
}
