package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ============================================================
// Codec
// ============================================================

var (
	// ErrNotFound: проект или файл отсутствует.
	ErrNotFound = errors.New("project not found")
	// ErrMalformed: документ не разбирается как проект.
	ErrMalformed = errors.New("malformed project document")
)

// Marshal кодирует документ в JSON с отступом в 2 пробела.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode пишет документ в w. Не-ASCII текст пишется как есть.
func Encode(w io.Writer, doc Document) error {
	if doc.Version == "" {
		doc.Version = Version
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return nil
}

func Unmarshal(data []byte) (Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode читает документ. Отсутствующие секции становятся пустыми.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Functions == nil {
		doc.Functions = make(map[string]FunctionEntry)
	}
	if doc.Camera.Zoom == 0 {
		doc.Camera.Zoom = 1
	}
	return doc, nil
}

// UnmarshalJSON считает функцию видимой, если поле visible не задано.
func (f *FunctionEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text    string `json:"text"`
		Visible *bool  `json:"visible"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Text = raw.Text
	f.Visible = raw.Visible == nil || *raw.Visible
	return nil
}
