package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
)

// Body is the tagged union of request body encodings. Exactly two
// implementations exist: JSON and *Multipart. The caller decides which one
// to send; the client never infers the shape from the payload.
type Body interface {
	// encode returns the content type (including any boundary) and the
	// encoded body.
	encode() (contentType string, r io.Reader, err error)
}

type jsonBody struct {
	v any
}

// JSON wraps a value for JSON encoding.
func JSON(v any) Body {
	return jsonBody{v: v}
}

func (b jsonBody) encode() (string, io.Reader, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return "", nil, errors.Join(ErrEncodeBody, err)
	}
	return "application/json", bytes.NewReader(data), nil
}

// FormFile is one file part of a multipart request. Field is the full part
// name; the backend expects attachment parts under "files.<attribute>" and
// raw uploads under "files".
type FormFile struct {
	Field   string
	Name    string
	Content io.Reader
}

// Multipart encodes the backend's multipart protocol: an optional "data"
// part holding the JSON document plus any number of file parts. The
// content type, boundary included, is produced by the multipart writer.
type Multipart struct {
	Data  any
	Files []FormFile
}

func (b *Multipart) encode() (string, io.Reader, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if b.Data != nil {
		data, err := json.Marshal(b.Data)
		if err != nil {
			return "", nil, errors.Join(ErrEncodeBody, err)
		}
		if err := w.WriteField("data", string(data)); err != nil {
			return "", nil, errors.Join(ErrEncodeBody, err)
		}
	}

	for _, f := range b.Files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return "", nil, errors.Join(ErrEncodeBody, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return "", nil, errors.Join(ErrEncodeBody, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, errors.Join(ErrEncodeBody, err)
	}

	return w.FormDataContentType(), &buf, nil
}
