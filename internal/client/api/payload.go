package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
)

// payload is an encoded request body. The bytes are built once so the exact
// same body can be replayed on the post-renewal retry.
type payload struct {
	contentType string
	data        []byte
}

// filePart is a file attached to a multipart payload.
type filePart struct {
	field string
	name  string
	data  []byte
}

func jsonPayload(v any) (*payload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return &payload{contentType: "application/json", data: data}, nil
}

func multipartPayload(fields map[string]string, files ...filePart) (*payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", field, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file %s: %w", f.field, err)
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, fmt.Errorf("failed to write form file %s: %w", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return &payload{contentType: w.FormDataContentType(), data: buf.Bytes()}, nil
}
