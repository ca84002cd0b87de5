package corpora

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Multipart describes a multipart/form-data request body prior to encoding:
// an ordered list of named parts, each either a plain string field or a file
// reference. File parts come from the filesystem (AddFilePath), from memory
// (AddFileBytes), or from an arbitrary reader (AddFileReader); the
// filesystem variant is a separate, explicitly-typed input so callers in
// restricted environments can stick to in-memory sources.
type Multipart struct {
	parts []multipartPart
}

type multipartPart struct {
	name  string
	value string // field parts only

	// file parts: exactly one source is set
	path     string
	filename string
	data     []byte
	reader   io.Reader
	isFile   bool
}

// NewMultipart creates an empty multipart descriptor.
func NewMultipart() *Multipart {
	return &Multipart{}
}

// AddField appends a plain field. Non-string values are serialized to their
// JSON string form before attaching.
func (m *Multipart) AddField(name string, value any) *Multipart {
	m.parts = append(m.parts, multipartPart{name: name, value: stringifyField(value)})
	return m
}

// AddFilePath appends a file part read from the filesystem at encode time.
// Directories are rejected, not expanded.
func (m *Multipart) AddFilePath(name, path string) *Multipart {
	m.parts = append(m.parts, multipartPart{
		name:     name,
		path:     path,
		filename: filepath.Base(path),
		isFile:   true,
	})
	return m
}

// AddFileBytes appends a file part backed by an in-memory buffer.
func (m *Multipart) AddFileBytes(name, filename string, data []byte) *Multipart {
	m.parts = append(m.parts, multipartPart{
		name:     name,
		filename: filename,
		data:     data,
		isFile:   true,
	})
	return m
}

// AddFileReader appends a file part drained from r at encode time.
func (m *Multipart) AddFileReader(name, filename string, r io.Reader) *Multipart {
	m.parts = append(m.parts, multipartPart{
		name:     name,
		filename: filename,
		reader:   r,
		isFile:   true,
	})
	return m
}

// encode serializes the descriptor. The returned content type carries the
// generated boundary. Every file part must resolve to a readable byte
// source; a failure here surfaces before any network I/O.
func (m *Multipart) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range m.parts {
		if !p.isFile {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %q: %w", p.name, err)
			}
			continue
		}
		if err := writeFilePart(w, p); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, p multipartPart) error {
	part, err := w.CreateFormFile(p.name, p.filename)
	if err != nil {
		return fmt.Errorf("failed to create file part %q: %w", p.name, err)
	}

	switch {
	case p.path != "":
		info, err := os.Stat(p.path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p.path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s", ErrDirectoryPart, p.path)
		}
		f, err := os.Open(p.path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", p.path, err)
		}
		defer f.Close()
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("failed to read %s: %w", p.path, err)
		}
	case p.reader != nil:
		if _, err := io.Copy(part, p.reader); err != nil {
			return fmt.Errorf("failed to read file part %q: %w", p.name, err)
		}
	default:
		if _, err := part.Write(p.data); err != nil {
			return fmt.Errorf("failed to write file part %q: %w", p.name, err)
		}
	}
	return nil
}

// stringifyField converts a field value to its wire string form. Strings
// pass through; everything else is JSON-encoded.
func stringifyField(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
