package client

import (
	"encoding"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
)

// Parameter key which switches a request to multipart/form-data encoding.
const FileParam = "file"

// Request parameters, sent as the query string or request body depending on method.
//
// Values may be strings, booleans, integers, [encoding.TextMarshaler], slices of those, or a [*File] upload.
type Params map[string]any

// An upload attached to a multipart request.
type File struct {
	// Filename reported in the form part
	Name   string
	Reader io.Reader
}

// Opens a file on disk for upload. The caller should close the returned file after the request completes.
func OpenFile(path string) (*File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return &File{Name: filepath.Base(path), Reader: f}, f, nil
}

func (p Params) isMultipart() bool {
	if p == nil {
		return false
	}
	_, ok := p[FileParam]
	return ok
}

type formFile struct {
	key  string
	file *File
}

// Separates file uploads from regular fields. Files are returned sorted by key.
func (p Params) split() (url.Values, []formFile, error) {
	fields := make(map[string]any, len(p))
	var files []formFile
	for k, v := range p {
		if f, ok := v.(*File); ok {
			if f == nil || f.Reader == nil {
				return nil, nil, fmt.Errorf("file param '%s' has no reader", k)
			}
			files = append(files, formFile{key: k, file: f})
			continue
		}
		fields[k] = v
	}
	vals, err := ParseParams(fields)
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].key < files[j].key })
	return vals, files, nil
}

// Flexibly parses an input map to URL form values (strings)
func ParseParams(raw map[string]any) (url.Values, error) {
	out := make(url.Values)
	for k := range raw {
		switch v := raw[k].(type) {
		case nil:
			out.Set(k, "")
		case bool, string, int, uint, int8, int16, int32, int64, uint8, uint16, uint32, uint64, uintptr:
			out.Set(k, fmt.Sprint(v))
		case encoding.TextMarshaler:
			b, err := v.MarshalText()
			if err != nil {
				return nil, fmt.Errorf("param '%s': %w", k, err)
			}
			out.Set(k, string(b))
		default:
			ref := reflect.ValueOf(v)
			if ref.Kind() != reflect.Slice {
				return nil, fmt.Errorf("can't marshal param '%s' with type: %T", k, v)
			}
			for i := 0; i < ref.Len(); i++ {
				switch elem := ref.Index(i).Interface().(type) {
				case nil:
					out.Add(k, "")
				case bool, string, int, uint, int8, int16, int32, int64, uint8, uint16, uint32, uint64, uintptr:
					out.Add(k, fmt.Sprint(elem))
				case encoding.TextMarshaler:
					b, err := elem.MarshalText()
					if err != nil {
						return nil, fmt.Errorf("param '%s': %w", k, err)
					}
					out.Add(k, string(b))
				default:
					return nil, fmt.Errorf("can't marshal param '%s' with type: %T", k, v)
				}
			}
		}
	}
	return out, nil
}
