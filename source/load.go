package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/fixturekit/errors"
)

// Format names a dataset file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
	FormatXML  Format = "xml"
)

var extensions = map[string]Format{
	".yml":  FormatYAML,
	".yaml": FormatYAML,
	".json": FormatJSON,
	".toml": FormatTOML,
	".csv":  FormatCSV,
	".xml":  FormatXML,
}

// FormatOf picks a format from the file extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.UnsupportedFormat(ext)
}

// ParseFormat validates a format name such as "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	if f, ok := extensions["."+strings.ToLower(s)]; ok {
		return f, nil
	}
	return "", errors.UnsupportedFormat(s)
}

// Load reads the dataset file at path. The format comes from the
// extension; a CSV file yields one table named after the file.
func Load(path string) (*Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadFailed(path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds, err := LoadFormat(f, format, name)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr.WithDetail("path", path)
		}
		return nil, err
	}
	return ds, nil
}

// LoadFormat reads a dataset in the given format from r. name is the table
// name for formats that hold a single table.
func LoadFormat(r io.Reader, format Format, name string) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	switch format {
	case FormatYAML:
		ds, err = decodeYAML(r)
	case FormatJSON:
		ds, err = decodeJSON(r)
	case FormatTOML:
		ds, err = decodeTOML(r)
	case FormatCSV:
		ds, err = decodeCSV(r, name)
	case FormatXML:
		ds, err = decodeXML(r)
	default:
		return nil, errors.UnsupportedFormat(string(format))
	}
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.LoadFailed(name, err).WithDetail("format", string(format))
	}
	return ds, nil
}
