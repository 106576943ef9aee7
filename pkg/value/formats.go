package value

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/querl/querl/internal/config"
	"github.com/querl/querl/pkg/query"
)

// Format describes one supported serialization format.
type Format struct {
	Name      string
	Extension string
	MediaType string
}

// Formats lists every format Encode and Decode understand.
var Formats = []Format{
	{Name: "json", Extension: "json", MediaType: "application/json"},
	{Name: "yaml", Extension: "yaml", MediaType: "application/x-yaml"},
	{Name: "msgpack", Extension: "msgpack", MediaType: "application/x-msgpack"},
	{Name: "txt", Extension: "txt", MediaType: "text/plain"},
}

// DefaultFormat is the format used when a host does not pick one.
func DefaultFormat() Format {
	f, _ := FormatByName(config.DefaultFormat)
	return f
}

// FormatByName looks a format up by its name.
func FormatByName(name string) (Format, bool) {
	for _, f := range Formats {
		if f.Name == name {
			return f, true
		}
	}
	return Format{}, false
}

// FormatFromExtension looks a format up by file extension (without dot).
func FormatFromExtension(ext string) (Format, bool) {
	for _, f := range Formats {
		if f.Extension == ext {
			return f, true
		}
	}
	return Format{}, false
}

// MediaTypeFromExtension maps a file extension to a media type, falling
// back to application/octet-stream. The table covers extensions hosts
// commonly serve, not only the formats this package encodes.
func MediaTypeFromExtension(extension string) string {
	switch extension {
	case "json":
		return "application/json"
	case "js":
		return "text/javascript"
	case "txt":
		return "text/plain"
	case "html", "htm":
		return "text/html"
	case "md":
		return "text/markdown"
	case "xls":
		return "application/vnd.ms-excel"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "ods":
		return "application/vnd.oasis.opendocument.spreadsheet"
	case "tsv":
		return "text/tab-separated-values"
	case "csv":
		return "text/csv"
	case "yaml", "yml":
		return "application/x-yaml"
	case "msgpack":
		return "application/x-msgpack"
	case "hdf5", "h5":
		return "application/x-hdf"
	case "png":
		return "image/png"
	case "svg":
		return "image/svg+xml"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "wasm":
		return "application/wasm"
	default:
		return "application/octet-stream"
	}
}

// envelope is the tagged wire form shared by the structured codecs. One
// pointer field per variant keeps decoding deterministic across json, yaml
// and msgpack.
type envelope struct {
	Type  string   `json:"type" yaml:"type" msgpack:"type"`
	Text  *string  `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Int   *int     `json:"int,omitempty" yaml:"int,omitempty" msgpack:"int,omitempty"`
	Real  *float64 `json:"real,omitempty" yaml:"real,omitempty" msgpack:"real,omitempty"`
	Bool  *bool    `json:"bool,omitempty" yaml:"bool,omitempty" msgpack:"bool,omitempty"`
	Bytes []byte   `json:"bytes,omitempty" yaml:"bytes,omitempty" msgpack:"bytes,omitempty"`
}

func toEnvelope(v Value) envelope {
	env := envelope{Type: v.TypeIdentifier()}
	switch x := v.(type) {
	case Text:
		env.Text = &x.Value
	case Integer:
		env.Int = &x.Value
	case Real:
		env.Real = &x.Value
	case Bool:
		env.Bool = &x.Value
	case Bytes:
		env.Bytes = x.Value
	}
	return env
}

func fromEnvelope(env envelope, format string) (Value, error) {
	switch env.Type {
	case "none":
		return None{}, nil
	case "text":
		if env.Text == nil {
			return Text{}, nil
		}
		return Text{Value: *env.Text}, nil
	case "int":
		if env.Int == nil {
			return Integer{}, nil
		}
		return Integer{Value: *env.Int}, nil
	case "real":
		if env.Real == nil {
			return Real{}, nil
		}
		return Real{Value: *env.Real}, nil
	case "bool":
		if env.Bool == nil {
			return Bool{}, nil
		}
		return Bool{Value: *env.Bool}, nil
	case "bytes":
		return Bytes{Value: env.Bytes}, nil
	}
	return nil, query.NewSerializationError(format, "unknown value type '%s'", env.Type)
}

// Encode serializes a value in the named format.
func Encode(v Value, format string) ([]byte, error) {
	switch format {
	case "json":
		b, err := json.Marshal(toEnvelope(v))
		if err != nil {
			return nil, query.NewSerializationError(format, "json error %s", err)
		}
		return b, nil
	case "yaml":
		b, err := yaml.Marshal(toEnvelope(v))
		if err != nil {
			return nil, query.NewSerializationError(format, "yaml error %s", err)
		}
		return b, nil
	case "msgpack":
		b, err := msgpack.Marshal(toEnvelope(v))
		if err != nil {
			return nil, query.NewSerializationError(format, "msgpack error %s", err)
		}
		return b, nil
	case "txt":
		s, err := ToString(v)
		if err != nil {
			return nil, query.NewSerializationError(format, "%s", err)
		}
		return []byte(s), nil
	}
	return nil, query.NewSerializationError(format, "unsupported format %s", format)
}

// Decode deserializes a value from the named format.
func Decode(b []byte, format string) (Value, error) {
	var env envelope
	switch format {
	case "json":
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, query.NewSerializationError(format, "json error %s", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(b, &env); err != nil {
			return nil, query.NewSerializationError(format, "yaml error %s", err)
		}
	case "msgpack":
		if err := msgpack.Unmarshal(b, &env); err != nil {
			return nil, query.NewSerializationError(format, "msgpack error %s", err)
		}
	case "txt":
		if !utf8.Valid(b) {
			return nil, query.NewSerializationError(format, "text is not valid UTF-8")
		}
		return Text{Value: string(b)}, nil
	default:
		return nil, query.NewSerializationError(format, "unsupported format %s", format)
	}
	return fromEnvelope(env, format)
}
