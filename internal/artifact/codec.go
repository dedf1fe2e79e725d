package artifact

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Decode parses a document. Protobuf artifacts carry the JSON document as a google.protobuf.Struct.
func Decode(data []byte, format Format) (*Document, error) {
	switch format {
	case JSON:
		return decodeJSON(data)
	case Protobuf:
		msg := &structpb.Struct{}
		if err := proto.Unmarshal(data, msg); err != nil {
			return nil, fmt.Errorf("parsing artifact protobuf: %w", err)
		}
		// round-trip through JSON so both formats share one set of field names
		raw, err := json.Marshal(msg.AsMap())
		if err != nil {
			return nil, fmt.Errorf("re-encoding artifact struct: %w", err)
		}
		return decodeJSON(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode serializes a document
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case Protobuf:
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding artifact JSON: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decoding artifact JSON: %w", err)
		}
		msg, err := structpb.NewStruct(fields)
		if err != nil {
			return nil, fmt.Errorf("building artifact struct: %w", err)
		}
		return proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &doc, nil
}
