package traceio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"parsetrace/internal/forensics"
)

// record is the wire shape shared by both formats. A missing end marks a
// failed match.
type record struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Rule  string `json:"rule" msgpack:"rule"`
	Start int64  `json:"start" msgpack:"start"`
	End   *int64 `json:"end,omitempty" msgpack:"end,omitempty"`
}

func toRecord(ev forensics.Event) record {
	rec := record{
		Kind:  ev.Kind.String(),
		Rule:  ev.Rule,
		Start: int64(ev.Start),
	}
	if ev.HasEnd {
		end := int64(ev.End)
		rec.End = &end
	}
	return rec
}

func (rec record) event() (forensics.Event, error) {
	kind, err := forensics.ParseKind(rec.Kind)
	if err != nil {
		return forensics.Event{}, err
	}
	start, err := safecast.Conv[uint32](rec.Start)
	if err != nil {
		return forensics.Event{}, fmt.Errorf("start offset %d: %w", rec.Start, err)
	}
	ev := forensics.Event{Kind: kind, Rule: rec.Rule, Start: forensics.Pos(start)}
	if rec.End != nil {
		end, err := safecast.Conv[uint32](*rec.End)
		if err != nil {
			return forensics.Event{}, fmt.Errorf("end offset %d: %w", *rec.End, err)
		}
		ev.End = forensics.Pos(end)
		ev.HasEnd = true
	}
	return ev, nil
}

type recordDecoder interface {
	Decode(v any) error
}

// Decode reads every event from r. FormatAuto is treated as NDJSON.
func Decode(r io.Reader, format Format) ([]forensics.Event, error) {
	var dec recordDecoder
	switch format {
	case FormatAuto, FormatNDJSON:
		dec = json.NewDecoder(r)
	case FormatMsgpack:
		dec = msgpack.NewDecoder(r)
	default:
		return nil, fmt.Errorf("unknown trace format: %v", format)
	}

	var events []forensics.Event
	for n := 1; ; n++ {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		ev, err := rec.event()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		events = append(events, ev)
	}
}

// LoadFile opens path and decodes it, detecting the format when it is
// FormatAuto.
func LoadFile(path string, format Format) ([]forensics.Event, error) {
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	events, err := Decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

type recordEncoder interface {
	Encode(v any) error
}

// Encoder writes events one at a time in a fixed format.
type Encoder struct {
	enc recordEncoder
}

// NewEncoder returns an Encoder writing to w. FormatAuto is treated as NDJSON.
func NewEncoder(w io.Writer, format Format) (*Encoder, error) {
	switch format {
	case FormatAuto, FormatNDJSON:
		return &Encoder{enc: json.NewEncoder(w)}, nil
	case FormatMsgpack:
		return &Encoder{enc: msgpack.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown trace format: %v", format)
	}
}

// Encode writes a single event.
func (e *Encoder) Encode(ev forensics.Event) error {
	return e.enc.Encode(toRecord(ev))
}
