package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/milk9111/fpsarena/ecs"
	"github.com/vmihailenco/msgpack/v5"
)

// FormatVersion is bumped whenever Header or Frame change shape.
const FormatVersion = 1

var ErrBadHeader = errors.New("replay: bad header")

type Header struct {
	Version  int     `msgpack:"v"`
	MatchID  string  `msgpack:"match"`
	Arena    string  `msgpack:"arena"`
	TickRate int     `msgpack:"tps"`
	Seed     int64   `msgpack:"seed"`
	Start    float64 `msgpack:"start"`
}

// Event is the flattened form of an ecs.Event. Fields a kind does not use
// stay zero.
type Event struct {
	Kind   string     `msgpack:"k"`
	Entity string     `msgpack:"e,omitempty"`
	Other  string     `msgpack:"o,omitempty"`
	Point  [3]float64 `msgpack:"p,omitempty"`
	Damage float64    `msgpack:"d,omitempty"`
	Flag   bool       `msgpack:"f,omitempty"`
	Reason string     `msgpack:"r,omitempty"`
}

// Snapshot is one entity's pose and health at the end of a tick.
type Snapshot struct {
	Entity string     `msgpack:"e"`
	Name   string     `msgpack:"n,omitempty"`
	Pos    [3]float64 `msgpack:"p"`
	Yaw    float64    `msgpack:"y"`
	Health float64    `msgpack:"h,omitempty"`
	State  string     `msgpack:"s,omitempty"`
}

type Frame struct {
	Tick     uint64     `msgpack:"t"`
	Time     float64    `msgpack:"time"`
	Events   []Event    `msgpack:"ev,omitempty"`
	Entities []Snapshot `msgpack:"ent,omitempty"`
}

// FromEvent flattens a world event. Unknown payloads keep only the kind.
func FromEvent(evt ecs.Event) Event {
	out := Event{Kind: string(evt.Kind)}
	switch d := evt.Data.(type) {
	case ecs.AlertEvent:
		out.Entity = d.Entity.String()
		out.Flag = d.Alerted
	case ecs.FireEvent:
		out.Entity = d.Shooter.String()
		out.Other = d.Projectile.String()
		out.Point = d.Origin
	case ecs.HitEvent:
		out.Entity = d.Projectile.String()
		if d.Target.Valid() {
			out.Other = d.Target.String()
		}
		out.Point = d.Point
		out.Damage = d.Damage
		out.Flag = d.Killed
	case ecs.ExpireEvent:
		out.Entity = d.Projectile.String()
	case ecs.DeathEvent:
		out.Entity = d.Entity.String()
		if d.Source.Valid() {
			out.Other = d.Source.String()
		}
	case ecs.RespawnEvent:
		out.Entity = d.Entity.String()
		out.Reason = d.Reason
	case ecs.ReloadEvent:
		out.Entity = d.Entity.String()
		out.Flag = d.Completed
	}
	return out
}

// Writer streams a header followed by frames.
type Writer struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	frames int
}

func NewWriter(w io.Writer, header Header) (*Writer, error) {
	buf := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(buf)
	header.Version = FormatVersion
	if err := enc.Encode(&header); err != nil {
		return nil, fmt.Errorf("replay: write header: %w", err)
	}
	return &Writer{buf: buf, enc: enc}, nil
}

func (w *Writer) WriteFrame(f Frame) error {
	if err := w.enc.Encode(&f); err != nil {
		return fmt.Errorf("replay: write frame %d: %w", f.Tick, err)
	}
	w.frames++
	return nil
}

func (w *Writer) Frames() int {
	return w.frames
}

func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Reader reads back what Writer produced.
type Reader struct {
	dec    *msgpack.Decoder
	Header Header
}

func NewReader(r io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var header Header
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrBadHeader, header.Version, FormatVersion)
	}
	return &Reader{dec: dec, Header: header}, nil
}

// Next returns io.EOF after the last frame.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("replay: read frame: %w", err)
	}
	return f, nil
}
