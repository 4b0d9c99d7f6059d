package wish

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Share codes are a fixed-layout little-endian binary form wrapped in
// unpadded URL-safe base64, compact enough to embed in a link. The leading
// version byte guards against stale permalinks.
const shareCodeVersion = 2

const (
	goalTagPreset = 0
	goalTagCustom = 1
)

// EncodeBanner serializes the banner into a share code.
func EncodeBanner(b Banner) (string, error) {
	buf := make([]byte, 0, 24)
	buf = append(buf, shareCodeVersion)
	for _, n := range b.FocusSizes {
		if n < -128 || n > 127 {
			return "", ErrFocusRange
		}
		buf = append(buf, byte(int8(n)))
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(b.TopRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(b.MidRate))
	buf = append(buf, byte(b.Split[0]), byte(b.Split[1]))
	buf = append(buf, byte(b.Model))
	switch b.Model {
	case PityEscalating:
		buf = binary.LittleEndian.AppendUint16(buf, uint16(b.TopPity))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(b.MidPity))
	case PitySoftHard:
		buf = binary.LittleEndian.AppendUint16(buf, uint16(b.SoftAt))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(b.SoftRate))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(b.HardAt))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(b.MidPity))
	default:
		return "", ErrPityConfig
	}
	var flags byte
	if b.GuaranteedFocus {
		flags |= 1
	}
	if b.EpitomizedPath {
		flags |= 2
	}
	buf = append(buf, flags)
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// DecodeBanner parses a banner share code. Malformed, truncated or oversized
// input fails with a DecodeError; it never yields a partial banner.
func DecodeBanner(s string) (Banner, error) {
	r, err := newCodeReader("banner", s)
	if err != nil {
		return Banner{}, err
	}
	var b Banner
	for i := range b.FocusSizes {
		v, err := r.u8()
		if err != nil {
			return Banner{}, err
		}
		b.FocusSizes[i] = int(int8(v))
	}
	if b.TopRate, err = r.u16(); err != nil {
		return Banner{}, err
	}
	if b.MidRate, err = r.u16(); err != nil {
		return Banner{}, err
	}
	for i := range b.Split {
		v, err := r.u8()
		if err != nil {
			return Banner{}, err
		}
		b.Split[i] = int(v)
	}
	model, err := r.u8()
	if err != nil {
		return Banner{}, err
	}
	b.Model = PityModel(model)
	switch b.Model {
	case PityEscalating:
		if b.TopPity, err = r.u16(); err != nil {
			return Banner{}, err
		}
		if b.MidPity, err = r.u16(); err != nil {
			return Banner{}, err
		}
	case PitySoftHard:
		if b.SoftAt, err = r.u16(); err != nil {
			return Banner{}, err
		}
		if b.SoftRate, err = r.u16(); err != nil {
			return Banner{}, err
		}
		if b.HardAt, err = r.u16(); err != nil {
			return Banner{}, err
		}
		if b.MidPity, err = r.u16(); err != nil {
			return Banner{}, err
		}
	default:
		return Banner{}, decodeErr("banner", fmt.Sprintf("unknown pity model %d", model))
	}
	flags, err := r.u8()
	if err != nil {
		return Banner{}, err
	}
	if flags > 3 {
		return Banner{}, decodeErr("banner", "unknown flag bits")
	}
	b.GuaranteedFocus = flags&1 != 0
	b.EpitomizedPath = flags&2 != 0
	if err := r.done(); err != nil {
		return Banner{}, err
	}
	return b, nil
}

// EncodeGoal serializes the goal into a share code.
func EncodeGoal(g Goal) (string, error) {
	buf := make([]byte, 0, 8)
	buf = append(buf, shareCodeVersion)
	if g.Custom == nil {
		if g.Preset >= numPresets {
			return "", fmt.Errorf("encode goal: %s", g.Preset)
		}
		if g.Copies < 0 || g.Copies > 255 {
			return "", fmt.Errorf("encode goal: copies %d out of range", g.Copies)
		}
		buf = append(buf, goalTagPreset, byte(g.Preset), byte(g.Copies))
		return base64.RawURLEncoding.EncodeToString(buf), nil
	}
	if g.Custom.Kind > GoalAll {
		return "", fmt.Errorf("encode goal: unknown kind %d", g.Custom.Kind)
	}
	if len(g.Custom.Parts) > 255 {
		return "", fmt.Errorf("encode goal: %d parts exceed the encodable maximum", len(g.Custom.Parts))
	}
	buf = append(buf, goalTagCustom, byte(g.Custom.Kind), byte(len(g.Custom.Parts)))
	for _, p := range g.Custom.Parts {
		if p.Type > MidWeapon {
			return "", fmt.Errorf("encode goal: unknown item type %d", p.Type)
		}
		if p.Copies < 0 || p.Copies > 255 {
			return "", fmt.Errorf("encode goal: copies %d out of range", p.Copies)
		}
		buf = append(buf, byte(p.Type), byte(p.Copies))
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// DecodeGoal parses a goal share code.
func DecodeGoal(s string) (Goal, error) {
	r, err := newCodeReader("goal", s)
	if err != nil {
		return Goal{}, err
	}
	tag, err := r.u8()
	if err != nil {
		return Goal{}, err
	}
	switch tag {
	case goalTagPreset:
		preset, err := r.u8()
		if err != nil {
			return Goal{}, err
		}
		if Preset(preset) >= numPresets {
			return Goal{}, decodeErr("goal", fmt.Sprintf("unknown preset %d", preset))
		}
		copies, err := r.u8()
		if err != nil {
			return Goal{}, err
		}
		if err := r.done(); err != nil {
			return Goal{}, err
		}
		return Goal{Preset: Preset(preset), Copies: int(copies)}, nil
	case goalTagCustom:
		kind, err := r.u8()
		if err != nil {
			return Goal{}, err
		}
		if GoalKind(kind) > GoalAll {
			return Goal{}, decodeErr("goal", fmt.Sprintf("unknown kind %d", kind))
		}
		n, err := r.u8()
		if err != nil {
			return Goal{}, err
		}
		custom := CustomGoal{Kind: GoalKind(kind), Parts: make([]Part, 0, n)}
		for i := 0; i < int(n); i++ {
			t, err := r.u8()
			if err != nil {
				return Goal{}, err
			}
			if ItemType(t) > MidWeapon {
				return Goal{}, decodeErr("goal", fmt.Sprintf("unknown item type %d", t))
			}
			copies, err := r.u8()
			if err != nil {
				return Goal{}, err
			}
			custom.Parts = append(custom.Parts, Part{Type: ItemType(t), Copies: int(copies)})
		}
		if err := r.done(); err != nil {
			return Goal{}, err
		}
		return Goal{Custom: &custom}, nil
	default:
		return Goal{}, decodeErr("goal", fmt.Sprintf("unknown goal tag %d", tag))
	}
}

// codeReader walks the decoded bytes with strict length accounting.
type codeReader struct {
	what string
	buf  []byte
	pos  int
}

func newCodeReader(what, s string) (*codeReader, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, decodeErr(what, "not valid base64")
	}
	r := &codeReader{what: what, buf: data}
	v, err := r.u8()
	if err != nil {
		return nil, err
	}
	if v != shareCodeVersion {
		return nil, decodeErr(what, fmt.Sprintf("unsupported version %d", v))
	}
	return r, nil
}

func (r *codeReader) u8() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, decodeErr(r.what, "truncated")
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *codeReader) u16() (int, error) {
	if r.pos+2 > len(r.buf) {
		return 0, decodeErr(r.what, "truncated")
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return int(v), nil
}

func (r *codeReader) done() error {
	if r.pos != len(r.buf) {
		return decodeErr(r.what, "trailing data")
	}
	return nil
}
