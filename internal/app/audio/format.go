package audio

import (
	"fmt"
	"strconv"
	"strings"
)

// Format identifies a container/codec pair by its media type.
type Format struct {
	MimeType string
	Ext      string
}

// DefaultCandidates is the recording format priority list, most preferred first.
var DefaultCandidates = []Format{
	{MimeType: "audio/mp4", Ext: "m4a"},
	{MimeType: "audio/mpeg", Ext: "mp3"},
	{MimeType: "audio/ogg;codecs=opus", Ext: "ogg"},
	{MimeType: "audio/ogg", Ext: "ogg"},
	{MimeType: "audio/webm;codecs=opus", Ext: "webm"},
	{MimeType: "audio/webm", Ext: "webm"},
}

// CapabilityQuery reports whether a recording backend supports a media type.
type CapabilityQuery interface {
	Supported(mimeType string) bool
}

// CapabilityFunc adapts a plain function to a CapabilityQuery.
type CapabilityFunc func(mimeType string) bool

func (f CapabilityFunc) Supported(mimeType string) bool { return f(mimeType) }

// Negotiate returns the first candidate the backend supports. When nothing
// matches it falls back to webm, mirroring the last-resort recording format.
func Negotiate(query CapabilityQuery, candidates []Format) Format {
	for _, c := range candidates {
		if query.Supported(c.MimeType) {
			return c
		}
	}
	return Format{MimeType: "audio/webm", Ext: "webm"}
}

// IsOpusFamily reports whether the format needs conversion to linear PCM
// before submission. Opus payloads arrive in webm or ogg wrappers.
func (f Format) IsOpusFamily() bool {
	m := strings.ToLower(f.MimeType)
	return strings.Contains(m, "webm") || strings.Contains(m, "ogg") || strings.Contains(m, "opus")
}

const rawPCMPrefix = "audio/x-raw-float32"

// RawPCMFormat tags uncompressed float32 capture data with its stream layout.
func RawPCMFormat(sampleRate, channels int) Format {
	return Format{
		MimeType: fmt.Sprintf("%s;rate=%d;channels=%d", rawPCMPrefix, sampleRate, channels),
		Ext:      "raw",
	}
}

// IsRawPCM reports whether the payload is raw interleaved float32 samples.
func (f Format) IsRawPCM() bool {
	return strings.HasPrefix(f.MimeType, rawPCMPrefix)
}

// RawPCMParams extracts the sample rate and channel count from a raw PCM tag.
func (f Format) RawPCMParams() (sampleRate, channels int, ok bool) {
	if !f.IsRawPCM() {
		return 0, 0, false
	}
	for _, part := range strings.Split(f.MimeType, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, 0, false
		}
		switch key {
		case "rate":
			sampleRate = n
		case "channels":
			channels = n
		}
	}
	return sampleRate, channels, sampleRate > 0 && channels > 0
}

// FallbackExt picks a best-effort extension for payloads that could not be
// decoded and are packaged as-is.
func (f Format) FallbackExt() string {
	if strings.Contains(strings.ToLower(f.MimeType), "ogg") {
		return "ogg"
	}
	if f.Ext != "" {
		return f.Ext
	}
	return "webm"
}
