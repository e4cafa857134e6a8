package core

import (
	"bytes"
	"sort"
	"sync"

	"samdtimer/tinycompress"
)

// Dictionary describes the firmware to the host: the message table and the
// board constants, as zlib-compressed JSON served in chunks by identify.
type Dictionary struct {
	mu            sync.Mutex
	reg           *CommandRegistry
	constants     map[string]interface{}
	version       string
	buildVersions string
	cached        []byte
	cachedCount   int // registry size when cached was built
}

func NewDictionary(reg *CommandRegistry) *Dictionary {
	return &Dictionary{
		reg:           reg,
		constants:     make(map[string]interface{}),
		version:       "samdtimer-0.1.0",
		buildVersions: "tinygo",
	}
}

var globalDictionary = NewDictionary(globalRegistry)

func GetGlobalDictionary() *Dictionary {
	return globalDictionary
}

// RegisterConstant publishes a board constant such as CLOCK_FREQ.
func RegisterConstant(name string, value interface{}) {
	globalDictionary.AddConstant(name, value)
}

// AddConstant sets a constant. value is a string or an integer type.
func (d *Dictionary) AddConstant(name string, value interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.constants[name] = value
	d.cached = nil
}

func (d *Dictionary) SetVersion(version, buildVersions string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version = version
	d.buildVersions = buildVersions
	d.cached = nil
}

// Bytes returns the compressed dictionary. It is rebuilt when messages or
// constants were added since the last call.
func (d *Dictionary) Bytes() []byte {
	// Read the registry before taking d.mu so the two locks are never nested.
	cmds := d.reg.All()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cached == nil || d.cachedCount != len(cmds) {
		raw := d.buildJSON(cmds)
		var buf bytes.Buffer
		w := tinycompress.NewWriter(&buf, len(raw))
		w.Write(raw)
		w.Close()
		d.cached = buf.Bytes()
		d.cachedCount = len(cmds)
		DebugPrintln("[DICT] " + itoa(len(raw)) + " bytes json, " + itoa(len(d.cached)) + " compressed")
	}
	return d.cached
}

// JSON returns the uncompressed dictionary.
func (d *Dictionary) JSON() []byte {
	cmds := d.reg.All()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buildJSON(cmds)
}

// Chunk returns up to count bytes of the compressed dictionary starting at
// offset. The result is a copy and is empty past the end.
func (d *Dictionary) Chunk(offset uint32, count uint8) []byte {
	data := d.Bytes()
	if offset >= uint32(len(data)) {
		return []byte{}
	}
	end := offset + uint32(count)
	if end > uint32(len(data)) {
		end = uint32(len(data))
	}
	chunk := make([]byte, end-offset)
	copy(chunk, data[offset:end])
	return chunk
}

func (d *Dictionary) buildJSON(cmds []*Command) []byte {
	out := make([]byte, 0, 1024)
	out = append(out, `{"version":`...)
	out = appendJSONString(out, d.version)
	out = append(out, `,"build_versions":`...)
	out = appendJSONString(out, d.buildVersions)

	out = append(out, `,"config":{`...)
	names := make([]string, 0, len(d.constants))
	for name := range d.constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		if i > 0 {
			out = append(out, ',')
		}
		out = appendJSONString(out, name)
		out = append(out, ':')
		if s, ok := d.constants[name].(string); ok {
			out = appendJSONString(out, s)
		} else {
			out = append(out, valueToString(d.constants[name])...)
		}
	}

	out = append(out, `},"commands":{`...)
	out = appendMessages(out, cmds, false)
	out = append(out, `},"responses":{`...)
	out = appendMessages(out, cmds, true)
	out = append(out, "}}"...)
	return out
}

func appendMessages(out []byte, cmds []*Command, responses bool) []byte {
	first := true
	for _, c := range cmds {
		if c.IsResponse() != responses {
			continue
		}
		if !first {
			out = append(out, ',')
		}
		first = false
		out = appendJSONString(out, c.Signature())
		out = append(out, ':')
		out = append(out, itoa(int(c.ID))...)
	}
	return out
}

func appendJSONString(out []byte, s string) []byte {
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			out = append(out, '\\', c)
		case c < 0x20:
			out = append(out, '\\', 'u', '0', '0', hexDigit(c>>4), hexDigit(c&0xF))
		default:
			out = append(out, c)
		}
	}
	return append(out, '"')
}

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'a' + v - 10
}
