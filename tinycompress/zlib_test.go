package tinycompress

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"
)

func inflate(t *testing.T, stream []byte) []byte {
	t.Helper()
	r, err := zlib.NewReader(bytes.NewReader(stream))
	if err != nil {
		t.Fatalf("zlib.NewReader: %v", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"small", 37},
		{"one block", maxBlock},
		{"two blocks", maxBlock + 10},
	}

	for _, tt := range tests {
		data := make([]byte, tt.size)
		for i := range data {
			data[i] = byte(i * 7)
		}
		got := inflate(t, Store(data))
		if !bytes.Equal(got, data) {
			t.Errorf("%s: inflated %d bytes, want %d", tt.name, len(got), len(data))
		}
	}
}

func TestWriterCollectsUntilClose(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 64)

	w.Write([]byte(`{"version":`))
	w.Write([]byte(`"x"}`))
	if buf.Len() != 0 {
		t.Fatalf("output before Close: %d bytes", buf.Len())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := string(inflate(t, buf.Bytes())); got != `{"version":"x"}` {
		t.Errorf("inflated %q", got)
	}

	if _, err := w.Write([]byte("late")); err != ErrClosed {
		t.Errorf("Write after Close: err=%v, want ErrClosed", err)
	}
}
