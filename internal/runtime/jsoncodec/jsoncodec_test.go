package jsoncodec

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type snapshotPayload struct {
	Endpoint string    `json:"endpoint"`
	Seconds  int64     `json:"seconds_until_breach"`
	At       time.Time `json:"collected_at"`
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := snapshotPayload{Endpoint: "orders", Seconds: 80, At: time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	var out snapshotPayload
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if out.Endpoint != in.Endpoint || out.Seconds != in.Seconds || !out.At.Equal(in.At) {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestEncodeDecodeStreams(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, snapshotPayload{Endpoint: "billing"}); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if !strings.Contains(buf.String(), "billing") {
		t.Fatalf("expected encoded field, got %q", buf.String())
	}

	var out snapshotPayload
	if err := Decode(&buf, &out); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if out.Endpoint != "billing" {
		t.Fatalf("unexpected decoded value %q", out.Endpoint)
	}
}

func TestMarshalIndent(t *testing.T) {
	t.Parallel()

	data, err := MarshalIndent(map[string]int{"a": 1}, "", "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "\n") {
		t.Fatal("expected indented output")
	}
}
