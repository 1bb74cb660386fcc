package middleware

import (
	"net/http"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"venues":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode reported failure")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if vals := gotHdr["X-Custom"]; len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("X-Custom = %v, want [a b]", vals)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	for _, bs := range [][]byte{nil, {}, {1, 2, 3}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decodePayload(%v) reported success", bs)
		}
	}
}

func TestDecodePayloadRejectsTruncatedHeader(t *testing.T) {
	payload, err := encodePayload(http.StatusOK, http.Header{"A": {"b"}}, []byte("body"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Cut into the header JSON region.
	if _, _, _, ok := decodePayload(payload[:10]); ok {
		t.Error("expected failure for truncated payload")
	}
}
