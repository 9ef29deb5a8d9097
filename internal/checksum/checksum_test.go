package checksum

import "testing"

func TestSumAndMatch(t *testing.T) {
	data := []byte(`{"nodes":[],"edges":[]}`)
	sum := Sum(data)
	if len(sum) != 64 {
		t.Fatalf("len(Sum) = %d, want 64", len(sum))
	}
	if !Match(sum, data) {
		t.Error("bare digest should match")
	}
	if !Match(`"`+sum+`"`, data) {
		t.Error("quoted digest should match")
	}
	if Match(sum, []byte("other")) {
		t.Error("digest of different data should not match")
	}
}
