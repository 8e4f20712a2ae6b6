package checksum

import "testing"

func TestSum(t *testing.T) {
	// sha256("")
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != want {
		t.Fatalf("Sum(nil) = %s, want %s", got, want)
	}
}

func TestETag(t *testing.T) {
	a := ETag([]byte("[]"))
	if len(a) != 34 || a[0] != '"' || a[33] != '"' {
		t.Fatalf("unexpected etag %s", a)
	}
	if a != ETag([]byte("[]")) {
		t.Fatal("etag not stable")
	}
	if a == ETag([]byte("[{}]")) {
		t.Fatal("different payloads share an etag")
	}
}
