package export

import "testing"

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://recovered-media/out/video.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "recovered-media" || key != "out/video.mp4" {
		t.Fatalf("got bucket=%q key=%q", bucket, key)
	}
}

func TestParseS3URI_Malformed(t *testing.T) {
	cases := []string{"https://example.com/x", "s3://", "s3://bucket", "s3://bucket/"}
	for _, c := range cases {
		if _, _, err := ParseS3URI(c); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	if got := contentTypeFor("a/b/out.mp4"); got != "video/mp4" {
		t.Fatalf("got %q", got)
	}
	if got := contentTypeFor("out.bin"); got != "application/octet-stream" {
		t.Fatalf("got %q", got)
	}
}
