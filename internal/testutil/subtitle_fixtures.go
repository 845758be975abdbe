package testutil

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// SampleSRT is a two cue SubRip file, the second cue spanning two lines.
const SampleSRT = `1
00:00:01,000 --> 00:00:02,500
Hello there.

2
00:00:03,000 --> 00:00:05,250
General Kenobi!
You are a bold one.
`

// SampleVTT is the WebVTT rendition of SampleSRT.
const SampleVTT = `WEBVTT

00:00:01.000 --> 00:00:02.500
Hello there.

00:00:03.000 --> 00:00:05.250
General Kenobi!
You are a bold one.
`

// SampleSSA is a minimal Advanced SubStation Alpha script with a single dialogue line.
const SampleSSA = `[Script Info]
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:02.50,Default,,0,0,0,,Hello there.
`

// GzipBytes compresses data with gzip, failing the test on error.
func GzipBytes(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close failed: %v", err)
	}
	return buf.Bytes()
}

// ZipBytes builds a zip archive from name/content pairs, in the given order.
func ZipBytes(t testing.TB, files ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.Create(f[0])
		if err != nil {
			t.Fatalf("zip create %s failed: %v", f[0], err)
		}
		if _, err := fw.Write([]byte(f[1])); err != nil {
			t.Fatalf("zip write %s failed: %v", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close failed: %v", err)
	}
	return buf.Bytes()
}
