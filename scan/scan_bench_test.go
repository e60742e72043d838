package scan

import (
	"bytes"
	"context"
	"math/rand"
	"testing"
)

func BenchmarkExtractor_Extract(b *testing.B) {
	ex := NewExtractor(DefaultField)
	line := []byte(`{"level":"info","ts":1714989102,"type":"request","path":"/v1/items","ms":12}`)

	b.ReportAllocs()
	b.SetBytes(int64(len(line)))
	for b.Loop() {
		_, _ = ex.Extract(line)
	}
}

func BenchmarkExtractor_Extract_Escaped(b *testing.B) {
	ex := NewExtractor(DefaultField)
	line := []byte(`{"type":"path\/with\/slashes and a \"quote\"","x":1}`)

	b.ReportAllocs()
	b.SetBytes(int64(len(line)))
	for b.Loop() {
		_, _ = ex.Extract(line)
	}
}

func BenchmarkScanner_ScanReaderAt(b *testing.B) {
	corpus := buildCorpus(rand.New(rand.NewSource(1)), 200_000)
	r := bytes.NewReader(corpus.data)

	s, err := New()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(corpus.data)))
	for b.Loop() {
		if _, err := s.ScanReaderAt(context.Background(), r, int64(len(corpus.data))); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanner_ScanReaderAt_SingleWorker(b *testing.B) {
	corpus := buildCorpus(rand.New(rand.NewSource(1)), 200_000)
	r := bytes.NewReader(corpus.data)

	s, err := New(WithWorkers(1))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(corpus.data)))
	for b.Loop() {
		if _, err := s.ScanReaderAt(context.Background(), r, int64(len(corpus.data))); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanner_ScanStream(b *testing.B) {
	corpus := buildCorpus(rand.New(rand.NewSource(1)), 200_000)

	s, err := New()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(corpus.data)))
	for b.Loop() {
		if _, err := s.ScanStream(context.Background(), bytes.NewReader(corpus.data)); err != nil {
			b.Fatal(err)
		}
	}
}
