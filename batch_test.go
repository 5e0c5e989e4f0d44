package drip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeDoc 写入临时 JSON 文件
func writeDoc(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestParseFilesConcurrent 并发解析多个文件，结果与路径对齐
func TestParseFilesConcurrent(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDoc(t, dir, "a.json", `{"id": 1}`),
		writeDoc(t, dir, "b.json", `[true, null]`),
		writeDoc(t, dir, "c.json", `"solo"`),
	}

	vals, err := ParseFiles(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("ParseFiles failed: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("got %d results, want 3", len(vals))
	}
	if vals[0].GetFloat64("id") != 1 {
		t.Error("a.json mismatch")
	}
	if !vals[1].IsArray() || vals[1].Len() != 2 {
		t.Error("b.json mismatch")
	}
	if vals[2].Str() != "solo" {
		t.Error("c.json mismatch")
	}
}

// TestParseFilesFirstError 首个错误导致整批失败，错误链保留类别
func TestParseFilesFirstError(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDoc(t, dir, "good.json", `{}`),
		writeDoc(t, dir, "bad.json", `{"a":`),
	}

	_, err := ParseFiles(context.Background(), paths, 2)
	if err == nil {
		t.Fatal("expected error")
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not *SyntaxError", err)
	}
	if se.Kind != KindUnexpectedEOF {
		t.Errorf("Kind = %v, want unexpected EOF", se.Kind)
	}
}

// TestBatchKeepsGoing Batch 模式: 坏文件不中断整批，其余照常解析
func TestBatchKeepsGoing(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDoc(t, dir, "good1.json", `1`),
		writeDoc(t, dir, "bad.json", `{"a" 1}`),
		writeDoc(t, dir, "good2.json", `2`),
	}

	b, err := NewBatch(2)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	vals, err := b.ParseFiles(context.Background(), paths)
	if err == nil {
		t.Fatal("expected first error to be reported")
	}
	if vals[0] == nil || vals[0].Float64() != 1 {
		t.Error("good1 should still parse")
	}
	if vals[1] != nil {
		t.Error("bad file should yield nil")
	}
	if vals[2] == nil || vals[2].Float64() != 2 {
		t.Error("good2 should still parse")
	}
}

// TestBatchReuse 同一 Batch 连续多轮
func TestBatchReuse(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "x.json", `{"n": 7}`)

	b, err := NewBatch(1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	for i := 0; i < 3; i++ {
		vals, err := b.ParseFiles(context.Background(), []string{path})
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		if vals[0].GetFloat64("n") != 7 {
			t.Fatalf("round %d: wrong value", i)
		}
	}
}

// TestParseFilesCanceled 已取消的 ctx 快速返回
func TestParseFilesCanceled(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "x.json", `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseFiles(ctx, []string{path}, 1)
	if err == nil {
		t.Fatal("expected context error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
