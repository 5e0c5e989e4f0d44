package drip

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestFacadeParse 三个一次性入口产出相同结果
func TestFacadeParse(t *testing.T) {
	doc := `{"k": [1, "two", false]}`

	v1, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := ParseBytes([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	v3, err := ParseReader(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !v1.Equal(v2) || !v1.Equal(v3) {
		t.Error("facade entry points disagree")
	}
}

// TestParseFileOK 文件入口: 解析成功
func TestParseFileOK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"ok": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !v.GetBool("ok") {
		t.Error("ok should be true")
	}
}

// TestParseFileErrors 文件不存在 / 语法错误都走错误链
func TestParseFileErrors(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"a" 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ParseFile(path)
	if err == nil {
		t.Fatal("bad file should fail")
	}
	// 文件是可 seek 的，错误应带上下文窗口
	if !strings.Contains(err.Error(), "^") {
		t.Errorf("error should carry a caret context: %v", err)
	}
}

// TestAcquireReleaseParser 池化 Parser 的取还与复用
func TestAcquireReleaseParser(t *testing.T) {
	p := AcquireParser()
	v, err := p.ParseReader(strings.NewReader(`[1, 2]`))
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 2 {
		t.Error("wrong length")
	}
	ReleaseParser(p)
}
