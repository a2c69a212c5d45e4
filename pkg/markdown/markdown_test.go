package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasic(t *testing.T) {
	out := Render("# 标题\n\n一段 **加粗** 的文字")
	if !strings.Contains(out, "<h1") {
		t.Errorf("heading: got %q", out)
	}
	if !strings.Contains(out, "<strong>加粗</strong>") {
		t.Errorf("bold: got %q", out)
	}
}

func TestRenderGFMTable(t *testing.T) {
	out := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(out, "<table>") {
		t.Errorf("table: got %q", out)
	}
}

func TestRenderStripsScript(t *testing.T) {
	out := Render("正常文字\n\n<script>alert(1)</script>")
	if strings.Contains(out, "<script>") {
		t.Errorf("script survived sanitization: %q", out)
	}
	if !strings.Contains(out, "正常文字") {
		t.Errorf("text lost: %q", out)
	}
}

func TestRenderKeepsImages(t *testing.T) {
	out := Render("![图](https://example.com/a.png)")
	if !strings.Contains(out, "<img") {
		t.Errorf("image: got %q", out)
	}
}
