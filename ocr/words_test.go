package ocr

import (
	"testing"

	"github.com/tsawler/tablescan/model"
)

func TestCleanWords(t *testing.T) {
	in := []model.WordBox{
		{Text: " Total ", Left: 1},
		{Text: ""},
		{Text: "  \t"},
		{Text: "42", Left: 2},
	}
	got := CleanWords(in)
	if len(got) != 2 {
		t.Fatalf("CleanWords() kept %d words, want 2", len(got))
	}
	if got[0].Text != "Total" || got[0].Left != 1 {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Text != "42" {
		t.Errorf("got[1] = %+v", got[1])
	}
	if in[0].Text != " Total " {
		t.Error("CleanWords modified its input")
	}
}

func TestCleanWords_Empty(t *testing.T) {
	if got := CleanWords(nil); len(got) != 0 {
		t.Errorf("CleanWords(nil) = %v", got)
	}
}

func TestFilterConfidence(t *testing.T) {
	in := []model.WordBox{
		{Text: "a", Confidence: 90},
		{Text: "b", Confidence: 30},
		{Text: "c", Confidence: 60},
	}
	got := FilterConfidence(in, 60)
	if len(got) != 2 || got[0].Text != "a" || got[1].Text != "c" {
		t.Errorf("FilterConfidence() = %+v", got)
	}
}

func TestPageSegModeValid(t *testing.T) {
	for _, m := range []PageSegMode{PSM_OSD_ONLY, DefaultPageSegMode, PSM_RAW_LINE} {
		if !m.Valid() {
			t.Errorf("mode %d should be valid", m)
		}
	}
	for _, m := range []PageSegMode{-1, 14} {
		if m.Valid() {
			t.Errorf("mode %d should be invalid", m)
		}
	}
	if DefaultPageSegMode != 6 {
		t.Errorf("DefaultPageSegMode = %d, want 6", DefaultPageSegMode)
	}
}
