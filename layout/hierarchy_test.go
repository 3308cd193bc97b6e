package layout

import (
	"math"
	"testing"

	"github.com/tsawler/linea/model"
)

// makeRun creates a text run for analyzer tests
func makeRun(text string, fontSize float64, page int, y float64) model.TextRun {
	return model.TextRun{
		Text:     text,
		FontSize: fontSize,
		Page:     page,
		Y:        y,
	}
}

func TestNewFontHierarchyAnalyzer(t *testing.T) {
	analyzer := NewFontHierarchyAnalyzer()
	if analyzer == nil {
		t.Fatal("NewFontHierarchyAnalyzer returned nil")
	}
}

func TestNewFontHierarchyAnalyzerWithConfig(t *testing.T) {
	config := HierarchyConfig{MinFontSize: 6, MaxFontSize: 96}
	analyzer := NewFontHierarchyAnalyzerWithConfig(config)
	if analyzer == nil {
		t.Fatal("NewFontHierarchyAnalyzerWithConfig returned nil")
	}
	if analyzer.config.MinFontSize != 6 {
		t.Errorf("Expected MinFontSize=6, got %v", analyzer.config.MinFontSize)
	}
}

func TestDefaultHierarchyConfig(t *testing.T) {
	config := DefaultHierarchyConfig()

	if config.MinFontSize != 8 {
		t.Errorf("Expected MinFontSize=8, got %v", config.MinFontSize)
	}
	if config.MaxFontSize != 72 {
		t.Errorf("Expected MaxFontSize=72, got %v", config.MaxFontSize)
	}
}

func TestAnalyzeRanksSizes(t *testing.T) {
	analyzer := NewFontHierarchyAnalyzer()
	runs := []model.TextRun{
		makeRun("Understanding AI", 24, 1, 100),
		makeRun("Introduction", 18, 1, 200),
		makeRun("What is AI?", 14, 2, 120),
		makeRun("History of AI", 12, 2, 300),
		makeRun("Some body text about the field.", 10, 2, 340),
	}

	profile := analyzer.Analyze(runs)

	tests := []struct {
		size     float64
		expected model.Level
	}{
		{24, model.LevelTitle},
		{18, model.LevelH1},
		{14, model.LevelH2},
		{12, model.LevelH3},
		{10, model.LevelBody},
	}
	for _, tt := range tests {
		if got := profile.LevelFor(tt.size); got != tt.expected {
			t.Errorf("LevelFor(%v) = %v, want %v", tt.size, got, tt.expected)
		}
	}

	sizes := profile.Sizes()
	want := []float64{24, 18, 14, 12, 10}
	if len(sizes) != len(want) {
		t.Fatalf("Sizes() returned %d sizes, want %d", len(sizes), len(want))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("Sizes()[%d] = %v, want %v", i, sizes[i], want[i])
		}
	}
}

func TestAnalyzeTwoSizes(t *testing.T) {
	analyzer := NewFontHierarchyAnalyzer()
	runs := []model.TextRun{
		makeRun("Report Title", 20, 1, 80),
		makeRun("Body paragraph text.", 12, 1, 200),
	}

	profile := analyzer.Analyze(runs)

	if got := profile.LevelFor(20); got != model.LevelTitle {
		t.Errorf("LevelFor(20) = %v, want Title", got)
	}
	if got := profile.LevelFor(12); got != model.LevelH1 {
		t.Errorf("LevelFor(12) = %v, want H1", got)
	}
	if _, ok := profile.SizeFor(model.LevelH2); ok {
		t.Error("two-size document should not assign H2")
	}
	if _, ok := profile.SizeFor(model.LevelH3); ok {
		t.Error("two-size document should not assign H3")
	}
}

func TestAnalyzeNoRuns(t *testing.T) {
	analyzer := NewFontHierarchyAnalyzer()

	profile := analyzer.Analyze(nil)

	if profile == nil {
		t.Fatal("Analyze(nil) returned nil profile")
	}
	if !profile.IsEmpty() {
		t.Error("profile for no runs should be empty")
	}
	if got := profile.LevelFor(12); got != model.LevelBody {
		t.Errorf("empty profile LevelFor(12) = %v, want Body", got)
	}
}

func TestAnalyzeIgnoresInvalidSizes(t *testing.T) {
	analyzer := NewFontHierarchyAnalyzer()
	runs := []model.TextRun{
		makeRun("Title", 24, 1, 50),
		makeRun("Body", 12, 1, 100),
		makeRun("bad NaN", math.NaN(), 1, 110),
		makeRun("bad zero", 0, 1, 120),
		makeRun("bad negative", -6, 1, 130),
		makeRun("tiny footnote", 4, 1, 140),
		makeRun("huge banner", 100, 1, 150),
	}

	profile := analyzer.Analyze(runs)

	if profile.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", profile.Len())
	}
	if got := profile.LevelFor(24); got != model.LevelTitle {
		t.Errorf("LevelFor(24) = %v, want Title", got)
	}
	if got := profile.LevelFor(4); got != model.LevelBody {
		t.Errorf("LevelFor(4) = %v, want Body", got)
	}
	if got := profile.LevelFor(100); got != model.LevelBody {
		t.Errorf("LevelFor(100) = %v, want Body", got)
	}
}

func TestAnalyzeDuplicateSizes(t *testing.T) {
	analyzer := NewFontHierarchyAnalyzer()
	runs := []model.TextRun{
		makeRun("Chapter One", 18, 1, 50),
		makeRun("Chapter Two", 18, 3, 50),
		makeRun("Chapter Three", 18, 5, 50),
		makeRun("Body", 11, 1, 100),
	}

	profile := analyzer.Analyze(runs)

	if profile.Len() != 2 {
		t.Errorf("Len() = %d, want 2 distinct sizes", profile.Len())
	}
	if got := profile.LevelFor(18); got != model.LevelTitle {
		t.Errorf("LevelFor(18) = %v, want Title", got)
	}
}

func TestAnalyzeCustomWindow(t *testing.T) {
	config := HierarchyConfig{MinFontSize: 4, MaxFontSize: 120}
	analyzer := NewFontHierarchyAnalyzerWithConfig(config)
	runs := []model.TextRun{
		makeRun("Poster Headline", 100, 1, 40),
		makeRun("fine print", 5, 1, 700),
	}

	profile := analyzer.Analyze(runs)

	if got := profile.LevelFor(100); got != model.LevelTitle {
		t.Errorf("LevelFor(100) = %v, want Title with widened window", got)
	}
	if got := profile.LevelFor(5); got != model.LevelH1 {
		t.Errorf("LevelFor(5) = %v, want H1 with widened window", got)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	analyzer := NewFontHierarchyAnalyzer()
	runs := []model.TextRun{
		makeRun("A", 24, 1, 10),
		makeRun("B", 18, 1, 20),
		makeRun("C", 14, 1, 30),
		makeRun("D", 12, 1, 40),
	}

	first := analyzer.Analyze(runs)
	second := analyzer.Analyze(runs)

	firstSizes := first.Sizes()
	secondSizes := second.Sizes()
	if len(firstSizes) != len(secondSizes) {
		t.Fatalf("size counts differ: %d vs %d", len(firstSizes), len(secondSizes))
	}
	for i := range firstSizes {
		if firstSizes[i] != secondSizes[i] {
			t.Errorf("Sizes()[%d] differs across runs: %v vs %v", i, firstSizes[i], secondSizes[i])
		}
		if first.LevelFor(firstSizes[i]) != second.LevelFor(secondSizes[i]) {
			t.Errorf("LevelFor(%v) differs across runs", firstSizes[i])
		}
	}
}

func BenchmarkAnalyze(b *testing.B) {
	analyzer := NewFontHierarchyAnalyzer()
	runs := make([]model.TextRun, 0, 1000)
	sizes := []float64{24, 18, 14, 12, 10, 10, 10, 10}
	for i := 0; i < 1000; i++ {
		runs = append(runs, makeRun("Benchmark text run", sizes[i%len(sizes)], i/50+1, float64(i%50)*15))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analyzer.Analyze(runs)
	}
}
