package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/linea/model"
)

// makeTestProfile builds the five-level profile used across classifier tests
func makeTestProfile() *model.FontProfile {
	return model.NewFontProfile(map[float64]model.Level{
		24: model.LevelTitle,
		18: model.LevelH1,
		14: model.LevelH2,
		12: model.LevelH3,
		10: model.LevelBody,
	})
}

func TestNewHeadingClassifier(t *testing.T) {
	classifier := NewHeadingClassifier()
	if classifier == nil {
		t.Fatal("NewHeadingClassifier returned nil")
	}
	if len(classifier.Rules()) == 0 {
		t.Error("Expected default rule chain to be populated")
	}
}

func TestNewHeadingClassifierWithConfig(t *testing.T) {
	config := DefaultClassifierConfig()
	config.MinHeadingLength = 5
	classifier := NewHeadingClassifierWithConfig(config)
	if classifier == nil {
		t.Fatal("NewHeadingClassifierWithConfig returned nil")
	}
	if classifier.config.MinHeadingLength != 5 {
		t.Errorf("Expected MinHeadingLength=5, got %d", classifier.config.MinHeadingLength)
	}
}

func TestDefaultClassifierConfig(t *testing.T) {
	config := DefaultClassifierConfig()

	if config.MinHeadingLength != 3 {
		t.Errorf("Expected MinHeadingLength=3, got %d", config.MinHeadingLength)
	}
	if config.MaxHeadingLength != 200 {
		t.Errorf("Expected MaxHeadingLength=200, got %d", config.MaxHeadingLength)
	}
	if config.MaxSymbolRatio != 0.5 {
		t.Errorf("Expected MaxSymbolRatio=0.5, got %v", config.MaxSymbolRatio)
	}
	if !config.RequireHeadingShape {
		t.Error("Expected RequireHeadingShape to default on")
	}
	if len(config.ExcludePatterns) == 0 {
		t.Error("Expected ExcludePatterns to be populated")
	}
}

func TestClassifyAcceptsHeading(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()
	run := model.TextRun{Text: "Introduction", FontSize: 18, Page: 2, Y: 144.5}

	candidate, ok := classifier.Classify(run, profile)
	if !ok {
		t.Fatal("Classify rejected a valid heading run")
	}
	if candidate.Level != model.LevelH1 {
		t.Errorf("Level = %v, want H1", candidate.Level)
	}
	if candidate.Text != "Introduction" {
		t.Errorf("Text = %q, want %q", candidate.Text, "Introduction")
	}
	if candidate.Page != 2 {
		t.Errorf("Page = %d, want 2", candidate.Page)
	}
	if candidate.Y != 144.5 {
		t.Errorf("Y = %v, want 144.5", candidate.Y)
	}
}

func TestClassifyTitleLevel(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()
	run := model.TextRun{Text: "Understanding Neural Networks", FontSize: 24, Page: 1, Y: 72}

	candidate, ok := classifier.Classify(run, profile)
	if !ok {
		t.Fatal("Classify rejected a title run")
	}
	if candidate.Level != model.LevelTitle {
		t.Errorf("Level = %v, want Title", candidate.Level)
	}
}

func TestClassifyRejectsBySize(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()

	tests := []struct {
		name string
		size float64
	}{
		{"body size", 10},
		{"unranked size", 11},
		{"zero size", 0},
		{"negative size", -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := model.TextRun{Text: "Valid Heading", FontSize: tt.size, Page: 1, Y: 100}
			if _, ok := classifier.Classify(run, profile); ok {
				t.Errorf("Classify accepted run with size %v", tt.size)
			}
		})
	}
}

func TestClassifyRejectsByText(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()

	tests := []struct {
		name string
		text string
	}{
		{"too short", "AI"},
		{"too long", strings.Repeat("A", 201)},
		{"page marker", "Page 7"},
		{"bare number", "42"},
		{"figure caption", "Figure 3: Model Architecture"},
		{"url", "www.example.com"},
		{"mostly symbols", "*** ### $$$"},
		{"sentence case body", "The model performs well on benchmarks"},
		{"acronym breaks title case", "Understanding AI"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := model.TextRun{Text: tt.text, FontSize: 18, Page: 1, Y: 100}
			if _, ok := classifier.Classify(run, profile); ok {
				t.Errorf("Classify accepted %q", tt.text)
			}
		})
	}
}

func TestClassifyAcceptsByShape(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()

	tests := []struct {
		name string
		text string
	}{
		{"title case", "Neural Network Basics"},
		{"all caps", "TABLE OF CONTENTS"},
		{"ends with colon", "In summary:"},
		{"ends with question mark", "What is machine learning?"},
		{"minimum length caps", "FAQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := model.TextRun{Text: tt.text, FontSize: 14, Page: 3, Y: 200}
			candidate, ok := classifier.Classify(run, profile)
			if !ok {
				t.Fatalf("Classify rejected %q", tt.text)
			}
			if candidate.Level != model.LevelH2 {
				t.Errorf("Level = %v, want H2", candidate.Level)
			}
		})
	}
}

func TestClassifyShapeOptional(t *testing.T) {
	config := DefaultClassifierConfig()
	config.RequireHeadingShape = false
	classifier := NewHeadingClassifierWithConfig(config)
	profile := makeTestProfile()

	run := model.TextRun{Text: "a lowercase heading set in large type", FontSize: 18, Page: 1, Y: 90}
	if _, ok := classifier.Classify(run, profile); !ok {
		t.Error("Classify should accept lowercase text when the shape rule is off")
	}
}

func TestClassifyRejectsMalformedRun(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()

	t.Run("zero page", func(t *testing.T) {
		run := model.TextRun{Text: "Valid Heading", FontSize: 18, Page: 0, Y: 100}
		if _, ok := classifier.Classify(run, profile); ok {
			t.Error("Classify accepted run with page 0")
		}
	})

	t.Run("negative page", func(t *testing.T) {
		run := model.TextRun{Text: "Valid Heading", FontSize: 18, Page: -1, Y: 100}
		if _, ok := classifier.Classify(run, profile); ok {
			t.Error("Classify accepted run with negative page")
		}
	})
}

func TestClassifyNilProfile(t *testing.T) {
	classifier := NewHeadingClassifier()

	run := model.TextRun{Text: "Valid Heading", FontSize: 18, Page: 1, Y: 100}
	if _, ok := classifier.Classify(run, nil); ok {
		t.Error("Classify should reject every run against a nil profile")
	}
}

func TestClassifyRuns(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()

	runs := []model.TextRun{
		{Text: "Understanding Neural Networks", FontSize: 24, Page: 1, Y: 72},
		{Text: "Some body text explaining the topic in detail.", FontSize: 10, Page: 1, Y: 120},
		{Text: "Introduction", FontSize: 18, Page: 1, Y: 200},
		{Text: "Page 2", FontSize: 18, Page: 2, Y: 20},
		{Text: "What is AI?", FontSize: 14, Page: 2, Y: 80},
	}

	candidates := classifier.ClassifyRuns(runs, profile)

	want := []struct {
		level model.Level
		text  string
	}{
		{model.LevelTitle, "Understanding Neural Networks"},
		{model.LevelH1, "Introduction"},
		{model.LevelH2, "What is AI?"},
	}
	if len(candidates) != len(want) {
		t.Fatalf("ClassifyRuns returned %d candidates, want %d", len(candidates), len(want))
	}
	for i, w := range want {
		if candidates[i].Level != w.level || candidates[i].Text != w.text {
			t.Errorf("candidate[%d] = (%v, %q), want (%v, %q)",
				i, candidates[i].Level, candidates[i].Text, w.level, w.text)
		}
	}
}

func TestClassifyStateless(t *testing.T) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()
	run := model.TextRun{Text: "Introduction", FontSize: 18, Page: 1, Y: 100}

	first, ok1 := classifier.Classify(run, profile)
	second, ok2 := classifier.Classify(run, profile)

	if ok1 != ok2 || first != second {
		t.Error("Classify should return identical results for identical input")
	}
}

func TestClassifierRulesCopy(t *testing.T) {
	classifier := NewHeadingClassifier()

	rules := classifier.Rules()
	rules[0] = Rule{Name: "clobbered"}

	if classifier.Rules()[0].Name == "clobbered" {
		t.Error("mutating the returned rule slice should not affect the classifier")
	}
}

func BenchmarkClassify(b *testing.B) {
	classifier := NewHeadingClassifier()
	profile := makeTestProfile()
	run := model.TextRun{Text: "Benchmark Heading Title", FontSize: 18, Page: 1, Y: 100}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		classifier.Classify(run, profile)
	}
}
