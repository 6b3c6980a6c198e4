package ai

// TestTypes defines the assessment categories the requirement extractor may
// suggest. The catalog itself is an open set; these are the labels the
// extraction prompt steers towards.
var TestTypes = []string{
	"Coding",
	"Cognitive",
	"Personality",
	"Communication",
	"Aptitude",
}
