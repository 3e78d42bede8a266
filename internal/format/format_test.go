package format

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic formatting",
			input:    `meta{name="Test"author="Author"}`,
			expected: `meta { name = "Test" author = "Author" }`,
		},
		{
			name: "already formatted stays same",
			input: `meta {
  name = "Test"
}
`,
			expected: `meta {
  name = "Test"
}
`,
		},
		{
			name:     "extra whitespace normalized",
			input:    `meta   {   name   =   "Test"   }`,
			expected: `meta { name = "Test" }`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "meta { name = \"Test\" }\n\n\n\npalette { base = \"#191724\" }",
			expected: "meta { name = \"Test\" }\n\npalette { base = \"#191724\" }",
		},
		{
			name:     "single blank line preserved",
			input:    "meta { name = \"Test\" }\n\npalette { base = \"#191724\" }",
			expected: "meta { name = \"Test\" }\n\npalette { base = \"#191724\" }",
		},
		{
			name:     "blank line after opening brace removed",
			input:    "palette {\n\n  base = \"#191724\"\n}",
			expected: "palette {\n  base = \"#191724\"\n}",
		},
		{
			name:     "blank line before closing brace removed",
			input:    "palette {\n  base = \"#191724\"\n\n}",
			expected: "palette {\n  base = \"#191724\"\n}",
		},
		{
			name:     "hex literals lower-cased",
			input:    "palette {\n  love = \"#EB6F92\"\n  pine = \"#31748F80\"\n  fg   = \"#FFF\"\n}",
			expected: "palette {\n  love = \"#eb6f92\"\n  pine = \"#31748f80\"\n  fg   = \"#fff\"\n}",
		},
		{
			name:     "non-color strings untouched",
			input:    "meta {\n  name = \"ABC\"\n  url  = \"#Anchor\"\n}",
			expected: "meta {\n  name = \"ABC\"\n  url  = \"#Anchor\"\n}",
		},
		{
			name: "gradient block aligned",
			input: `gradient "sunset" {
  from = "#EB6F92"
  to = palette.gold
  space = "lch"
  steps = 7
}
`,
			expected: `gradient "sunset" {
  from  = "#eb6f92"
  to    = palette.gold
  space = "lch"
  steps = 7
}
`,
		},
		{
			name: "function calls spaced",
			input: `palette {
  mid = mix(palette.a,"#FFFFFF",0.5,"lab")
}
`,
			expected: `palette {
  mid = mix(palette.a, "#ffffff", 0.5, "lab")
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Normalize line endings for comparison
			result = strings.TrimSuffix(result, "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("Format() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatInvalidHCL(t *testing.T) {
	// hclwrite.Format should handle partial/invalid HCL gracefully
	input := `gradient "a" { from = "#FFF"`
	got, err := Format(input)
	if err != nil {
		t.Errorf("Format() on incomplete HCL should not error, got: %v", err)
	}
	if !strings.Contains(got, `"#fff"`) {
		t.Errorf("Format() = %q, expected hex to be lower-cased", got)
	}
}
