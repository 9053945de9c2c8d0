package filter

import "testing"

func TestFindDivinationSectionID(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name: "basic toc",
			lines: []string{
				"# My Filter",
				"# [WELCOME] TABLE OF CONTENTS",
				"# [[0100]] Global overrides",
				"# [[4200]] Divination Cards",
			},
			want: "4200",
		},
		{
			name: "marker case insensitive with decoration",
			lines: []string{
				"#===[ Table Of Contents ]===#",
				"#   [[ 4200 ]]   Divination   Cards",
			},
			want: "4200",
		},
		{
			name:  "no marker",
			lines: []string{"# [[4200]] Divination Cards"},
			want:  "",
		},
		{
			name: "entry before marker is not a toc entry",
			lines: []string{
				"# [[4200]] Divination Cards",
				"# TABLE OF CONTENTS",
				"# [[0100]] Global overrides",
			},
			want: "",
		},
		{
			name: "scan stops at rule block start",
			lines: []string{
				"# TABLE OF CONTENTS",
				"Show",
				"# [[4200]] Divination Cards",
			},
			want: "",
		},
		{
			name: "title case insensitive",
			lines: []string{
				"# table of contents",
				"# [[4200]] DIVINATION CARDS",
			},
			want: "4200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDivinationSectionID(tt.lines); got != tt.want {
				t.Errorf("findDivinationSectionID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindSectionStartReturnsLastMatch(t *testing.T) {
	lines := []string{
		"# TABLE OF CONTENTS",
		"# [[4200]] Divination Cards", // TOC listing
		"# [[4300]] Unique Maps",
		"",
		"# [[4200]] Divination Cards", // real header
		"Show # $type->divination $tier->t1",
	}

	if got := findSectionStart(lines, "4200"); got != 4 {
		t.Errorf("findSectionStart() = %d, want 4 (last occurrence)", got)
	}
	if got := findSectionStart(lines, "9999"); got != -1 {
		t.Errorf("findSectionStart(missing id) = %d, want -1", got)
	}
}

func TestExtractSectionLines(t *testing.T) {
	lines := []string{
		"# [[4200]] Divination Cards",
		"Show # $type->divination $tier->t1",
		`	BaseType == "The Doctor"`,
		"",
		"# [[4300]] Unique Maps",
		"Show",
	}

	body := extractSectionLines(lines, 0)
	if len(body) != 3 {
		t.Fatalf("extractSectionLines() returned %d lines, want 3: %q", len(body), body)
	}
	if body[0] != lines[1] || body[2] != lines[3] {
		t.Errorf("extractSectionLines() = %q, want lines 1..3", body)
	}
}

func TestExtractSectionLinesEmptyBodies(t *testing.T) {
	// Header is the last line.
	if body := extractSectionLines([]string{"# [[4200]] Divination Cards"}, 0); len(body) != 0 {
		t.Errorf("header-at-EOF body = %q, want empty", body)
	}

	// Header immediately followed by another header.
	lines := []string{
		"# [[4200]] Divination Cards",
		"# [[4300]] Unique Maps",
	}
	if body := extractSectionLines(lines, 0); len(body) != 0 {
		t.Errorf("adjacent-headers body = %q, want empty", body)
	}

	// No following header runs to end of input.
	lines = []string{
		"# [[4200]] Divination Cards",
		"Show # $type->divination $tier->t5",
		`	BaseType == "The Hermit"`,
	}
	if body := extractSectionLines(lines, 0); len(body) != 2 {
		t.Errorf("tail body has %d lines, want 2", len(body))
	}
}
