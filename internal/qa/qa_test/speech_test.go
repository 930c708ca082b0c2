package qa_test

import (
	"strings"
	"testing"

	"github.com/vteach/qa-backend/internal/qa"
)

func TestNormalizeSpeech(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBlocks []string
		wantSpeech string
	}{
		{
			name:       "No_Code_Blocks",
			input:      "Recursion is a function calling itself.",
			wantBlocks: nil,
			wantSpeech: "Recursion is a function calling itself.",
		},
		{
			name:       "Single_Block_With_Language",
			input:      "Here is an example:\n```java\nint x = 1;\n```\nDone.",
			wantBlocks: []string{"int x = 1;\n"},
			wantSpeech: "Here is an example:\nI've included a code example in my response which you can see below.\nDone.",
		},
		{
			name:       "Block_Without_Language",
			input:      "Look:\n```\nx = 1\n```",
			wantBlocks: []string{"x = 1\n"},
			wantSpeech: "Look:\nI've included a code example in my response which you can see below.",
		},
		{
			name:  "Multiple_Blocks",
			input: "First:\n```python\nprint(1)\n```\nSecond:\n```python\nprint(2)\n```",
			wantBlocks: []string{
				"print(1)\n",
				"print(2)\n",
			},
			wantSpeech: "First:\nI've included a code example in my response which you can see below.\nSecond:\nI've included a code example in my response which you can see below.",
		},
		{
			name:       "Multiline_Block",
			input:      "```go\nfor i := 0; i < 3; i++ {\n\tfmt.Println(i)\n}\n```",
			wantBlocks: []string{"for i := 0; i < 3; i++ {\n\tfmt.Println(i)\n}\n"},
			wantSpeech: "I've included a code example in my response which you can see below.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speech, blocks := qa.NormalizeSpeech(tt.input)

			if speech != tt.wantSpeech {
				t.Errorf("speech got %q, want %q", speech, tt.wantSpeech)
			}
			if len(blocks) != len(tt.wantBlocks) {
				t.Fatalf("blocks got %d, want %d", len(blocks), len(tt.wantBlocks))
			}
			for i, want := range tt.wantBlocks {
				if blocks[i] != want {
					t.Errorf("blocks[%d] got %q, want %q", i, blocks[i], want)
				}
			}
			if strings.Contains(speech, "```") {
				t.Errorf("speech still contains a code fence: %q", speech)
			}
		})
	}
}
