package qa

import "regexp"

const codePlaceholder = "I've included a code example in my response which you can see below."

var codeBlockPattern = regexp.MustCompile("(?s)```\\w*\\n(.*?)```")

// NormalizeSpeech strips fenced code blocks out of an answer so the spoken
// version never reads code aloud. Returns the speech-friendly text and the
// captured code block bodies. The display answer keeps the blocks.
func NormalizeSpeech(answer string) (string, []string) {
	matches := codeBlockPattern.FindAllStringSubmatch(answer, -1)
	var blocks []string
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	speechText := codeBlockPattern.ReplaceAllString(answer, codePlaceholder)
	return speechText, blocks
}
