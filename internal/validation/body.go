package validation

import "strings"

// tokensPerWord approximates sub-word tokenization: one token per 0.75 words.
const tokensPerWord = 0.75

// AnalyzeBody returns size warnings for the document body. Body size is a
// portability concern, so it never produces errors.
func (v *Validator) AnalyzeBody(body string) []Diagnostic {
	t := v.registry.thresholds
	var res Result

	if lines := CountLines(body); t.BodyMaxLines > 0 && lines > t.BodyMaxLines {
		res.addWarning("", "SKILL.md body is %d lines; consider moving content to references/", lines)
	}
	if tokens := EstimateTokens(body); t.BodyMaxTokens > 0 && tokens > t.BodyMaxTokens {
		res.addWarning("", "Estimated %d tokens in body; recommended maximum is %d", tokens, t.BodyMaxTokens)
	}

	return res.Warnings
}

// CountLines returns the number of non-blank lines in body.
func CountLines(body string) int {
	n := 0
	for line := range strings.Lines(body) {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// EstimateTokens returns the whitespace-delimited word count divided by 0.75,
// truncated.
func EstimateTokens(body string) int {
	return int(float64(len(strings.Fields(body))) / tokensPerWord)
}
