package qa

import "strings"

type predefinedResponse struct {
	pattern string
	answer  string
}

// predefinedResponses is checked in order against the normalized question;
// the first pattern contained in the question wins.
var predefinedResponses = []predefinedResponse{
	{
		pattern: "what is your name?",
		answer:  "I am the virtual model of Dr. Terry Soule, a Professor of Computer Science at the University of Idaho, where I also hold adjunct positions in Neuroscience and in Bioinformatics and Computational Biology. While my 3D visual model is still in development, I'm here to assist you verbally with computer science-related topics.",
	},
	{
		pattern: "what do you do?",
		answer:  "I am the virtual model of Dr. Terry Soule, here to assist you with computer science-related topics. My 3D visual model is in progress, but right now, I am here to help you verbally.",
	},
	{
		pattern: "tell me about yourself?",
		answer:  "I am the virtual model of Dr. Terry Soule, here to assist you with computer science-related topics. My 3D visual model is in progress, but right now, I am here to help you verbally.",
	},
}

// matchPredefined returns the canned answer for identity-style questions.
// The question must already be normalized (lowercased, trimmed).
func matchPredefined(normalizedQuestion string) (string, bool) {
	for _, resp := range predefinedResponses {
		if strings.Contains(normalizedQuestion, resp.pattern) {
			return resp.answer, true
		}
	}
	return "", false
}
