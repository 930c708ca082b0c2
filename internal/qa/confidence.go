package qa

import "github.com/vteach/qa-backend/internal/domain/qamodel"

// confidenceScore is a retrieval-quality heuristic, not a model
// probability. Context richness dominates answer length, and generated
// answers are capped at 0.8 so only predefined responses reach 1.0.
func confidenceScore(contextDocs []qamodel.ContextDoc, answer string) float64 {
	if len(contextDocs) == 0 {
		return 0.0
	}
	contextScore := min(float64(len(contextDocs))/3, 1.0)
	answerLengthScore := min(float64(len(answer))/500, 1.0)
	return (contextScore*0.7 + answerLengthScore*0.3) * 0.8
}
