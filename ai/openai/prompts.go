package openai

import "fmt"

// System prompts steering the answer generator. The Indonesian variant is
// selected when the request language is "id"; everything else gets English.
const (
	systemPromptEN = "You are an AI assistant that helps analyze data and create reports. " +
		"Based on the provided context, give accurate and informative answers. " +
		"Answer in the same language as the question."

	systemPromptID = "Anda adalah asisten AI yang membantu menganalisis data dan membuat laporan. " +
		"Berdasarkan konteks yang diberikan, berikan jawaban yang akurat dan informatif. " +
		"Jika pertanyaan dalam bahasa Indonesia, jawab dalam bahasa Indonesia. " +
		"Jika dalam bahasa Inggris, jawab dalam bahasa Inggris."
)

// buildSystemPrompt selects the system prompt for the given language.
func buildSystemPrompt(language string) string {
	if language == "id" {
		return systemPromptID
	}
	return systemPromptEN
}

// buildUserPrompt combines the retrieved context and the user's question
// into a single grounded prompt.
func buildUserPrompt(docContext, query string) string {
	return fmt.Sprintf(
		"Context:\n%s\n\nQuestion: %s\n\nPlease provide a comprehensive answer based on the context provided.",
		docContext, query)
}
