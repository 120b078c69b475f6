// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

// Sampling settings for the completion request.
const (
	temperature = 0.2
	maxTokens   = 3000
)

// userPrefix precedes the transcript in the user message.
const userPrefix = "Analyze this meeting transcript:\n\n"

// systemPrompt instructs the model to return the five-field minutes object.
const systemPrompt = `You are an intelligent assistant that analyzes conversations and generates a structured summary in JSON format. Your goal is to extract the most important information, focusing on clarity and factual accuracy based on the provided transcript.

Required JSON structure:
{
  "summary": "A concise, 2-4 sentence summary of the entire conversation's purpose and flow.",
  "participants": ["Name 1 (Role, if specified)", "Name 2 (Role, if specified)"],
  "discussion_points": [
    "A key topic or question that was discussed.",
    "Another significant point of discussion."
  ],
  "outcomes_or_decisions": [
    "Any final decisions, conclusions, or results from the conversation."
  ],
  "next_steps": [
    "Any explicit mentions of future actions or follow-ups."
  ]
}

Rules:
- ALWAYS output a valid JSON object.
- If a section has no relevant information (e.g., no decisions were made), use an empty list [].
- Extract participant names and their roles if mentioned (e.g., "Cate (Material Science)").
- Keep summaries and points concise and directly from the transcript.
- Do not invent or infer information not present in the text. Focus on what was actually said.`

// SystemPrompt returns the fixed system instruction sent with every request.
func SystemPrompt() string { return systemPrompt }

// UserMessage builds the user message embedding transcript verbatim.
func UserMessage(transcript string) string {
	return userPrefix + transcript
}
