package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/recommendit/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "experience_level": {
      "type": "string",
      "enum": ["junior", "mid", "senior"]
    },
    "test_types": {
      "type": "array",
      "items": {"type": "string"}
    },
    "duration_preference": {
      "type": "string",
      "enum": ["short", "medium", "long"]
    },
    "key_responsibilities": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["skills", "experience_level", "test_types", "duration_preference", "key_responsibilities"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Analyze the given job description and extract the key hiring requirements as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- skills: required technical and soft skills, lowercase, deduplicated.
- experience_level: one of junior, mid, senior.
- test_types: relevant assessment types drawn from: %s.
- duration_preference: short (under 30 min), medium (30-45 min), or long (over 45 min).
- key_responsibilities: the main responsibilities of the role, short phrases.
- Include only requirements that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "We are hiring a senior backend engineer. Strong Python and SQL required, good communication a plus. Candidates complete a 25 minute screening."
Output:
{
  "skills": ["python", "sql", "communication"],
  "experience_level": "senior",
  "test_types": ["Coding", "Communication"],
  "duration_preference": "short",
  "key_responsibilities": ["backend development"]
}`

// buildExtractionPrompt creates the system prompt with the known test types embedded.
func buildExtractionPrompt() string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		strings.Join(ai.TestTypes, ", "))
}
