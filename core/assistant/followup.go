package assistant

import (
	"regexp"
	"strings"
)

// Continuation detection. A message only gets context prepended when it
// both looks like a follow-up and opens with a pronoun-style lead;
// ordinary questions that merely contain "it" pass through unchanged.
var (
	followUpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:what about|tell me more|more about|explain|and|also|what else|more details|give me more)`),
		regexp.MustCompile(`(?i)\b(?:it|that|this|he|she|they|them|him|her)\b`),
	}
	askMorePattern = regexp.MustCompile(`(?i)(?:tell me more|give me more|more details|more info)`)
	pronounLead    = regexp.MustCompile(`(?i)^(?:it|that|this|he|she|they|tell me more|give me more|more details|more info|what about|more about|and|also)\b`)
)

// ResolveFollowUp rewrites a continuation message using the previous
// assistant turn's metadata. Subject precedence: resolved map location,
// dictionary headword, first line of a lookup answer, first citation.
// With no history or no extractable subject the message passes through
// unchanged; resolution never fails loudly.
func ResolveFollowUp(message string, history []Turn) string {
	if len(history) == 0 {
		return message
	}

	lower := strings.ToLower(message)
	isFollowUp := false
	for _, p := range followUpPatterns {
		if p.MatchString(lower) {
			isFollowUp = true
			break
		}
	}
	if !isFollowUp {
		return message
	}

	last := lastAssistantTurn(history)
	if last == nil {
		return message
	}

	subject := followUpSubject(last)
	if subject == "" {
		return message
	}

	if askMorePattern.MatchString(lower) {
		return "Tell me more about " + subject
	}
	if pronounLead.MatchString(lower) {
		return subject + " " + message
	}
	return message
}

// lastAssistantTurn returns the most recent assistant turn, or nil.
func lastAssistantTurn(history []Turn) *Turn {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleAssistant {
			return &history[i]
		}
	}
	return nil
}

// followUpSubject extracts the contextual subject of an assistant turn.
func followUpSubject(turn *Turn) string {
	if m := turn.Metadata; m != nil {
		if m.Type == TypeMapLocation && m.Location != "" {
			return m.Location
		}
		if m.Headword != "" {
			return m.Headword
		}
		if m.PersonLookup || m.DefinitionLookup {
			if line, _, _ := strings.Cut(turn.Content, "\n"); line != "" {
				return strings.TrimSpace(line)
			}
		}
	}
	if len(turn.Citations) > 0 {
		return turn.Citations[0].Ref
	}
	return ""
}
