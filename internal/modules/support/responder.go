// Package support implements the customer support features: the scripted
// chat responder and refund requests.
package support

import "strings"

// Reply texts for the scripted responder, keyed by topic
const (
	replyOrderIssue  = "I understand you have an issue with your order. Can you please provide your order number so I can help you?"
	replyRefund      = "I can help you with a refund request. Please provide your order details and the reason for the refund."
	replyMenuInquiry = "I'd be happy to help you with menu questions! What would you like to know about our dishes?"
	replyDefault     = "Thank you for your message. Our support team will get back to you shortly. Is there anything specific I can help you with right now?"
)

// quickQueries maps the chat UI's canned topics to the message sent on the
// customer's behalf
var quickQueries = map[string]string{
	"order-issue":  "I have an issue with my order",
	"refund":       "I need to request a refund",
	"menu-inquiry": "I have a question about the menu",
}

// Respond produces the scripted reply for a customer message. Keyword
// matching is deliberately simple: this is a canned responder, not an
// understanding one.
func Respond(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "order") || strings.Contains(lower, "delivery"):
		return replyOrderIssue
	case strings.Contains(lower, "refund") || strings.Contains(lower, "money"):
		return replyRefund
	case strings.Contains(lower, "menu") || strings.Contains(lower, "food"):
		return replyMenuInquiry
	default:
		return replyDefault
	}
}

// QuickQuery resolves a canned topic to its customer message.
// Returns false for unknown topics.
func QuickQuery(topic string) (string, bool) {
	text, ok := quickQueries[topic]
	return text, ok
}
