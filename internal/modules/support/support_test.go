package support

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/saveur/storefront/internal/database"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "order keyword", message: "My order never arrived", expected: replyOrderIssue},
		{name: "delivery keyword", message: "how long does delivery take?", expected: replyOrderIssue},
		{name: "refund keyword", message: "I want a REFUND", expected: replyRefund},
		{name: "money keyword", message: "when do I get my money back", expected: replyRefund},
		{name: "menu keyword", message: "Is the menu vegetarian friendly?", expected: replyMenuInquiry},
		{name: "food keyword", message: "the food was cold", expected: replyMenuInquiry},
		{name: "no keyword", message: "hello there", expected: replyDefault},
		{name: "empty message", message: "", expected: replyDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Respond(tt.message))
		})
	}
}

func TestRespond_OrderBeatsRefund(t *testing.T) {
	// "order" is checked before "refund" when both appear.
	assert.Equal(t, replyOrderIssue, Respond("I want a refund for my order"))
}

func TestQuickQuery(t *testing.T) {
	text, ok := QuickQuery("order-issue")
	require.True(t, ok)
	assert.Equal(t, "I have an issue with my order", text)

	text, ok = QuickQuery("refund")
	require.True(t, ok)
	assert.Equal(t, "I need to request a refund", text)

	_, ok = QuickQuery("complaints-hotline")
	assert.False(t, ok)
}

func TestQuickQueryFeedsResponder(t *testing.T) {
	// Every canned topic's message triggers a non-default reply.
	for _, topic := range []string{"order-issue", "refund", "menu-inquiry"} {
		text, ok := QuickQuery(topic)
		require.True(t, ok)
		assert.NotEqual(t, replyDefault, Respond(text), "topic %s", topic)
	}
}

func newRefundService(t *testing.T) *RefundService {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema("store"))
	require.NoError(t, err)

	return NewRefundService(db, zerolog.New(nil).Level(zerolog.Disabled))
}

func TestRefundRequest(t *testing.T) {
	svc := newRefundService(t)

	req, err := svc.Request("ORD1A2B3C4D5", "wrong-order", "Received someone else's biryani")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(req.Reference, "REF"))
	assert.Len(t, req.Reference, 12)
	assert.Equal(t, "pending", req.Status)
	assert.NotZero(t, req.ID)
	assert.Equal(t, "ORD1A2B3C4D5", req.OrderReference)
}

func TestRefundRequest_Invalid(t *testing.T) {
	svc := newRefundService(t)

	_, err := svc.Request("", "wrong-order", "")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Request("ORD1A2B3C4D5", "", "")
	assert.ErrorIs(t, err, ErrInvalid)
}
