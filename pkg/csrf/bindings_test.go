package csrf_test

import (
	"context"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gflauder/PeerReviewCore/pkg/csrf"
	"github.com/gflauder/PeerReviewCore/pkg/events"
)

func TestBind(t *testing.T) {
	ctx := context.Background()
	bus := events.New()
	csrf.New().Bind(bus)

	sess := newSession("sid-bus")

	begin := &csrf.FormBeginPayload{Session: sess, Name: "comment"}
	require.NoError(t, bus.Trigger(ctx, events.FormBegin, begin))
	require.NotEmpty(t, begin.Markup)

	parts := regexp.MustCompile(`name="([a-f0-9]{32})" value="([A-Za-z0-9_-]+)"`).
		FindStringSubmatch(string(begin.Markup))
	require.Len(t, parts, 3)

	validate := &csrf.FormValidatePayload{
		Session: sess,
		Name:    "comment",
		Form:    url.Values{parts[1]: {parts[2]}},
	}
	require.NoError(t, bus.Trigger(ctx, events.FormValidate, validate))
	assert.True(t, validate.OK)

	t.Run("foreign payload rejected", func(t *testing.T) {
		err := bus.Trigger(ctx, events.FormBegin, "bogus")
		assert.ErrorIs(t, err, csrf.ErrInvalidPayload)
	})
}
