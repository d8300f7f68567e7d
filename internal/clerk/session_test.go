package clerk

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique/internal/catalog"
	"boutique/internal/models"
	"boutique/internal/orders"
	"boutique/internal/retrieval"
	"boutique/internal/store"
	"boutique/internal/storefront"
)

type fakeProvider struct {
	mu     sync.Mutex
	bodies []io.ReadCloser
	err    error
}

func (f *fakeProvider) StreamChat(ctx context.Context, messages []models.Message) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.bodies[0]
	f.bodies = f.bodies[1:]
	return b, nil
}

func replyBody(fragments ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(sse(fragments...)))
}

func newTestSession(t *testing.T, prov *fakeProvider) (*Session, *storefront.State, *store.MemStore) {
	t.Helper()
	st := store.NewMem()
	require.NoError(t, catalog.Seed(context.Background(), st))
	front := storefront.New()
	sess := NewSession("s1", Deps{
		Provider:           prov,
		Pipeline:           retrieval.New(st, catalog.Categories(), retrieval.Options{}),
		Catalog:            st,
		Orders:             orders.NewService(st, "", time.Second),
		Front:              front,
		MaxDiscountPercent: 25,
	})
	return sess, front, st
}

func TestSendStreamsIntoTranscript(t *testing.T) {
	prov := &fakeProvider{bodies: []io.ReadCloser{replyBody("Hello ", "there!")}}
	sess, _, _ := newTestSession(t, prov)
	res, err := sess.Send(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", res.Rendered)
	tr := sess.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, models.RoleUser, tr[0].Role)
	assert.Equal(t, models.RoleAssistant, tr[1].Role)
	assert.Equal(t, "Hello there!", tr[1].Content)
}

func TestSendCartAddDefaultsColorAndSize(t *testing.T) {
	reply := "Added! ---ADD_TO_CART---\\n{\\\"productId\\\":\\\"3\\\"}\\n---END_ACTION---"
	prov := &fakeProvider{bodies: []io.ReadCloser{replyBody(reply)}}
	sess, front, _ := newTestSession(t, prov)
	res, err := sess.Send(context.Background(), "buy the oxfords", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CartAdds)
	snap := front.Snapshot()
	require.Len(t, snap.Cart, 1)
	// catalog item 3 lists Brown first and size 7 first
	assert.Equal(t, "3", snap.Cart[0].ProductID)
	assert.Equal(t, "Brown", snap.Cart[0].Color)
	assert.Equal(t, "7", snap.Cart[0].Size)
}

func TestSendUnknownProductSkipped(t *testing.T) {
	reply := "---ADD_TO_CART---\\n{\\\"productId\\\":\\\"999\\\"}\\n---END_ACTION---"
	prov := &fakeProvider{bodies: []io.ReadCloser{replyBody(reply)}}
	sess, front, _ := newTestSession(t, prov)
	res, err := sess.Send(context.Background(), "buy it", nil)
	require.NoError(t, err)
	assert.Zero(t, res.CartAdds)
	assert.Empty(t, front.Snapshot().Cart)
}

func TestSendSecondCouponReplacesFirst(t *testing.T) {
	reply := "---COUPON---\\n{\\\"code\\\":\\\"FIRST-10\\\",\\\"discount\\\":10}\\n---END_COUPON---" +
		"---COUPON---\\n{\\\"code\\\":\\\"SECOND-15\\\",\\\"discount\\\":15}\\n---END_COUPON---"
	prov := &fakeProvider{bodies: []io.ReadCloser{replyBody(reply)}}
	sess, front, _ := newTestSession(t, prov)
	res, err := sess.Send(context.Background(), "deal?", nil)
	require.NoError(t, err)
	require.NotNil(t, res.Coupon)
	assert.Equal(t, "SECOND-15", res.Coupon.Code)
	c := front.Coupon()
	require.NotNil(t, c)
	assert.Equal(t, "SECOND-15", c.Code)
	assert.Equal(t, 15.0, c.Discount)
}

func TestSendCouponBeyondCapRejected(t *testing.T) {
	reply := "---COUPON---\\n{\\\"code\\\":\\\"TOO-MUCH\\\",\\\"discount\\\":80}\\n---END_COUPON---"
	prov := &fakeProvider{bodies: []io.ReadCloser{replyBody(reply)}}
	sess, front, _ := newTestSession(t, prov)
	res, err := sess.Send(context.Background(), "gimme", nil)
	require.NoError(t, err)
	assert.Nil(t, res.Coupon)
	assert.Nil(t, front.Coupon())
}

func TestSendPlaceOrderCommits(t *testing.T) {
	reply := "---PLACE_ORDER---\\n{\\\"customer\\\":{\\\"name\\\":\\\"Ada\\\",\\\"email\\\":\\\"a@b.c\\\",\\\"phone\\\":\\\"555\\\",\\\"address\\\":\\\"1 Main\\\"},\\\"items\\\":[{\\\"productId\\\":\\\"9\\\",\\\"name\\\":\\\"Tailored Chinos\\\",\\\"price\\\":100,\\\"quantity\\\":1}],\\\"coupon\\\":{\\\"code\\\":\\\"X-20\\\",\\\"discount\\\":20}}\\n---END_ORDER---"
	prov := &fakeProvider{bodies: []io.ReadCloser{replyBody(reply)}}
	sess, _, st := newTestSession(t, prov)
	res, err := sess.Send(context.Background(), "order it", nil)
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Empty(t, res.Orders[0].Error)
	list, err := st.ListOrders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 80.0, list[0].Total)
}

func TestSendConnectivityFailureAppendsFallback(t *testing.T) {
	prov := &fakeProvider{err: io.ErrUnexpectedEOF}
	sess, _, _ := newTestSession(t, prov)
	_, err := sess.Send(context.Background(), "hi", nil)
	require.ErrorIs(t, err, ErrConnectivity)
	tr := sess.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, FallbackReply, tr[1].Content)

	// the conversation stays usable for the next attempt
	prov.err = nil
	prov.bodies = []io.ReadCloser{replyBody("back!")}
	res, err := sess.Send(context.Background(), "try again", nil)
	require.NoError(t, err)
	assert.Equal(t, "back!", res.Rendered)
}

type blockingProvider struct {
	opened chan struct{}
	body   io.ReadCloser
}

func (p *blockingProvider) StreamChat(ctx context.Context, messages []models.Message) (io.ReadCloser, error) {
	close(p.opened)
	return p.body, nil
}

func TestSendRefusesOverlappingTurn(t *testing.T) {
	pr, pw := io.Pipe()
	prov := &blockingProvider{opened: make(chan struct{}), body: pr}
	st := store.NewMem()
	require.NoError(t, catalog.Seed(context.Background(), st))
	sess := NewSession("s1", Deps{
		Provider: prov,
		Pipeline: retrieval.New(st, catalog.Categories(), retrieval.Options{}),
		Catalog:  st,
		Orders:   orders.NewService(st, "", time.Second),
		Front:    storefront.New(),
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = sess.Send(context.Background(), "first", nil)
	}()
	<-prov.opened

	_, err := sess.Send(context.Background(), "second", nil)
	require.ErrorIs(t, err, ErrTurnInFlight)

	_, _ = pw.Write([]byte("data: [DONE]\n"))
	pw.Close()
	<-done

	// refused send must not have touched the transcript
	for _, m := range sess.Transcript() {
		assert.NotEqual(t, "second", m.Content)
	}
}
