package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/types"
)

func makeHits(n int) []*types.SearchHit {
	hits := make([]*types.SearchHit, 0, n)
	for i := 0; i < n; i++ {
		hits = append(hits, &types.SearchHit{ID: "bit-" + string(rune('a'+i)), Name: "Bit", Symbol: "BIT"})
	}
	return hits
}

func TestSearchOverlay_ShortQuery(t *testing.T) {
	fc := &fakeClient{}
	var views []SearchView
	s := NewSearchOverlay(context.Background(), fc, nil, time.Millisecond, zap.NewNop())
	s.OnChange(func(v SearchView) { views = append(views, v) })

	s.SetQuery("b")
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 0, fc.count("search"))
	v := s.View()
	assert.False(t, v.Visible)
	assert.Empty(t, v.Results)
	require.Len(t, views, 1)
	assert.Equal(t, "b", views[0].Query)
}

func TestSearchOverlay_DebounceKeepsNewest(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	fc := &fakeClient{
		search: func(ctx context.Context, q string) ([]*types.SearchHit, error) {
			mu.Lock()
			queries = append(queries, q)
			mu.Unlock()
			return makeHits(8), nil
		},
	}
	nav := &recordingNav{}
	s := NewSearchOverlay(context.Background(), fc, nav, 30*time.Millisecond, zap.NewNop())
	defer s.Close()

	for _, q := range []string{"bi", "bit", "bitc"} {
		s.SetQuery(q)
	}
	assert.True(t, s.View().Pending)

	require.Eventually(t, func() bool { return s.View().Visible }, time.Second, 5*time.Millisecond)
	v := s.View()
	assert.Equal(t, "bitc", v.Query)
	require.Len(t, v.Results, SearchMaxResults)
	for _, r := range v.Results {
		assert.Equal(t, "/crypto/"+r.ID, r.Href)
	}
	mu.Lock()
	assert.Equal(t, []string{"bitc"}, queries)
	mu.Unlock()

	s.Select(v.Results[0].ID)
	v = s.View()
	assert.Equal(t, "", v.Query)
	assert.False(t, v.Visible)
	assert.Empty(t, v.Results)
	assert.Equal(t, []string{"/crypto/bit-a"}, nav.Paths())
}

func TestSearchOverlay_StaleResultDropped(t *testing.T) {
	release := make(chan struct{})
	fc := &fakeClient{
		search: func(ctx context.Context, q string) ([]*types.SearchHit, error) {
			if q == "eth" {
				<-release
				return makeHits(1), nil
			}
			return nil, nil
		},
	}
	s := NewSearchOverlay(context.Background(), fc, nil, time.Millisecond, zap.NewNop())
	defer s.Close()

	s.SetQuery("eth")
	require.Eventually(t, func() bool { return fc.count("search") == 1 }, time.Second, time.Millisecond)
	s.SetQuery("x")
	close(release)

	time.Sleep(20 * time.Millisecond)
	v := s.View()
	assert.Equal(t, "x", v.Query)
	assert.False(t, v.Visible)
	assert.Empty(t, v.Results)
}

func TestSearchOverlay_FocusReshows(t *testing.T) {
	fc := &fakeClient{
		search: func(ctx context.Context, q string) ([]*types.SearchHit, error) {
			return makeHits(2), nil
		},
	}
	s := NewSearchOverlay(context.Background(), fc, nil, time.Millisecond, zap.NewNop())
	defer s.Close()

	s.Focus()
	assert.False(t, s.View().Visible)

	s.SetQuery("do")
	require.Eventually(t, func() bool { return s.View().Visible }, time.Second, time.Millisecond)

	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
	s.Focus()
	assert.True(t, s.View().Visible)
}

func TestSearchOverlay_ErrorKeepsResults(t *testing.T) {
	fail := false
	var mu sync.Mutex
	fc := &fakeClient{
		search: func(ctx context.Context, q string) ([]*types.SearchHit, error) {
			mu.Lock()
			defer mu.Unlock()
			if fail {
				return nil, errors.New("boom")
			}
			return makeHits(2), nil
		},
	}
	s := NewSearchOverlay(context.Background(), fc, nil, time.Millisecond, zap.NewNop())
	defer s.Close()

	s.SetQuery("sol")
	require.Eventually(t, func() bool { return s.View().Visible }, time.Second, time.Millisecond)

	mu.Lock()
	fail = true
	mu.Unlock()
	s.SetQuery("sola")
	require.Eventually(t, func() bool { return !s.View().Pending }, time.Second, time.Millisecond)
	assert.Len(t, s.View().Results, 2)
}

func TestSearchOverlay_EmitsInOrder(t *testing.T) {
	s := NewSearchOverlay(context.Background(), &fakeClient{}, nil, time.Millisecond, zap.NewNop())
	defer s.Close()

	var (
		mu       sync.Mutex
		first    = true
		inFlight int
		views    []SearchView
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	s.OnChange(func(v SearchView) {
		mu.Lock()
		inFlight++
		block := first
		first = false
		mu.Unlock()
		if block {
			close(entered)
			<-release
		}
		mu.Lock()
		inFlight--
		views = append(views, v)
		mu.Unlock()
	})

	done := make(chan struct{}, 2)
	go func() {
		s.SetQuery("a")
		done <- struct{}{}
	}()
	<-entered
	go func() {
		s.SetQuery("")
		done <- struct{}{}
	}()
	assert.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return inFlight > 1
	}, 50*time.Millisecond, 5*time.Millisecond)
	close(release)
	<-done
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, views, 2)
	assert.Equal(t, "", views[1].Query)
}
