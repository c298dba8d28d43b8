package nav

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStartsAtRequestedTab(t *testing.T) {
	s := New(TabStudy)
	require.Equal(t, TabStudy, s.CurrentTab())
	_, ok := s.PendingDeepLink()
	require.False(t, ok)
}

func TestNewFallsBackToHomeForInvalidTab(t *testing.T) {
	s := New(Tab(42))
	require.Equal(t, TabHome, s.CurrentTab())
}

func TestSetCurrentTabLastWriteWins(t *testing.T) {
	sequences := [][]Tab{
		{TabMessages},
		{TabMessages, TabHome},
		{TabProfile, TabProfile, TabStudy},
		{TabPenpals, TabMessages, TabStudy, TabProfile, TabHome, TabPenpals},
	}
	for _, seq := range sequences {
		s := New(TabHome)
		for _, tab := range seq {
			s.SetCurrentTab(tab)
		}
		require.Equal(t, seq[len(seq)-1], s.CurrentTab(), "sequence %v", seq)
	}
}

func TestSetCurrentTabIgnoresInvalidValues(t *testing.T) {
	s := New(TabPenpals)
	s.SetCurrentTab(Tab(-1))
	s.SetCurrentTab(Tab(99))
	require.Equal(t, TabPenpals, s.CurrentTab())
}

func TestConsumePendingDeepLinkIsAtMostOnce(t *testing.T) {
	s := New(TabHome)
	s.SetPendingDeepLink("msg-7")

	id, ok := s.ConsumePendingDeepLink()
	require.True(t, ok)
	require.Equal(t, "msg-7", id)

	id, ok = s.ConsumePendingDeepLink()
	require.False(t, ok)
	require.Empty(t, id)
}

func TestConsumeWithoutPendingReturnsNone(t *testing.T) {
	s := New(TabHome)
	id, ok := s.ConsumePendingDeepLink()
	require.False(t, ok)
	require.Empty(t, id)
	id, ok = s.ConsumePendingDeepLink()
	require.False(t, ok)
	require.Empty(t, id)
}

func TestSetPendingDeepLinkBlankClears(t *testing.T) {
	s := New(TabHome)
	s.SetPendingDeepLink("msg-1")
	s.SetPendingDeepLink("   ")
	_, ok := s.PendingDeepLink()
	require.False(t, ok)

	s.SetPendingDeepLink("msg-2")
	s.ClearPendingDeepLink()
	_, ok = s.PendingDeepLink()
	require.False(t, ok)
}

func TestMessagesDeepLinkScenario(t *testing.T) {
	s := New(TabHome)
	require.Equal(t, Snapshot{CurrentTab: TabHome}, s.Snapshot())

	s.SetCurrentTab(TabMessages)
	require.Equal(t, Snapshot{CurrentTab: TabMessages}, s.Snapshot())

	s.SetPendingDeepLink("msg-42")
	require.Equal(t, Snapshot{CurrentTab: TabMessages, PendingDeepLinkID: "msg-42"}, s.Snapshot())

	id, ok := s.ConsumePendingDeepLink()
	require.True(t, ok)
	require.Equal(t, "msg-42", id)
	require.Equal(t, Snapshot{CurrentTab: TabMessages}, s.Snapshot())

	_, ok = s.ConsumePendingDeepLink()
	require.False(t, ok)
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s := New(TabHome)
	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.SetCurrentTab(TabMessages)
	s.SetCurrentTab(TabMessages) // no-op, not published
	s.SetPendingDeepLink("msg-1")
	s.ConsumePendingDeepLink()
	s.ConsumePendingDeepLink() // nothing pending, not published

	require.Len(t, changes, 3)
	require.True(t, changes[0].TabChanged())
	require.Equal(t, TabHome, changes[0].Previous.CurrentTab)
	require.Equal(t, TabMessages, changes[0].Current.CurrentTab)
	require.True(t, changes[1].DeepLinkChanged())
	require.Equal(t, "msg-1", changes[1].Current.PendingDeepLinkID)
	require.True(t, changes[2].DeepLinkChanged())
	require.False(t, changes[2].Current.HasPendingDeepLink())

	unsubscribe()
	unsubscribe()
	s.SetCurrentTab(TabStudy)
	require.Len(t, changes, 3)
}

func TestListenersRunInRegistrationOrderAndMayReadState(t *testing.T) {
	s := New(TabHome)
	var order []string
	s.Subscribe(func(Change) {
		order = append(order, "first:"+s.CurrentTab().String())
	})
	s.Subscribe(func(Change) {
		order = append(order, "second:"+s.CurrentTab().String())
	})
	s.SetCurrentTab(TabProfile)
	require.Equal(t, []string{"first:profile", "second:profile"}, order)
}

func TestListenerMayConsumeDuringNotification(t *testing.T) {
	s := New(TabMessages)
	var got []string
	s.Subscribe(func(c Change) {
		if c.Current.HasPendingDeepLink() {
			if id, ok := s.ConsumePendingDeepLink(); ok {
				got = append(got, id)
			}
		}
	})
	s.SetPendingDeepLink("msg-9")
	require.Equal(t, []string{"msg-9"}, got)
	_, ok := s.PendingDeepLink()
	require.False(t, ok)
}

func TestConcurrentConsumeDeliversOnce(t *testing.T) {
	s := New(TabMessages)
	s.SetPendingDeepLink("msg-race")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		delivered int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.ConsumePendingDeepLink(); ok {
				mu.Lock()
				delivered++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, delivered)
}
