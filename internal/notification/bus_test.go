package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis-api/internal/models"
)

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []models.Toast
	err    error
}

func (n *recordingNotifier) Notify(toast models.Toast) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.toasts)
}

func TestBus_ShowAndListOrder(t *testing.T) {
	bus := NewBus(time.Minute, zerolog.Nop())

	bus.Show("第一条", models.ToastSeverityInfo)
	bus.Show("第二条", models.ToastSeveritySuccess)
	bus.Show("第三条", models.ToastSeverityError)

	toasts := bus.List()
	require.Len(t, toasts, 3)
	assert.Equal(t, "第一条", toasts[0].Message)
	assert.Equal(t, "第二条", toasts[1].Message)
	assert.Equal(t, "第三条", toasts[2].Message)
	assert.NotEqual(t, toasts[0].ID, toasts[1].ID)
}

func TestBus_UnknownSeverityDowngradedToInfo(t *testing.T) {
	bus := NewBus(time.Minute, zerolog.Nop())
	toast := bus.Show("msg", models.ToastSeverity("fatal"))
	assert.Equal(t, models.ToastSeverityInfo, toast.Severity)
}

func TestBus_ToastExpiresAfterTTL(t *testing.T) {
	bus := NewBus(20*time.Millisecond, zerolog.Nop())
	bus.Show("short lived", models.ToastSeverityInfo)
	require.Len(t, bus.List(), 1)

	assert.Eventually(t, func() bool {
		return len(bus.List()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestBus_NotifierFanOut(t *testing.T) {
	first := &recordingNotifier{}
	failing := &recordingNotifier{err: errors.New("downstream unavailable")}
	bus := NewBus(time.Minute, zerolog.Nop(), first, failing, nil)

	bus.Show("msg", models.ToastSeveritySuccess)
	bus.Show("msg2", models.ToastSeveritySuccess)

	// A failing notifier must not stop delivery or drop the toast.
	assert.Equal(t, 2, first.count())
	assert.Equal(t, 2, failing.count())
	assert.Len(t, bus.List(), 2)
}

func TestBus_ConcurrentShows(t *testing.T) {
	bus := NewBus(time.Minute, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Show("concurrent", models.ToastSeverityInfo)
		}()
	}
	wg.Wait()

	assert.Len(t, bus.List(), 50)
}
