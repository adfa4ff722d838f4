package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TAPAN-2835/Business-Website/contactform"
	"github.com/TAPAN-2835/Business-Website/internal/app/notify"
	"github.com/TAPAN-2835/Business-Website/internal/app/store"
	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
	"github.com/TAPAN-2835/Business-Website/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func newService(t *testing.T, st store.Messages, n *testutil.Notifier, opts Options) *Service {
	t.Helper()
	var notifier notify.Notifier
	if n != nil {
		notifier = n
	}
	svc := NewService(st, notifier, testutil.Site(t), testutil.Logger(), opts)
	svc.newID = func() string { return "msg-1" }
	return svc
}

func TestClean(t *testing.T) {
	svc := newService(t, store.NewMemory(), nil, Options{})

	tests := []struct {
		name string
		in   contactform.Values
		want contactform.Values
	}{
		{
			name: "markup kept as typed",
			in:   contactform.Values{"<b>Jane</b> Doe", "jane@example.com", "", "general", "Write &lt;div&gt; literally, a<b and c>d"},
			want: contactform.Values{"<b>Jane</b> Doe", "jane@example.com", "", "general", "Write &lt;div&gt; literally, a<b and c>d"},
		},
		{
			name: "unknown subject cleared",
			in:   contactform.Values{"Jane", "jane@example.com", "", "lottery", "Hello there friends"},
			want: contactform.Values{"Jane", "jane@example.com", "", "", "Hello there friends"},
		},
		{
			name: "nfc",
			in:   contactform.Values{"Jose\u0301", "", "", "", ""},
			want: contactform.Values{"Jos\u00e9", "", "", "", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, svc.Clean(tt.in)); diff != "" {
				t.Errorf("Clean mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func snapshot() contactform.Snapshot {
	return contactform.Snapshot{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Subject:   "quote",
		Message:   "We need a new website for our bakery.",
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAccept(t *testing.T) {
	st := store.NewMemory()
	n := &testutil.Notifier{}
	svc := newService(t, st, n, Options{})
	ctx := testutil.Context(t)

	msg, err := svc.Accept(ctx, snapshot(), models.ChannelAPI)
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID != "msg-1" || !msg.Notified || msg.Channel != models.ChannelAPI {
		t.Errorf("accepted message = %+v", msg)
	}

	got, err := st.Get(ctx, "msg-1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(msg, got); diff != "" {
		t.Errorf("stored message mismatch (-want +got):\n%s", diff)
	}
	if len(n.Sent()) != 1 {
		t.Errorf("notifications = %d, want 1", len(n.Sent()))
	}
}

func TestAccept_NotifyFailureKeepsMessage(t *testing.T) {
	st := store.NewMemory()
	svc := newService(t, st, &testutil.Notifier{Err: errors.New("smtp down")}, Options{})
	ctx := testutil.Context(t)

	msg, err := svc.Accept(ctx, snapshot(), models.ChannelForm)
	if err != nil {
		t.Fatalf("Accept returned %v", err)
	}
	got, err := st.Get(ctx, msg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Notified || msg.Notified {
		t.Error("message marked notified after a failed send")
	}
}

type failingStore struct {
	store.Messages
	err error
}

func (f failingStore) Save(context.Context, models.ContactMessage) error { return f.err }

func TestAccept_StoreFailure(t *testing.T) {
	n := &testutil.Notifier{}
	svc := newService(t, failingStore{store.NewMemory(), errors.New("disk full")}, n, Options{})

	_, err := svc.Accept(testutil.Context(t), snapshot(), models.ChannelForm)
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(n.Sent()) != 0 {
		t.Error("notification sent for an unsaved message")
	}
}

func TestAccept_DelayHonoursContext(t *testing.T) {
	st := store.NewMemory()
	svc := newService(t, st, nil, Options{SubmitDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Accept(ctx, snapshot(), models.ChannelForm); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if msgs, _ := st.Recent(context.Background(), 10); len(msgs) != 0 {
		t.Errorf("stored %d messages after cancellation", len(msgs))
	}
}

func TestRejected_LogsFieldNamesOnly(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	svc := NewService(store.NewMemory(), nil, testutil.Site(t), logger, Options{})

	vs := contactform.Values{"", "not-an-email", "", "general", "secret message body"}
	svc.Rejected(models.ChannelForm, contactform.ValidateAll(vs))

	entries := logs.FilterMessage("contact message rejected").All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	got := entries[0].ContextMap()["fields"]
	if diff := cmp.Diff([]interface{}{"name", "email"}, got); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}
