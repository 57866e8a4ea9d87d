package lists

import (
	"reflect"
	"testing"
	"time"

	"github.com/vanderheijden86/dsv/pkg/model"
)

func messages(l LinkedList) []string {
	var out []string
	for _, e := range l.Entries() {
		out = append(out, e.Message)
	}
	return out
}

func TestLinkedList_Seed(t *testing.T) {
	l := NewLinkedList(SeedEntries()...)
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	want := []string{"System startup", "High CPU usage", "Connection failed"}
	if got := messages(l); !reflect.DeepEqual(got, want) {
		t.Errorf("messages = %v, want %v", got, want)
	}
	for _, e := range l.Entries() {
		if err := e.Validate(); err != nil {
			t.Errorf("seed entry invalid: %v", err)
		}
	}
}

func TestLinkedList_InsertAtBeginning(t *testing.T) {
	l := NewLinkedList(SeedEntries()...)
	now := time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC)
	got := l.InsertAtBeginning(now)

	head, ok := got.Head()
	if !ok {
		t.Fatal("no head")
	}
	if head.ID != 4 || head.Message != NewEntryMessage || head.Severity != model.SeverityInfo {
		t.Errorf("head = %+v", head)
	}
	if !head.Timestamp.Equal(now.Truncate(time.Second)) {
		t.Errorf("timestamp = %v", head.Timestamp)
	}
	if l.Len() != 3 || got.Len() != 4 {
		t.Errorf("lengths = %d, %d", l.Len(), got.Len())
	}
	if next := got.InsertAtBeginning(now); next.Entries()[0].ID != 5 {
		t.Errorf("ids should keep increasing, got %d", next.Entries()[0].ID)
	}
}

func TestLinkedList_DeleteFirst(t *testing.T) {
	l := NewLinkedList(SeedEntries()...).DeleteFirst()
	if got := messages(l); !reflect.DeepEqual(got, []string{"High CPU usage", "Connection failed"}) {
		t.Errorf("messages = %v", got)
	}
	empty := NewLinkedList().DeleteFirst()
	if empty.Len() != 0 {
		t.Errorf("empty DeleteFirst Len() = %d", empty.Len())
	}
	if _, ok := empty.Head(); ok {
		t.Error("empty list has a head")
	}
}

func TestLinkedList_ReverseAndSort(t *testing.T) {
	l := NewLinkedList(SeedEntries()...)
	rev := l.Reverse()
	if got := messages(rev); !reflect.DeepEqual(got, []string{"Connection failed", "High CPU usage", "System startup"}) {
		t.Errorf("reversed = %v", got)
	}
	if got := messages(l); got[0] != "System startup" {
		t.Errorf("Reverse mutated the receiver: %v", got)
	}
	sorted := rev.SortByTimestamp()
	if got := messages(sorted); !reflect.DeepEqual(got, messages(l)) {
		t.Errorf("sorted = %v", got)
	}
	if sorted.InsertAtBeginning(time.Now()).Entries()[0].ID != 4 {
		t.Error("sort lost the id counter")
	}
}

func TestStack(t *testing.T) {
	s := SeedStack()
	if got := s.Items(); !reflect.DeepEqual(got, []string{"Data 3", "Data 2", "Data 1"}) {
		t.Fatalf("seed = %v", got)
	}
	s = s.Push()
	if top, _ := s.Peek(); top != "Data 4" {
		t.Errorf("top after push = %q", top)
	}
	s = s.Pop().Pop()
	if got := s.Items(); !reflect.DeepEqual(got, []string{"Data 2", "Data 1"}) {
		t.Errorf("after pops = %v", got)
	}
	empty := Stack{}.Pop()
	if empty.Len() != 0 {
		t.Error("pop on empty changed length")
	}
	if _, ok := empty.Peek(); ok {
		t.Error("empty stack has a top")
	}
}

func TestQueue(t *testing.T) {
	q := SeedQueue()
	if got := q.Items(); !reflect.DeepEqual(got, []string{"Item 1", "Item 2", "Item 3"}) {
		t.Fatalf("seed = %v", got)
	}
	q2 := q.Enqueue()
	if got := q2.Items(); got[len(got)-1] != "Item 4" {
		t.Errorf("rear after enqueue = %q", got[len(got)-1])
	}
	if q.Len() != 3 {
		t.Errorf("Enqueue mutated receiver")
	}
	q3 := q2.Dequeue()
	if front, _ := q3.Front(); front != "Item 2" {
		t.Errorf("front after dequeue = %q", front)
	}
	if (Queue{}).Dequeue().Len() != 0 {
		t.Error("dequeue on empty changed length")
	}
}
