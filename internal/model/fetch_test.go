package model

import (
	"testing"
	"time"
)

func TestFetchState_ExactlyOneStatus(t *testing.T) {
	t.Parallel()

	states := []FetchState[int]{
		Loading[int](),
		Succeeded(42),
		Failed[int]("boom"),
	}

	for _, s := range states {
		n := 0
		for _, held := range []bool{s.IsLoading(), s.IsSuccess(), s.IsFailure()} {
			if held {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("state %v holds %d statuses, want 1", s.Status, n)
		}
	}
}

func TestFetchState_Payloads(t *testing.T) {
	t.Parallel()

	if got := Succeeded(7).Value; got != 7 {
		t.Fatalf("success value = %d, want 7", got)
	}
	if got := Failed[int]("nope").Err; got != "nope" {
		t.Fatalf("failure message = %q, want nope", got)
	}
	if got := StatusFailure.String(); got != "failure" {
		t.Fatalf("status string = %q, want failure", got)
	}
}

func TestDayOf_TruncatesToUTCDay(t *testing.T) {
	t.Parallel()

	got := DayOf(1700000000000)
	want := time.Date(2023, time.November, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DayOf = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("DayOf location = %v, want UTC", got.Location())
	}
}

func TestOHLCBar_Up(t *testing.T) {
	t.Parallel()

	if !(OHLCBar{Open: 1, Close: 1}).Up() {
		t.Fatal("flat bar should count as up")
	}
	if (OHLCBar{Open: 2, Close: 1}).Up() {
		t.Fatal("falling bar should not count as up")
	}
}
