package appointments

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T) {
	t.Helper()
	fixedNow := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	prevNow := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { nowFunc = prevNow })
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.json")
	return NewStore(path, nil), path
}

func seed(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestBookRoundTrip(t *testing.T) {
	fixClock(t)
	store, path := newTestStore(t)

	if err := store.Book("Zara Khan", "0301 5550123", "2026-03-20"); err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := store.Book("Amir Shah", "0345 5559876", "2026-03-14"); err != nil {
		t.Fatalf("book: %v", err)
	}

	got := NewStore(path, nil).Load()
	want := []Record{
		{Name: "Zara Khan", Phone: "0301 5550123", Date: "2026-03-20"},
		{Name: "Amir Shah", Phone: "0345 5559876", Date: "2026-03-14"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestBookValidation(t *testing.T) {
	fixClock(t)

	tests := []struct {
		name    string
		patient string
		phone   string
		date    string
		wantErr error
	}{
		{"blank name", "  ", "0301", "2026-03-20", ErrMissingFields},
		{"blank phone", "Zara", "", "2026-03-20", ErrMissingFields},
		{"blank date", "Zara", "0301", "   ", ErrMissingFields},
		{"slash format", "Zara", "0301", "2026/03/20", ErrDateFormat},
		{"unpadded format", "Zara", "0301", "2026-3-5", ErrDateFormat},
		{"not a date", "Zara", "0301", "soon", ErrDateFormat},
		{"impossible day", "Zara", "0301", "2026-02-30", ErrDateFormat},
		{"yesterday", "Zara", "0301", "2026-03-13", ErrPastDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := newTestStore(t)
			err := store.Book(tt.patient, tt.phone, tt.date)
			require.ErrorIs(t, err, tt.wantErr)
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "store file must not be written on a rejected booking")
		})
	}
}

func TestBookAcceptsToday(t *testing.T) {
	fixClock(t)
	store, _ := newTestStore(t)
	if err := store.Book("Zara", "0301", "2026-03-14"); err != nil {
		t.Fatalf("expected same-day booking to pass, got %v", err)
	}
}

func TestUpcomingFiltersAndSorts(t *testing.T) {
	fixClock(t)
	store, path := newTestStore(t)
	seed(t, path, `[
        {"name": "Zara", "phone": "1", "date": "2026-03-20"},
        {"name": "Amir", "phone": "2", "date": "2026-03-13"},
        {"name": "Bea", "phone": "3", "date": "2026-03-14"},
        {"name": "Cruz", "phone": "4", "date": "not-a-date"},
        {"name": "Dia", "phone": "5", "date": "2026-03-15"}
    ]`)

	got := store.Upcoming()
	want := []Record{
		{Name: "Bea", Phone: "3", Date: "2026-03-14"},
		{Name: "Dia", Phone: "5", Date: "2026-03-15"},
		{Name: "Zara", Phone: "1", Date: "2026-03-20"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("upcoming mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSearch(t *testing.T) {
	records := []Record{
		{Name: "Zara Khan", Phone: "0301 5550123", Date: "2026-03-20"},
		{Name: "Amir Shah", Phone: "0345 5559876", Date: "2026-03-15"},
	}

	t.Run("empty query returns input unchanged", func(t *testing.T) {
		got := Search(records, "   ")
		assert.Equal(t, records, got)
	})

	t.Run("name match is case-insensitive", func(t *testing.T) {
		got := Search(records, "zaRA")
		require.Len(t, got, 1)
		assert.Equal(t, "Zara Khan", got[0].Name)
	})

	t.Run("phone substring match", func(t *testing.T) {
		got := Search(records, "5559")
		require.Len(t, got, 1)
		assert.Equal(t, "Amir Shah", got[0].Name)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Search(records, "nobody"))
	})
}

func TestDeleteFirstTripleMatch(t *testing.T) {
	store, path := newTestStore(t)
	seed(t, path, `[
        {"name": "Sam", "phone": "111", "date": "2026-03-20"},
        {"name": "Sam", "phone": "111", "date": "2026-03-20"},
        {"name": "Lena", "phone": "222", "date": "2026-03-21"}
    ]`)

	removed, err := store.Delete(Record{Name: "Sam", Phone: "111", Date: "2026-03-20"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatalf("expected a record to be removed")
	}

	got := store.Load()
	want := []Record{
		{Name: "Sam", Phone: "111", Date: "2026-03-20"},
		{Name: "Lena", Phone: "222", Date: "2026-03-21"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected only the first duplicate removed:\n got %+v\nwant %+v", got, want)
	}
}

func TestDeleteNoMatchLeavesFileUntouched(t *testing.T) {
	store, path := newTestStore(t)
	seed(t, path, `[{"name": "Sam", "phone": "111", "date": "2026-03-20"}]`)

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	removed, err := store.Delete(Record{Name: "Sam", Phone: "999", Date: "2026-03-20"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatalf("expected no removal for a mismatched triple")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("expected file unchanged when nothing was deleted")
	}
}

func TestEditMatchesByNameOnly(t *testing.T) {
	fixClock(t)
	store, path := newTestStore(t)
	seed(t, path, `[
        {"name": "Sam", "phone": "111", "date": "2026-03-20"},
        {"name": "Sam", "phone": "222", "date": "2026-03-25"}
    ]`)

	target := Record{Name: "Sam", Phone: "222", Date: "2026-03-25"}
	if err := store.Edit(target, "2026-03-30", ""); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got := store.Load()
	want := []Record{
		{Name: "Sam", Phone: "222", Date: "2026-03-30"},
		{Name: "Sam", Phone: "222", Date: "2026-03-25"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected the first same-name record replaced:\n got %+v\nwant %+v", got, want)
	}
}

func TestEditValidation(t *testing.T) {
	fixClock(t)

	tests := []struct {
		name    string
		newDate string
		wantErr error
	}{
		{"past date", "2026-03-13", ErrPastDate},
		{"wrong format", "13-03-2026", ErrDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := newTestStore(t)
			seed(t, path, `[{"name": "Sam", "phone": "111", "date": "2026-03-20"}]`)
			before, err := os.ReadFile(path)
			require.NoError(t, err)

			err = store.Edit(Record{Name: "Sam", Phone: "111", Date: "2026-03-20"}, tt.newDate, "")
			require.ErrorIs(t, err, tt.wantErr)

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after), "store file must be unchanged after a rejected edit")
		})
	}
}

func TestEditEmptyInputsKeepRecord(t *testing.T) {
	fixClock(t)
	store, path := newTestStore(t)
	seed(t, path, `[{"name": "Sam", "phone": "111", "date": "2026-03-20"}]`)

	if err := store.Edit(Record{Name: "Sam", Phone: "111", Date: "2026-03-20"}, "", ""); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got := store.Load()
	want := []Record{{Name: "Sam", Phone: "111", Date: "2026-03-20"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected record preserved verbatim:\n got %+v\nwant %+v", got, want)
	}
}

func TestEditUnknownNameAppends(t *testing.T) {
	fixClock(t)
	store, path := newTestStore(t)
	seed(t, path, `[{"name": "Sam", "phone": "111", "date": "2026-03-20"}]`)

	target := Record{Name: "Lena", Phone: "222", Date: "2026-03-21"}
	if err := store.Edit(target, "2026-03-22", "333"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got := store.Load()
	want := []Record{
		{Name: "Sam", Phone: "111", Date: "2026-03-20"},
		{Name: "Lena", Phone: "333", Date: "2026-03-22"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected unmatched edit appended:\n got %+v\nwant %+v", got, want)
	}
}

func TestReminderMatchesTomorrowOnly(t *testing.T) {
	fixClock(t)
	store, path := newTestStore(t)
	seed(t, path, `[
        {"name": "Zara", "phone": "1", "date": "2026-03-15"},
        {"name": "Amir", "phone": "2", "date": "2026-03-14"},
        {"name": "Bea", "phone": "3", "date": "2026-03-16"},
        {"name": "Cruz", "phone": "4", "date": "bogus"},
        {"name": "Dia", "phone": "5", "date": "2026-03-15"}
    ]`)

	got := store.Reminder()
	want := []Record{
		{Name: "Zara", Phone: "1", Date: "2026-03-15"},
		{Name: "Dia", Phone: "5", Date: "2026-03-15"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reminder mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadLenient(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.Empty(t, store.Load())
	})

	t.Run("malformed json", func(t *testing.T) {
		store, path := newTestStore(t)
		seed(t, path, "{oops")
		assert.Empty(t, store.Load())
	})

	t.Run("wrong shape", func(t *testing.T) {
		store, path := newTestStore(t)
		seed(t, path, `{"name": "Sam"}`)
		assert.Empty(t, store.Load())
	})
}
