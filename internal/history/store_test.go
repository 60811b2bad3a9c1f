package history

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	s, err = Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	s.Close()
}

func TestStatsStreaksAndDistribution(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	outcomes := []struct {
		won      bool
		attempts int
	}{
		{true, 3}, {true, 4}, {false, 6}, {true, 2}, {true, 3}, {true, 5},
	}
	for i, o := range outcomes {
		err := s.RecordGame(ctx, Record{
			PlayerID: LocalPlayer, Secret: "plane", Attempts: o.attempts, MaxAttempts: 6, Won: o.won,
			StartedAt: base.Add(time.Duration(i) * time.Hour), FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordGame %d: %v", i, err)
		}
	}
	// another player's games are not counted
	_ = s.RecordGame(ctx, Record{PlayerID: "other", Secret: "crane", Attempts: 1, MaxAttempts: 6, Won: true, FinishedAt: base})

	st, err := s.Stats(ctx, LocalPlayer)
	if err != nil {
		t.Fatal(err)
	}
	if st.Played != 6 || st.Wins != 5 {
		t.Fatalf("played/wins = %d/%d, want 6/5", st.Played, st.Wins)
	}
	if st.CurrentStreak != 3 || st.MaxStreak != 3 {
		t.Fatalf("streak current/max = %d/%d, want 3/3", st.CurrentStreak, st.MaxStreak)
	}
	if st.Distribution[3] != 2 || st.Distribution[6] != 0 {
		t.Fatalf("distribution = %v", st.Distribution)
	}
	if r := st.WinRate(); r < 83 || r > 84 {
		t.Fatalf("win rate = %.2f", r)
	}
}

func TestDailyOncePerDate(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	rec := Record{PlayerID: LocalPlayer, Mode: "daily", Date: "2026-10-18", Secret: "ghost",
		Attempts: 4, MaxAttempts: 6, Won: true, StartedAt: now, FinishedAt: now}

	played, err := s.DailyPlayed(ctx, LocalPlayer, "2026-10-18")
	if err != nil || played {
		t.Fatalf("DailyPlayed before = %v, %v", played, err)
	}
	if err := s.RecordGame(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGame(ctx, rec); err != nil {
		t.Fatalf("duplicate daily should be ignored, got %v", err)
	}
	played, err = s.DailyPlayed(ctx, LocalPlayer, "2026-10-18")
	if err != nil || !played {
		t.Fatalf("DailyPlayed after = %v, %v", played, err)
	}
	st, _ := s.Stats(ctx, LocalPlayer)
	if st.Played != 1 {
		t.Fatalf("played = %d, want 1", st.Played)
	}
}

func TestPlayers(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	p, err := s.CreatePlayer(ctx, " alice ", "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "alice" || p.ID == "" {
		t.Fatalf("player = %+v", p)
	}
	if _, err := s.CreatePlayer(ctx, "ALICE", "another password"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate err = %v", err)
	}
	if _, err := s.CreatePlayer(ctx, "bo", "long enough"); err == nil {
		t.Fatalf("short username accepted")
	}
	if _, err := s.CreatePlayer(ctx, "bob", "short"); err == nil {
		t.Fatalf("short password accepted")
	}

	got, err := s.FindPlayerByName(ctx, "Alice")
	if err != nil {
		t.Fatal(err)
	}
	if !got.CheckPassword("correct horse") || got.CheckPassword("wrong") {
		t.Fatalf("password check mismatch")
	}
	if byID, err := s.FindPlayerByID(ctx, p.ID); err != nil || byID.Username != "alice" {
		t.Fatalf("FindPlayerByID = %+v, %v", byID, err)
	}
	if _, err := s.FindPlayerByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing player err = %v", err)
	}
}

func TestDailyLeaderboard(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	alice, err := s.CreatePlayer(ctx, "alice", "password1")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	games := []Record{
		{PlayerID: alice.ID, Attempts: 4, Won: true, FinishedAt: start.Add(90 * time.Second)},
		{PlayerID: "bob", Attempts: 3, Won: true, FinishedAt: start.Add(300 * time.Second)},
		{PlayerID: "carol", Attempts: 4, Won: true, FinishedAt: start.Add(60 * time.Second)},
		{PlayerID: "dave", Attempts: 6, Won: false, FinishedAt: start.Add(30 * time.Second)},
	}
	for _, g := range games {
		g.Mode, g.Date, g.Secret, g.MaxAttempts, g.StartedAt = "daily", "2026-10-18", "ghost", 6, start
		if err := s.RecordGame(ctx, g); err != nil {
			t.Fatal(err)
		}
	}

	lb, err := s.DailyLeaderboard(ctx, "2026-10-18", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lb) != 3 {
		t.Fatalf("leaderboard has %d rows, want 3 winners: %+v", len(lb), lb)
	}
	want := []string{"bob", "carol", "alice"}
	for i, w := range want {
		if lb[i].Player != w {
			t.Fatalf("row %d = %+v, want %s", i, lb[i], w)
		}
	}
	if lb[2].ElapsedSec != 90 {
		t.Fatalf("alice elapsed = %d, want 90", lb[2].ElapsedSec)
	}

	lb, err = s.DailyLeaderboard(ctx, "2026-10-18", 1_000_000_000)
	if err != nil || len(lb) != 3 {
		t.Fatalf("huge limit = %d rows, %v", len(lb), err)
	}
	lb, err = s.DailyLeaderboard(ctx, "2000-01-01", 0)
	if err != nil || lb == nil || len(lb) != 0 {
		t.Fatalf("empty day = %#v, %v", lb, err)
	}
}

func TestRecentGamesNewestFirst(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, secret := range []string{"crane", "plane", "ghost"} {
		if err := s.RecordGame(ctx, Record{
			PlayerID: LocalPlayer, Secret: secret, Attempts: i + 1, MaxAttempts: 6, Won: true,
			StartedAt: base.Add(time.Duration(i) * time.Hour), FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.RecentGames(ctx, LocalPlayer, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Secret != "ghost" || got[1].Secret != "plane" {
		t.Fatalf("recent = %+v", got)
	}
	if !got[0].FinishedAt.Equal(base.Add(2*time.Hour + time.Minute)) || got[0].Date != "2026-10-01" {
		t.Fatalf("record fields = %+v", got[0])
	}

	none, err := s.RecentGames(ctx, "nobody", 0)
	if err != nil || len(none) != 0 {
		t.Fatalf("recent for unknown player = %v, %v", none, err)
	}
}

func TestDSNPath(t *testing.T) {
	cases := []struct {
		dsn    string
		path   string
		memory bool
	}{
		{"/var/lib/wordle/h.db", "/var/lib/wordle/h.db", false},
		{"file:data/h.db?mode=rwc", "data/h.db", false},
		{":memory:", ":memory:", true},
		{"file::memory:?cache=shared", ":memory:", true},
		{"file:h.db?mode=memory", "h.db", true},
	}
	for _, c := range cases {
		path, memory := dsnPath(c.dsn)
		if path != c.path || memory != c.memory {
			t.Errorf("dsnPath(%q) = %q, %v; want %q, %v", c.dsn, path, memory, c.path, c.memory)
		}
	}
}

func TestOpenFileURIWithParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "h.db")
	s, err := Open("file:" + path + "?mode=rwc")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.RecordGame(ctx, Record{PlayerID: LocalPlayer, Secret: "plane", Attempts: 2, MaxAttempts: 6, Won: true}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	st, err := s.Stats(ctx, LocalPlayer)
	if err != nil || st.Played != 1 {
		t.Fatalf("reopened stats = %+v, %v", st, err)
	}
}

func TestOpenMemoryConcurrent(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- s.RecordGame(ctx, Record{PlayerID: LocalPlayer, Secret: "plane", Attempts: 3, MaxAttempts: 6, Won: true})
		}()
		go func() {
			defer wg.Done()
			_, err := s.Stats(ctx, LocalPlayer)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	if st, _ := s.Stats(ctx, LocalPlayer); st.Played != 10 {
		t.Fatalf("played = %d, want 10", st.Played)
	}
}
