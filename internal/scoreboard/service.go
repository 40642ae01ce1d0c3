package scoreboard

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ResultArchive records matches once they are finished.
type ResultArchive interface {
	Archive(ctx context.Context, m Match, finishedAt time.Time) error
}

type Options struct {
	Persist SnapshotPersistence // optional
	Archive ResultArchive       // optional
	Log     *slog.Logger

	// FeedBuffer is the number of pending summaries kept per subscriber.
	FeedBuffer int
}

// Service makes a Scoreboard safe for concurrent callers and fans out
// side effects after each successful change:
// - snapshot to persistent storage (Redis)
// - finished results to the archive (Postgres)
// - fresh summary to live subscribers
type Service struct {
	mu    sync.Mutex
	board *Scoreboard

	persist SnapshotPersistence
	archive ResultArchive
	log     *slog.Logger
	now     func() time.Time

	feedBuf int
	nextSub uint64
	subs    map[uint64]chan []Match
}

func NewService(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	feedBuf := opts.FeedBuffer
	if feedBuf <= 0 {
		feedBuf = 16
	}
	return &Service{
		board:   New(),
		persist: opts.Persist,
		archive: opts.Archive,
		log:     log,
		now:     time.Now,
		feedBuf: feedBuf,
		subs:    make(map[uint64]chan []Match),
	}
}

// Restore loads the last saved snapshot, if there is one.
func (s *Service) Restore(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}

	snap, found, err := s.persist.Load(ctx)
	if err != nil || !found {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.board.Restore(snap); err != nil {
		return err
	}
	s.log.Info("scoreboard restored", "matches", s.board.Len())
	return nil
}

func (s *Service) Start(ctx context.Context, home, away string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.StartMatch(home, away); err != nil {
		return err
	}
	s.log.Info("match started", "home", home, "away", away)
	s.changedLocked(ctx)
	return nil
}

func (s *Service) UpdateScore(ctx context.Context, home, away string, homeScore, awayScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.UpdateScore(home, away, homeScore, awayScore); err != nil {
		return err
	}
	s.log.Info("score updated", "home", home, "away", away, "homeScore", homeScore, "awayScore", awayScore)
	s.changedLocked(ctx)
	return nil
}

// Finish removes the match and returns its final score.
func (s *Service) Finish(ctx context.Context, home, away string) (Match, error) {
	s.mu.Lock()
	final, _ := s.board.Lookup(home, away)
	if err := s.board.FinishMatch(home, away); err != nil {
		s.mu.Unlock()
		return Match{}, err
	}
	s.log.Info("match finished", "home", home, "away", away, "homeScore", final.HomeScore, "awayScore", final.AwayScore)
	s.changedLocked(ctx)
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.Archive(ctx, final, s.now()); err != nil {
			s.log.Warn("archive result failed", "home", home, "away", away, "err", err)
		}
	}
	return final, nil
}

func (s *Service) Summary() []Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Summary()
}

func (s *Service) Lookup(home, away string) (Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Lookup(home, away)
}

// Subscribe returns a channel receiving the summary after every change and a
// cancel func that closes it. Updates are dropped for subscribers that
// fall behind.
func (s *Service) Subscribe() (<-chan []Match, func()) {
	ch := make(chan []Match, s.feedBuf)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Service) changedLocked(ctx context.Context) {
	s.persistLocked(ctx)
	s.publishLocked()
}

func (s *Service) persistLocked(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(ctx, s.board.Snapshot()); err != nil {
		s.log.Warn("snapshot save failed", "err", err)
	}
}

func (s *Service) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	summary := s.board.Summary()
	for id, ch := range s.subs {
		select {
		case ch <- summary:
		default:
			s.log.Debug("subscriber lagging, summary dropped", "sub", id)
		}
	}
}
