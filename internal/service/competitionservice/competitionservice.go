package competitionservice

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"go.uber.org/zap"
)

type CompetitionRepo interface {
	Create(ctx context.Context, c *domain.Competition) (*domain.Competition, error)
	Update(ctx context.Context, c *domain.Competition) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	FindByID(ctx context.Context, id int) (*domain.Competition, error)
	List(ctx context.Context, status string) ([]domain.Competition, error)
	Featured(ctx context.Context) (*domain.Competition, error)
	SetStatus(ctx context.Context, id int, from string, to string) (bool, error)
	SetWinner(ctx context.Context, id int, winnerID int) (bool, error)
}

type EntryRepo interface {
	CountByCompetition(ctx context.Context, competitionID int) (int, error)
	EntryAt(ctx context.Context, competitionID int, offset int) (*domain.Entry, error)
}

// transitions maps a target status to the only status it may be reached from.
var transitions = map[string]string{
	domain.CompetitionActive: domain.CompetitionDraft,
	domain.CompetitionEnded:  domain.CompetitionActive,
}

type Service struct {
	competitionRepo CompetitionRepo
	entryRepo       EntryRepo
	randomIndex     func(n int) (int, error)
}

func New(competitionRepo CompetitionRepo, entryRepo EntryRepo) *Service {
	return &Service{
		competitionRepo: competitionRepo,
		entryRepo:       entryRepo,
		randomIndex:     cryptoIndex,
	}
}

func cryptoIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

func validateCompetition(c *domain.Competition) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !c.EntryPrice.IsPositive() {
		return fmt.Errorf("%w: entry price must be positive", domain.ErrValidation)
	}
	if c.MaxEntries != nil && *c.MaxEntries <= 0 {
		return fmt.Errorf("%w: max entries must be positive", domain.ErrValidation)
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return fmt.Errorf("%w: end date is before start date", domain.ErrValidation)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, c *domain.Competition) (*domain.Competition, error) {
	if err := validateCompetition(c); err != nil {
		return nil, err
	}
	switch c.Status {
	case "":
		c.Status = domain.CompetitionDraft
	case domain.CompetitionDraft, domain.CompetitionActive:
	default:
		return nil, fmt.Errorf("%w: new competitions are draft or active", domain.ErrValidation)
	}

	created, err := s.competitionRepo.Create(ctx, c)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	zap.L().Info("competition created", zap.Int("competition_id", created.ID), zap.String("status", created.Status))
	return created, nil
}

func (s *Service) Update(ctx context.Context, c *domain.Competition) (*domain.Competition, error) {
	if err := validateCompetition(c); err != nil {
		return nil, err
	}
	ok, err := s.competitionRepo.Update(ctx, c)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: competition %d", domain.ErrNotFound, c.ID)
	}
	return s.Get(ctx, c.ID)
}

// Delete removes a competition that has no entries. Entered competitions
// can only be ended.
func (s *Service) Delete(ctx context.Context, id int) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.CurrentEntries > 0 {
		return fmt.Errorf("%w: competition %d has entries", domain.ErrConflict, id)
	}
	ok, err := s.competitionRepo.Delete(ctx, id)
	if err != nil {
		return domain.Unavailable(err)
	}
	if !ok {
		return fmt.Errorf("%w: competition %d has entries", domain.ErrConflict, id)
	}
	zap.L().Info("competition deleted", zap.Int("competition_id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Competition, error) {
	c, err := s.competitionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: competition %d", domain.ErrNotFound, id)
	}
	return c, nil
}

// GetPublished hides drafts from the public API.
func (s *Service) GetPublished(ctx context.Context, id int) (*domain.Competition, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == domain.CompetitionDraft {
		return nil, fmt.Errorf("%w: competition %d", domain.ErrNotFound, id)
	}
	return c, nil
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Competition, error) {
	return s.list(ctx, domain.CompetitionActive)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Competition, error) {
	return s.list(ctx, "")
}

func (s *Service) list(ctx context.Context, status string) ([]domain.Competition, error) {
	competitions, err := s.competitionRepo.List(ctx, status)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return competitions, nil
}

func (s *Service) Featured(ctx context.Context) (*domain.Competition, error) {
	c, err := s.competitionRepo.Featured(ctx)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no active competition", domain.ErrNotFound)
	}
	return c, nil
}

// SetStatus only moves forward: draft to active, active to ended.
func (s *Service) SetStatus(ctx context.Context, id int, status string) (*domain.Competition, error) {
	from, ok := transitions[status]
	if !ok {
		return nil, fmt.Errorf("%w: cannot move a competition to %q", domain.ErrValidation, status)
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != from {
		return nil, fmt.Errorf("%w: competition is %s, expected %s", domain.ErrConflict, c.Status, from)
	}

	updated, err := s.competitionRepo.SetStatus(ctx, id, from, status)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: competition status changed concurrently", domain.ErrConflict)
	}
	zap.L().Info("competition status changed", zap.Int("competition_id", id), zap.String("from", from), zap.String("to", status))
	c.Status = status
	return c, nil
}

// DrawWinner picks one entry uniformly at random, records its user as the
// winner and ends the competition.
func (s *Service) DrawWinner(ctx context.Context, id int) (*domain.Entry, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == domain.CompetitionDraft {
		return nil, fmt.Errorf("%w: competition is still a draft", domain.ErrConflict)
	}
	if c.WinnerID != nil {
		return nil, fmt.Errorf("%w: competition %d already has a winner", domain.ErrConflict, id)
	}

	count, err := s.entryRepo.CountByCompetition(ctx, id)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: competition has no entries", domain.ErrConflict)
	}

	idx, err := s.randomIndex(count)
	if err != nil {
		zap.L().Error("failed to draw random index", zap.Error(err))
		return nil, err
	}
	entry, err := s.entryRepo.EntryAt(ctx, id, idx)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entries changed during the draw", domain.ErrConflict)
	}

	ok, err := s.competitionRepo.SetWinner(ctx, id, entry.UserID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: competition drawn concurrently", domain.ErrConflict)
	}
	zap.L().Info("winner drawn",
		zap.Int("competition_id", id),
		zap.Int("entry_id", entry.ID),
		zap.Int("winner_id", entry.UserID),
		zap.Int("entries", count),
	)
	return entry, nil
}
