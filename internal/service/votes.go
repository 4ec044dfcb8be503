package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/David-H-L/Backend/internal/apperr"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/query"
	"github.com/David-H-L/Backend/internal/store"
)

// VoteService manages poll entities. Unlike posts these are
// hard-deleted.
type VoteService struct {
	votes store.VoteStore
}

func NewVoteService(votes store.VoteStore) *VoteService {
	return &VoteService{votes: votes}
}

type CreateVoteInput struct {
	Name     string
	Date     *time.Time
	Count    *int
	Finished *bool
}

func (s *VoteService) Create(ctx context.Context, in CreateVoteInput) (*models.Vote, error) {
	if in.Name == "" || in.Date == nil || in.Finished == nil {
		return nil, apperr.New(apperr.Validation, "Missing required fields: name, date, finished")
	}
	vote := &models.Vote{
		Name:     in.Name,
		Date:     *in.Date,
		Finished: *in.Finished,
	}
	if in.Count != nil {
		vote.Count = *in.Count
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		log.Printf("vote create: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error creating vote", err)
	}
	return vote, nil
}

func (s *VoteService) List(ctx context.Context, f query.VoteFilter) ([]models.Vote, error) {
	votes, err := s.votes.List(ctx, f)
	if err != nil {
		log.Printf("vote list: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error fetching votes", err)
	}
	if votes == nil {
		votes = []models.Vote{}
	}
	return votes, nil
}

func (s *VoteService) Get(ctx context.Context, id uint) (*models.Vote, error) {
	vote, err := s.votes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Vote not found")
		}
		log.Printf("vote get: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error fetching vote", err)
	}
	return vote, nil
}

type UpdateVoteInput struct {
	Name     *string
	Date     *time.Time
	Count    *int
	Finished *bool
}

func (s *VoteService) Update(ctx context.Context, id uint, in UpdateVoteInput) (int64, error) {
	fields := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return 0, apperr.New(apperr.Validation, "name must not be empty")
		}
		fields["name"] = *in.Name
	}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.Count != nil {
		fields["count"] = *in.Count
	}
	if in.Finished != nil {
		fields["finished"] = *in.Finished
	}
	if len(fields) == 0 {
		return 0, apperr.New(apperr.Validation, "No fields to update")
	}

	affected, err := s.votes.Update(ctx, id, fields)
	if err != nil {
		log.Printf("vote update: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error updating vote", err)
	}
	if affected == 0 {
		return 0, apperr.New(apperr.NotFound, "Vote not found")
	}
	return affected, nil
}

func (s *VoteService) Delete(ctx context.Context, id uint) (int64, error) {
	affected, err := s.votes.Delete(ctx, id)
	if err != nil {
		log.Printf("vote delete: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error deleting vote", err)
	}
	if affected == 0 {
		return 0, apperr.New(apperr.NotFound, "Vote not found")
	}
	return affected, nil
}
