package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"career-compass/internal/domain/roadmap"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5"
)

const roadmapColumns = `id, user_id, milestones, current_milestone`

func (s *Store) GetRoadmapByUserID(ctx context.Context, userID int64) (roadmap.Roadmap, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE user_id = $1 ORDER BY id ASC LIMIT 1`, userID)
	return scanRoadmap(row)
}

func (s *Store) CreateRoadmap(ctx context.Context, in storage.NewRoadmap) (roadmap.Roadmap, error) {
	milestones := in.Milestones
	if milestones == nil {
		milestones = []roadmap.Milestone{}
	}
	b, err := marshalJSON(milestones)
	if err != nil {
		return roadmap.Roadmap{}, err
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO roadmaps (user_id, milestones, current_milestone)
		 VALUES ($1, $2, $3)
		 RETURNING `+roadmapColumns,
		in.UserID, b, in.CurrentMilestone)
	return scanRoadmap(row)
}

func (s *Store) UpdateRoadmap(ctx context.Context, id int64, patch storage.RoadmapPatch) (roadmap.Roadmap, error) {
	var milestones any
	if patch.Milestones != nil {
		ms := *patch.Milestones
		if ms == nil {
			ms = []roadmap.Milestone{}
		}
		b, err := marshalJSON(ms)
		if err != nil {
			return roadmap.Roadmap{}, err
		}
		milestones = b
	}

	row := s.db.QueryRow(ctx,
		`UPDATE roadmaps SET
			milestones = COALESCE($2, milestones),
			current_milestone = COALESCE($3, current_milestone)
		 WHERE id = $1
		 RETURNING `+roadmapColumns,
		id, milestones, patch.CurrentMilestone)
	return scanRoadmap(row)
}

func scanRoadmap(row scannable) (roadmap.Roadmap, error) {
	var (
		r          roadmap.Roadmap
		milestones []byte
	)
	err := row.Scan(&r.ID, &r.UserID, &milestones, &r.CurrentMilestone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roadmap.Roadmap{}, storage.ErrNotFound
		}
		return roadmap.Roadmap{}, err
	}

	r.Milestones = []roadmap.Milestone{}
	if len(milestones) > 0 {
		if err := json.Unmarshal(milestones, &r.Milestones); err != nil {
			return roadmap.Roadmap{}, err
		}
	}
	return r, nil
}
