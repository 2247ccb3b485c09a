package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/codernaccotax/quizdrill/internal/models"
	"github.com/codernaccotax/quizdrill/internal/repository"
	"github.com/codernaccotax/quizdrill/internal/repository/sqlite"
	"github.com/codernaccotax/quizdrill/internal/testutil"
)

type AttemptRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.AttemptRepository
}

func (s *AttemptRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAttemptRepository(s.db)
}

func (s *AttemptRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AttemptRepositorySuite) insertFixtures() {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	fixtures := []models.Attempt{
		{QuizID: "js", QuizTitle: "JavaScript Basics", Score: 8, Total: 10, AccuracyPercent: 80, Difficulty: "all", DurationSeconds: 300, FinishedAt: base},
		{QuizID: "js", QuizTitle: "JavaScript Basics", Score: 5, Total: 10, AccuracyPercent: 50, Difficulty: "beginner", DurationSeconds: 420, FinishedAt: base.Add(time.Hour)},
		{QuizID: "java", QuizTitle: "Java Core", Score: 6, Total: 8, AccuracyPercent: 75, Difficulty: "moderate", DurationSeconds: 600, FinishedAt: base.Add(2 * time.Hour)},
	}
	for _, a := range fixtures {
		_, err := s.repo.Insert(ctx, a)
		s.Require().NoError(err)
	}
}

func (s *AttemptRepositorySuite) TestInsertReturnsID() {
	id, err := s.repo.Insert(context.Background(), models.Attempt{
		QuizID: "js", QuizTitle: "JavaScript Basics", Score: 3, Total: 5,
		AccuracyPercent: 60, Difficulty: "all", FinishedAt: time.Now(),
	})
	s.Require().NoError(err)
	s.Greater(id, int64(0))
}

func (s *AttemptRepositorySuite) TestListNewestFirst() {
	s.insertFixtures()

	attempts, err := s.repo.List(context.Background(), models.AttemptFilter{})
	s.Require().NoError(err)
	s.Require().Len(attempts, 3)
	s.Equal("java", attempts[0].QuizID)
	s.Equal("js", attempts[2].QuizID)
	s.Equal(8, attempts[2].Score)
}

func (s *AttemptRepositorySuite) TestListFilterByQuiz() {
	s.insertFixtures()

	attempts, err := s.repo.List(context.Background(), models.AttemptFilter{QuizID: "js"})
	s.Require().NoError(err)
	s.Require().Len(attempts, 2)
	for _, a := range attempts {
		s.Equal("js", a.QuizID)
	}
}

func (s *AttemptRepositorySuite) TestListOrderByScoreAscending() {
	s.insertFixtures()

	attempts, err := s.repo.List(context.Background(), models.AttemptFilter{OrderBy: "score", OrderDir: "ASC"})
	s.Require().NoError(err)
	s.Require().Len(attempts, 3)
	s.Equal(5, attempts[0].Score)
	s.Equal(8, attempts[2].Score)
}

func (s *AttemptRepositorySuite) TestListIgnoresUnknownOrderColumn() {
	s.insertFixtures()

	attempts, err := s.repo.List(context.Background(), models.AttemptFilter{OrderBy: "evil; DROP TABLE attempts"})
	s.Require().NoError(err)
	s.Len(attempts, 3)
}

func (s *AttemptRepositorySuite) TestListPagination() {
	s.insertFixtures()

	page, err := s.repo.List(context.Background(), models.AttemptFilter{Limit: 2})
	s.Require().NoError(err)
	s.Len(page, 2)

	page, err = s.repo.List(context.Background(), models.AttemptFilter{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Len(page, 1)
}

func (s *AttemptRepositorySuite) TestCount() {
	s.insertFixtures()

	count, err := s.repo.Count(context.Background(), models.AttemptFilter{})
	s.Require().NoError(err)
	s.Equal(3, count)

	count, err = s.repo.Count(context.Background(), models.AttemptFilter{QuizID: "java"})
	s.Require().NoError(err)
	s.Equal(1, count)
}

func TestAttemptRepositorySuite(t *testing.T) {
	suite.Run(t, new(AttemptRepositorySuite))
}
