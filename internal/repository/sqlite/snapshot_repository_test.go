package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/codernaccotax/quizdrill/internal/repository"
	"github.com/codernaccotax/quizdrill/internal/repository/sqlite"
	"github.com/codernaccotax/quizdrill/internal/testutil"
)

type SnapshotRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SnapshotRepository
}

func (s *SnapshotRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSnapshotRepository(s.db)
}

func (s *SnapshotRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SnapshotRepositorySuite) TestLoadMissingKey() {
	data, err := s.repo.Load(context.Background(), "quizEngine_missing")
	s.Require().NoError(err)
	s.Nil(data)
}

func (s *SnapshotRepositorySuite) TestSaveAndLoad() {
	ctx := context.Background()
	payload := []byte(`{"score":3}`)

	s.Require().NoError(s.repo.Save(ctx, "quizEngine_js", payload))

	data, err := s.repo.Load(ctx, "quizEngine_js")
	s.Require().NoError(err)
	s.Equal(payload, data)
}

func (s *SnapshotRepositorySuite) TestSaveOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, "quizEngine_js", []byte(`{"score":1}`)))
	s.Require().NoError(s.repo.Save(ctx, "quizEngine_js", []byte(`{"score":2}`)))

	data, err := s.repo.Load(ctx, "quizEngine_js")
	s.Require().NoError(err)
	s.Equal([]byte(`{"score":2}`), data)

	// Last write wins: only one row per key.
	var count int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count))
	s.Equal(1, count)
}

func (s *SnapshotRepositorySuite) TestKeysAreIndependent() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, "quizEngine_js", []byte(`{"a":1}`)))
	s.Require().NoError(s.repo.Save(ctx, "quizEngine_java", []byte(`{"b":2}`)))

	data, err := s.repo.Load(ctx, "quizEngine_js")
	s.Require().NoError(err)
	s.Equal([]byte(`{"a":1}`), data)
}

func (s *SnapshotRepositorySuite) TestClear() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, "quizEngine_js", []byte(`{}`)))
	s.Require().NoError(s.repo.Clear(ctx, "quizEngine_js"))

	data, err := s.repo.Load(ctx, "quizEngine_js")
	s.Require().NoError(err)
	s.Nil(data)
}

func (s *SnapshotRepositorySuite) TestClearMissingKeyIsNoOp() {
	s.Require().NoError(s.repo.Clear(context.Background(), "quizEngine_none"))
}

func TestSnapshotRepositorySuite(t *testing.T) {
	suite.Run(t, new(SnapshotRepositorySuite))
}
