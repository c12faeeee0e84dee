package feature_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	redisclient "github.com/herosheet/sheet-api/internal/redis"
	feature "github.com/herosheet/sheet-api/internal/repositories/feature"
	"github.com/herosheet/sheet-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  redisclient.Client
	cleanup func()
	repo    feature.Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := feature.NewRedis(&feature.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestPutAndGet() {
	def := &pf.Feature{
		Category:    pf.CategoryFeat,
		Name:        "dodge",
		DisplayName: "Dodge",
		Benefits: []pf.Benefit{
			{Target: pf.TargetAC, Value: 1, Type: "dodge"},
		},
	}

	_, err := s.repo.Put(s.ctx, feature.PutInput{Feature: def})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, feature.GetInput{
		Category: pf.CategoryFeat,
		Name:     "dodge",
	})
	s.Require().NoError(err)
	s.Equal("Dodge", got.Feature.DisplayName)
	s.Require().Len(got.Feature.Benefits, 1)
	s.Equal(int32(1), got.Feature.Benefits[0].Value)
}

func (s *RedisRepositoryTestSuite) TestGetNormalizesName() {
	def := &pf.Feature{
		Category: pf.CategoryFeat,
		Name:     "power_attack",
	}
	_, err := s.repo.Put(s.ctx, feature.PutInput{Feature: def})
	s.Require().NoError(err)

	// Display-style names address the same definition.
	got, err := s.repo.Get(s.ctx, feature.GetInput{
		Category: pf.CategoryFeat,
		Name:     "Power Attack",
	})
	s.Require().NoError(err)
	s.Equal("power_attack", got.Feature.Name)
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, feature.GetInput{
		Category: pf.CategoryFeat,
		Name:     "missing",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetValidation() {
	_, err := s.repo.Get(s.ctx, feature.GetInput{Category: pf.CategoryFeat})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestPutBatch() {
	out, err := s.repo.PutBatch(s.ctx, feature.PutBatchInput{
		Features: []*pf.Feature{
			{Category: pf.CategoryFeat, Name: "dodge"},
			{Category: pf.CategoryTrait, Name: "reactionary"},
		},
	})
	s.Require().NoError(err)
	s.Equal(2, out.Count)

	_, err = s.repo.Get(s.ctx, feature.GetInput{Category: pf.CategoryTrait, Name: "reactionary"})
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestPutBatchValidation() {
	_, err := s.repo.PutBatch(s.ctx, feature.PutBatchInput{
		Features: []*pf.Feature{
			{Category: pf.CategoryFeat, Name: "dodge"},
			{Category: pf.CategoryFeat},
		},
	})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
