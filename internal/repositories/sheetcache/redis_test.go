package sheetcache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	redisclient "github.com/herosheet/sheet-api/internal/redis"
	"github.com/herosheet/sheet-api/internal/repositories/sheetcache"
	"github.com/herosheet/sheet-api/internal/testutils"
)

type RedisCacheTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  redisclient.Client
	cleanup func()
	cache   sheetcache.Repository
}

func (s *RedisCacheTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	cache, err := sheetcache.NewRedis(&sheetcache.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.cache = cache
}

func (s *RedisCacheTestSuite) TearDownTest() {
	s.cleanup()
}

func testSheet() *pf.CharacterSheet {
	return &pf.CharacterSheet{
		CharacterID: "char_123",
		Name:        "Valeria",
		TotalLevel:  1,
		ArmorClass: pf.ValueWithBreakdown{
			Label: "Armor Class",
			Total: 12,
			Modifiers: []pf.Modifier{
				{Source: "Dexterity modifier", Value: 2},
			},
		},
	}
}

func (s *RedisCacheTestSuite) TestPutAndGet() {
	_, err := s.cache.Put(s.ctx, sheetcache.PutInput{
		Sheet:           testSheet(),
		RecordUpdatedAt: 1700000000,
	})
	s.Require().NoError(err)

	got, err := s.cache.Get(s.ctx, sheetcache.GetInput{CharacterID: "char_123"})
	s.Require().NoError(err)
	s.Equal(int64(1700000000), got.RecordUpdatedAt)
	s.Equal(int32(12), got.Sheet.ArmorClass.Total)
	s.Require().Len(got.Sheet.ArmorClass.Modifiers, 1)
	s.Equal("Dexterity modifier", got.Sheet.ArmorClass.Modifiers[0].Source)
}

func (s *RedisCacheTestSuite) TestGetMiss() {
	_, err := s.cache.Get(s.ctx, sheetcache.GetInput{CharacterID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisCacheTestSuite) TestPutOverwrites() {
	sheet := testSheet()
	_, err := s.cache.Put(s.ctx, sheetcache.PutInput{Sheet: sheet, RecordUpdatedAt: 1})
	s.Require().NoError(err)

	sheet.ArmorClass.Total = 17
	_, err = s.cache.Put(s.ctx, sheetcache.PutInput{Sheet: sheet, RecordUpdatedAt: 2})
	s.Require().NoError(err)

	got, err := s.cache.Get(s.ctx, sheetcache.GetInput{CharacterID: "char_123"})
	s.Require().NoError(err)
	s.Equal(int64(2), got.RecordUpdatedAt)
	s.Equal(int32(17), got.Sheet.ArmorClass.Total)
}

func (s *RedisCacheTestSuite) TestInvalidate() {
	_, err := s.cache.Put(s.ctx, sheetcache.PutInput{Sheet: testSheet(), RecordUpdatedAt: 1})
	s.Require().NoError(err)

	_, err = s.cache.Invalidate(s.ctx, sheetcache.InvalidateInput{CharacterID: "char_123"})
	s.Require().NoError(err)

	_, err = s.cache.Get(s.ctx, sheetcache.GetInput{CharacterID: "char_123"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisCacheTestSuite) TestInvalidateMissingIsNoop() {
	_, err := s.cache.Invalidate(s.ctx, sheetcache.InvalidateInput{CharacterID: "missing"})
	s.NoError(err)
}

func (s *RedisCacheTestSuite) TestValidation() {
	_, err := s.cache.Get(s.ctx, sheetcache.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.cache.Put(s.ctx, sheetcache.PutInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.cache.Put(s.ctx, sheetcache.PutInput{Sheet: &pf.CharacterSheet{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.cache.Invalidate(s.ctx, sheetcache.InvalidateInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}
