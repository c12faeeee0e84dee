package sheet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/herosheet/sheet-api/internal/engine"
	enginemock "github.com/herosheet/sheet-api/internal/engine/mock"
	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	sheetorch "github.com/herosheet/sheet-api/internal/orchestrators/sheet"
	"github.com/herosheet/sheet-api/internal/pkg/idgen"
	characterrepo "github.com/herosheet/sheet-api/internal/repositories/character"
	charactermock "github.com/herosheet/sheet-api/internal/repositories/character/mock"
	"github.com/herosheet/sheet-api/internal/repositories/sheetcache"
	sheetcachemock "github.com/herosheet/sheet-api/internal/repositories/sheetcache/mock"
	sheetsvc "github.com/herosheet/sheet-api/internal/services/sheet"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	ctx          context.Context
	mockRepo     *charactermock.MockRepository
	mockCache    *sheetcachemock.MockRepository
	mockEngine   *enginemock.MockEngine
	orchestrator *sheetorch.Orchestrator
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.mockRepo = charactermock.NewMockRepository(s.ctrl)
	s.mockCache = sheetcachemock.NewMockRepository(s.ctrl)
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)

	orch, err := sheetorch.New(&sheetorch.Config{
		CharacterRepo: s.mockRepo,
		SheetCache:    s.mockCache,
		Engine:        s.mockEngine,
		IDGenerator:   idgen.NewSequential("char"),
	})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func testRecord() *pf.CharacterRecord {
	return &pf.CharacterRecord{
		ID:        "char_123",
		PlayerID:  "player_456",
		Name:      "Valeria",
		UpdatedAt: 100,
	}
}

func testSheet() *pf.CharacterSheet {
	return &pf.CharacterSheet{
		CharacterID: "char_123",
		Name:        "Valeria",
		Initiative: pf.ValueWithBreakdown{
			Label: "Initiative",
			Total: 2,
			Modifiers: []pf.Modifier{
				{Source: "Dexterity modifier", Value: 2},
			},
		},
		Saves: map[pf.SaveID]pf.ValueWithBreakdown{
			pf.SaveWill: {Label: "Will Save", Total: 3},
		},
		Skills: map[pf.SkillID]pf.ValueWithBreakdown{
			pf.SkillStealth: {Label: "Stealth", Total: 6},
		},
		Attacks: map[pf.AttackKind]pf.ValueWithBreakdown{
			pf.AttackMelee: {Label: "Melee Attack", Total: 4},
		},
	}
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := sheetorch.New(&sheetorch.Config{})
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestCreateCharacter() {
	record := &pf.CharacterRecord{Name: "Valeria"}

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.CreateInput) (*characterrepo.CreateOutput, error) {
			s.Equal("player_456", input.Record.PlayerID)
			s.NotEmpty(input.Record.ID)
			return &characterrepo.CreateOutput{Record: input.Record}, nil
		})

	out, err := s.orchestrator.CreateCharacter(s.ctx, &sheetsvc.CreateCharacterInput{
		PlayerID: "player_456",
		Record:   record,
	})
	s.Require().NoError(err)
	s.Equal("char_1", out.Record.ID)
}

func (s *OrchestratorTestSuite) TestCreateCharacterValidation() {
	_, err := s.orchestrator.CreateCharacter(s.ctx, nil)
	s.Error(err)

	_, err = s.orchestrator.CreateCharacter(s.ctx, &sheetsvc.CreateCharacterInput{
		PlayerID: "player_456",
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.CreateCharacter(s.ctx, &sheetsvc.CreateCharacterInput{
		Record: &pf.CharacterRecord{Name: "x"},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateCharacterInvalidatesCache() {
	record := testRecord()

	s.mockRepo.EXPECT().
		Update(s.ctx, characterrepo.UpdateInput{Record: record}).
		Return(&characterrepo.UpdateOutput{Record: record}, nil)
	s.mockCache.EXPECT().
		Invalidate(s.ctx, sheetcache.InvalidateInput{CharacterID: "char_123"}).
		Return(&sheetcache.InvalidateOutput{}, nil)

	_, err := s.orchestrator.UpdateCharacter(s.ctx, &sheetsvc.UpdateCharacterInput{Record: record})
	s.NoError(err)
}

func (s *OrchestratorTestSuite) TestDeleteCharacterInvalidatesCache() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, characterrepo.DeleteInput{ID: "char_123"}).
		Return(&characterrepo.DeleteOutput{}, nil)
	s.mockCache.EXPECT().
		Invalidate(s.ctx, sheetcache.InvalidateInput{CharacterID: "char_123"}).
		Return(&sheetcache.InvalidateOutput{}, nil)

	_, err := s.orchestrator.DeleteCharacter(s.ctx, &sheetsvc.DeleteCharacterInput{
		CharacterID: "char_123",
	})
	s.NoError(err)
}

func (s *OrchestratorTestSuite) TestGetSheetCacheHit() {
	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "char_123"}).
		Return(&characterrepo.GetOutput{Record: testRecord()}, nil)
	s.mockCache.EXPECT().
		Get(s.ctx, sheetcache.GetInput{CharacterID: "char_123"}).
		Return(&sheetcache.GetOutput{Sheet: testSheet(), RecordUpdatedAt: 100}, nil)

	out, err := s.orchestrator.GetSheet(s.ctx, &sheetsvc.GetSheetInput{CharacterID: "char_123"})
	s.Require().NoError(err)
	s.True(out.FromCache)
	s.Equal("char_123", out.Sheet.CharacterID)
}

func (s *OrchestratorTestSuite) TestGetSheetStaleCacheRecomputes() {
	record := testRecord()

	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "char_123"}).
		Return(&characterrepo.GetOutput{Record: record}, nil)
	// Cached entry predates the record's last update.
	s.mockCache.EXPECT().
		Get(s.ctx, sheetcache.GetInput{CharacterID: "char_123"}).
		Return(&sheetcache.GetOutput{Sheet: testSheet(), RecordUpdatedAt: 50}, nil)
	s.mockEngine.EXPECT().
		CalculateCharacterSheet(s.ctx, &engine.CalculateCharacterSheetInput{Record: record}).
		Return(&engine.CalculateCharacterSheetOutput{Sheet: testSheet()}, nil)
	s.mockCache.EXPECT().
		Put(s.ctx, sheetcache.PutInput{Sheet: testSheet(), RecordUpdatedAt: 100}).
		Return(&sheetcache.PutOutput{}, nil)

	out, err := s.orchestrator.GetSheet(s.ctx, &sheetsvc.GetSheetInput{CharacterID: "char_123"})
	s.Require().NoError(err)
	s.False(out.FromCache)
}

func (s *OrchestratorTestSuite) TestGetSheetCacheMissRecomputes() {
	record := testRecord()

	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "char_123"}).
		Return(&characterrepo.GetOutput{Record: record}, nil)
	s.mockCache.EXPECT().
		Get(s.ctx, sheetcache.GetInput{CharacterID: "char_123"}).
		Return(nil, errors.NotFound("no cached sheet"))
	s.mockEngine.EXPECT().
		CalculateCharacterSheet(s.ctx, gomock.Any()).
		Return(&engine.CalculateCharacterSheetOutput{Sheet: testSheet()}, nil)
	s.mockCache.EXPECT().
		Put(s.ctx, gomock.Any()).
		Return(&sheetcache.PutOutput{}, nil)

	out, err := s.orchestrator.GetSheet(s.ctx, &sheetsvc.GetSheetInput{CharacterID: "char_123"})
	s.Require().NoError(err)
	s.False(out.FromCache)
}

func (s *OrchestratorTestSuite) TestGetSheetCachePutFailureTolerated() {
	record := testRecord()

	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "char_123"}).
		Return(&characterrepo.GetOutput{Record: record}, nil)
	s.mockCache.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("no cached sheet"))
	s.mockEngine.EXPECT().
		CalculateCharacterSheet(s.ctx, gomock.Any()).
		Return(&engine.CalculateCharacterSheetOutput{Sheet: testSheet()}, nil)
	s.mockCache.EXPECT().
		Put(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis down"))

	out, err := s.orchestrator.GetSheet(s.ctx, &sheetsvc.GetSheetInput{CharacterID: "char_123"})
	s.Require().NoError(err)
	s.NotNil(out.Sheet)
}

func (s *OrchestratorTestSuite) TestGetSheetCharacterNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "missing"}).
		Return(nil, errors.NotFound("character with ID missing not found"))

	_, err := s.orchestrator.GetSheet(s.ctx, &sheetsvc.GetSheetInput{CharacterID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) expectSheetComputation() {
	record := testRecord()
	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "char_123"}).
		Return(&characterrepo.GetOutput{Record: record}, nil)
	s.mockCache.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(&sheetcache.GetOutput{Sheet: testSheet(), RecordUpdatedAt: 100}, nil)
}

func (s *OrchestratorTestSuite) TestRollCheck() {
	s.expectSheetComputation()

	out, err := s.orchestrator.RollCheck(s.ctx, &sheetsvc.RollCheckInput{
		CharacterID: "char_123",
		Target:      pf.TargetInitiative,
	})
	s.Require().NoError(err)

	s.GreaterOrEqual(out.Roll, int32(1))
	s.LessOrEqual(out.Roll, int32(20))
	s.Equal(int32(2), out.Modifier)
	s.Equal(out.Roll+out.Modifier, out.Total)
	s.Equal("Initiative", out.Breakdown.Label)
}

func (s *OrchestratorTestSuite) TestRollCheckSkillAndSaveTargets() {
	s.expectSheetComputation()
	out, err := s.orchestrator.RollCheck(s.ctx, &sheetsvc.RollCheckInput{
		CharacterID: "char_123",
		Target:      pf.SkillTarget(pf.SkillStealth),
	})
	s.Require().NoError(err)
	s.Equal(int32(6), out.Modifier)

	s.expectSheetComputation()
	out, err = s.orchestrator.RollCheck(s.ctx, &sheetsvc.RollCheckInput{
		CharacterID: "char_123",
		Target:      pf.SaveTarget(pf.SaveWill),
	})
	s.Require().NoError(err)
	s.Equal(int32(3), out.Modifier)
}

func (s *OrchestratorTestSuite) TestRollCheckUnknownTarget() {
	s.expectSheetComputation()

	_, err := s.orchestrator.RollCheck(s.ctx, &sheetsvc.RollCheckInput{
		CharacterID: "char_123",
		Target:      "not_a_target",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
