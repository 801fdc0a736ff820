package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/core/services"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InsightsServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	ledgers *MockLedgerReader
	service portssvc.InsightsSvcFacade
}

func (suite *InsightsServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ledgers = new(MockLedgerReader)
	suite.service = services.NewInsightsService(suite.ledgers)
}

func healthyLedger() *domain.Ledger {
	l := domain.NewLedger()
	l.Income = []domain.Record{{Item: "Salary", Amount: 3000}, {Item: "Rental", Amount: 3000}}
	l.Expenses = []domain.Record{{Category: "Food", Amount: 1000}}
	l.Assets = []domain.Record{{Item: "Checking", Amount: 20000}}
	return &l
}

func (suite *InsightsServiceTestSuite) TestDashboard() {
	suite.ledgers.On("GetLedger", suite.ctx, ownerID).Return(healthyLedger(), nil).Once()

	m, err := suite.service.Dashboard(suite.ctx, ownerID)

	suite.Require().NoError(err)
	suite.Equal(6000.0, m.TotalIncome)
	suite.Equal(1000.0, m.TotalExpenses)
	suite.Equal(5000.0, m.MonthlySurplusDeficit)
	suite.ledgers.AssertExpectations(suite.T())
}

func (suite *InsightsServiceTestSuite) TestDashboard_LedgerError() {
	suite.ledgers.On("GetLedger", suite.ctx, ownerID).Return(nil, assert.AnError).Once()

	m, err := suite.service.Dashboard(suite.ctx, ownerID)

	suite.Nil(m)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *InsightsServiceTestSuite) TestDashboard_MalformedLedger() {
	l := healthyLedger()
	l.Expenses = nil
	suite.ledgers.On("GetLedger", suite.ctx, ownerID).Return(l, nil).Once()

	_, err := suite.service.Dashboard(suite.ctx, ownerID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("expenses", apperrors.FieldOf(err))
}

func (suite *InsightsServiceTestSuite) TestRiskFindings_HealthyLedger() {
	suite.ledgers.On("GetLedger", suite.ctx, ownerID).Return(healthyLedger(), nil).Once()

	res, err := suite.service.RiskFindings(suite.ctx, ownerID, fixedNow)

	suite.Require().NoError(err)
	suite.Equal("none", res.Level)
	suite.Empty(res.Findings)
}

func (suite *InsightsServiceTestSuite) TestSummaries() {
	suite.ledgers.On("GetLedger", suite.ctx, ownerID).Return(healthyLedger(), nil).Once()

	res, err := suite.service.Summaries(suite.ctx, ownerID, fixedNow)

	suite.Require().NoError(err)
	suite.Zero(res.Goals.TotalCount)
	suite.Zero(res.CreditCards.TotalCurrent)
	suite.Equal(6000.0, res.IncomeExpense.TotalIncome)
}

func (suite *InsightsServiceTestSuite) TestPlanningAndProjections() {
	suite.ledgers.On("GetLedger", suite.ctx, ownerID).Return(healthyLedger(), nil).Twice()

	insights, err := suite.service.PlanningCockpit(suite.ctx, ownerID, fixedNow)
	suite.Require().NoError(err)
	suite.Len(insights.ScenarioRows, 3)

	projection, err := suite.service.Projections(suite.ctx, ownerID)
	suite.Require().NoError(err)
	suite.NotEmpty(projection.Profiles)
}

func (suite *InsightsServiceTestSuite) TestCardRecommendations_DefaultsToLedgerCards() {
	l := healthyLedger()
	l.CreditCards = []domain.CreditCard{{ID: "c1", CurrentBalance: 500, MinimumPayment: 25, InterestRatePercent: 19.9}}
	suite.ledgers.On("GetLedger", suite.ctx, ownerID).Return(l, nil).Twice()

	plan, err := suite.service.CardRecommendations(suite.ctx, ownerID, nil)
	suite.Require().NoError(err)
	suite.Require().Len(plan.Rows, 1)
	suite.Equal("c1", plan.Rows[0].ID)

	plan, err = suite.service.CardRecommendations(suite.ctx, ownerID, []domain.CreditCard{})
	suite.Require().NoError(err)
	suite.Empty(plan.Rows)
}

func (suite *InsightsServiceTestSuite) TestComparePayoff() {
	cmp, err := suite.service.ComparePayoff(suite.ctx, dto.ComparePayoffRequest{
		Balance: 5000, Payment: 200, ExtraPayment: 100, InterestRatePercent: 18,
	})
	suite.Require().NoError(err)
	suite.Positive(cmp.MonthsSaved)
	suite.Positive(cmp.InterestSaved)

	_, err = suite.service.ComparePayoff(suite.ctx, dto.ComparePayoffRequest{Balance: 5000, Payment: 200, ExtraPayment: -1})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestInsightsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InsightsServiceTestSuite))
}
