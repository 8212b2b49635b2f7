package builders

import (
	"testing"

	"leasedesk/constants"
	"leasedesk/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractBuilder(t *testing.T) {
	start, mid, end := types.MustParseDate("2024-01-01"), types.MustParseDate("2024-07-01"), types.MustParseDate("2024-12-31")

	draft := NewContractBuilder("HD-001").Build()
	assert.Equal(t, constants.ContractStatusDraft, draft.Status)

	c := NewContractBuilder("HD-002").
		WithCustomer(7).
		WithTerm(start, end).
		WithStatus(constants.ContractStatusActive).
		WithDeposit(300).
		AddUnit(1, "12", 100, Period(start, mid.AddDays(-1), 100, 10), Period(mid, end, 120, 12)).
		AddUnit(2, "3", 50).
		Build()

	assert.Equal(t, "HD-002", c.ContractNo)
	assert.EqualValues(t, 7, c.CustomerID)
	assert.Equal(t, constants.ContractStatusActive, c.Status)
	assert.Equal(t, 300.0, c.DepositAmount)
	require.Len(t, c.Units, 2)
	require.NotNil(t, c.Units[0].BuildingID)
	require.NotNil(t, c.Units[1].BuildingID)
	assert.EqualValues(t, 1, *c.Units[0].BuildingID)
	assert.EqualValues(t, 2, *c.Units[1].BuildingID)
	require.Len(t, c.Units[0].Periods, 2)
	assert.Equal(t, 120.0, c.Units[0].Periods[1].RentAmount)
	assert.Empty(t, c.Units[1].Periods)
}
